// Package codegen implements the Translator: the single in-order walk over
// an already-analyzed command.CommandStream that emits GNU-Assembler
// Intel-syntax text. It performs no semantic checks of its own — it
// presumes analyzer.AnalyzeFunctions and the two comparison analyzers have
// already run and found nothing wrong.
package codegen

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/Urethramancer/memeasm/command"
	"github.com/Urethramancer/memeasm/target"
)

// Version is the compiler version string stamped into the prelude comment.
const Version = "memeasm 0.1.0"

// stabsLabelState tracks the DNLABEL one-bit memory as a small enum instead
// of a bare bool: whether the upcoming command's line-label was already
// emitted by the previous (ignorable) command.
type stabsLabelState int

const (
	needsLabel stabsLabelState = iota
	labelPreEmitted
)

// Translate renders state's command stream to out as a single pass:
// prelude, one or more lines per translated command, runtime I/O helpers,
// and a STABS epilogue. timestamp is supplied by the caller (rather than
// read from the clock here) so that repeated calls on the same state are
// byte-for-byte idempotent, a property the test suite relies on.
func Translate(state *command.CompileState, timestamp time.Time, out io.Writer) error {
	e := &emitter{w: out}

	writePrelude(e, state, timestamp)

	cmds := state.Stream.Commands
	var currentFunctionName string
	dnlabel := needsLabel

	for i, cmd := range cmds {
		if i == state.Stream.RandomIndex {
			e.pending = ".LConfusedStonks: "
		}
		if !cmd.Translate {
			continue
		}
		translateOne(e, state, cmds, i, &currentFunctionName, &dnlabel)
	}

	writeRuntimeHelpers(e, state.Platform, state.OptLevel)
	writeEpilogue(e, state, cmds)

	return e.err
}

func writePrelude(e *emitter, state *command.CompileState, timestamp time.Time) {
	e.printf("# %s compiled %s\n", Version, timestamp.Format(time.RFC1123))
	e.write(".intel_syntax noprefix\n")

	for _, cmd := range state.Stream.Commands {
		if cmd.Opcode == command.FuncDecl && cmd.Translate {
			e.printf(".global %s\n", cmd.Parameters[0])
		}
	}

	if state.Platform == target.Windows {
		e.write(".extern GetStdHandle\n")
		e.write(".extern WriteFile\n")
		e.write(".extern ReadFile\n")
	}

	e.printf("%s\n", state.Platform.DataSection())
	e.write(".LCharacter:\n\t.byte 'a'\n")
	e.write(".Ltmp64:\n\t.byte 0,0,0,0,0,0,0,0\n")

	if state.UseStabs {
		e.printf(".stabs \"%s\", %d, 0, 0, .Ltext0\n", stabsFilePath(state.SourcePath), target.NSO)
	}

	e.printf("%s\n", state.Platform.TextSection())
	e.write(".Ltext0:\n")
}

func stabsFilePath(sourcePath string) string {
	if strings.HasPrefix(sourcePath, "/") {
		return sourcePath
	}
	cwd, err := os.Getwd()
	if err != nil {
		return sourcePath
	}
	return cwd + "/" + sourcePath
}

func isIgnorable(opcode command.Opcode) bool {
	return command.Table[opcode].Template == "int3"
}

func isReturnFamily(opcode command.Opcode) bool {
	return opcode >= command.Return1 && opcode <= command.Return3
}

func translateOne(e *emitter, state *command.CompileState, cmds []command.Command, i int, currentFunctionName *string, dnlabel *stabsLabelState) {
	cmd := cmds[i]

	// Optimisation level o42069 elides everything except function
	// prologues: only opcode 0 survives past this point.
	if state.OptLevel == target.O42069 && cmd.Opcode != command.FuncDecl {
		return
	}

	if state.UseStabs {
		if cmd.Opcode == command.FuncDecl {
			*currentFunctionName = cmd.Parameters[0]
		} else {
			switch {
			case isIgnorable(cmd.Opcode):
				next := cmd.LineNum + 1
				if i+1 < len(cmds) {
					next = cmds[i+1].LineNum
				}
				e.printf(".Lcmd_%d:\n", next)
				*dnlabel = labelPreEmitted
			case *dnlabel == labelPreEmitted:
				*dnlabel = needsLabel
			default:
				e.printf(".Lcmd_%d:\n", cmd.LineNum)
			}
		}
	}

	line := expandTemplate(cmd)
	if cmd.Opcode != command.FuncDecl {
		e.write("\t")
	}
	e.write(line)
	e.write("\n")

	switch state.OptLevel {
	case target.O1:
		e.write("\tnop\n")
	case target.O2:
		e.write("\tpush rax\n\tpop rax\n")
	case target.O3:
		e.write("\tmovups [rsp + 8], xmm0\n\tmovups xmm0, [rsp + 8]\n")
	case target.O42069:
		e.write("\txor rax, rax\n\tret\n")
	}

	if state.UseStabs && cmd.Opcode != command.FuncDecl {
		isLastOrNextDecl := i == len(cmds)-1 || cmds[i+1].Opcode == command.FuncDecl
		if isReturnFamily(cmd.Opcode) && isLastOrNextDecl {
			e.printf("\t.Lret_%s:\n", *currentFunctionName)
		}
		if !isIgnorable(cmd.Opcode) {
			e.printf("\t.stabn %d, 0, %d, .Lcmd_%d\n", target.NSLINE, cmd.LineNum, cmd.LineNum)
		}
	}
}

func expandTemplate(cmd command.Command) string {
	entry := command.Table[cmd.Opcode]
	var b strings.Builder
	for _, f := range entry.Fragments {
		if !f.IsParam {
			b.WriteString(f.Literal)
			continue
		}
		param := cmd.Parameters[f.ParamIndex]
		if cmd.IsPointer == f.ParamIndex+1 {
			b.WriteByte('[')
			b.WriteString(param)
			b.WriteByte(']')
		} else {
			b.WriteString(param)
		}
	}
	return b.String()
}

func writeEpilogue(e *emitter, state *command.CompileState, cmds []command.Command) {
	if state.UseStabs {
		for _, cmd := range cmds {
			if cmd.Opcode != command.FuncDecl || !cmd.Translate {
				continue
			}
			name := cmd.Parameters[0]
			e.printf(".stabs \"%s:F1\", %d, 0, 0, %s\n", name, target.NFUN, name)
			e.printf(".stabn %d, 0, 0, %s\n", target.NLBRAC, name)
			e.printf(".stabn %d, 0, 0, .Lret_%s\n", target.NRBRAC, name)
		}
		e.write(".LEOF:\n")
		e.printf(".stabs \"\", %d, 0, 0, .LEOF\n", target.NSO)
	}

	if state.OptLevel == target.OS {
		e.write(".align 536870912\n")
	}
}
