// Package analyzer implements the semantic passes that run over a
// command.CommandStream before translation: function-structure analysis and
// the two comparison-label analyses. Nothing here mutates the stream; every
// finding is recorded in a diag.Sink and analysis always runs to
// completion, so one invocation surfaces every diagnostic it can.
package analyzer

import (
	"github.com/Urethramancer/memeasm/command"
	"github.com/Urethramancer/memeasm/diag"
	"github.com/Urethramancer/memeasm/target"
)

// FunctionDescriptor is a transient, analyzer-local record of one function
// body discovered while walking the stream.
type FunctionDescriptor struct {
	Name             string
	DefinedInLine    int
	NumberOfCommands int
}

// AnalyzeFunctions partitions the stream into function bodies, enforcing
// one-return-per-function, no-floating-statements, unique names, and (for
// executables) the presence of a main function. declOpcode is the
// function-declaration opcode, fixed at command.FuncDecl by convention but
// threaded through explicitly so callers never hardcode it.
func AnalyzeFunctions(stream *command.CommandStream, declOpcode command.Opcode, mode target.CompileMode, platform target.Platform, sink *diag.Sink) []FunctionDescriptor {
	cmds := stream.Commands
	descriptors := make([]FunctionDescriptor, 0, countOccurrences(cmds, declOpcode))

	cursor := 0
	for cursor < len(cmds) {
		if cmds[cursor].Opcode != declOpcode {
			sink.Error("Statement does not belong to any function", cmds[cursor].LineNum)
			cursor++
			continue
		}
		desc, next := parseFunction(cmds, cursor, declOpcode, sink)
		descriptors = append(descriptors, desc)
		cursor = next
	}

	for i := 0; i < len(descriptors); i++ {
		for j := i + 1; j < len(descriptors); j++ {
			if descriptors[i].Name == descriptors[j].Name {
				sink.ErrorWithExtra("Duplicate function definition", descriptors[j].DefinedInLine, descriptors[i].DefinedInLine)
			}
		}
	}

	if mode == target.Executable {
		main := platform.MainSymbol()
		found := false
		for _, d := range descriptors {
			if d.Name == main {
				found = true
				break
			}
		}
		if !found {
			sink.Error("An executable cannot be created if no main-function exists", 1)
		}
	}

	return descriptors
}

func countOccurrences(cmds []command.Command, declOpcode command.Opcode) int {
	n := 0
	for _, c := range cmds {
		if c.Opcode == declOpcode {
			n++
		}
	}
	return n
}

// parseFunction scans forward from a function-declaration command at idx,
// recording the index of the last return-family command seen (opcode in
// (declOpcode, declOpcode+3]), until either a subsequent declaration or the
// end of the stream. It returns the descriptor for this function and the
// index the outer walk should resume at.
//
// Two terminations need different resume points: when a return was
// found, the body runs through that return and the
// walk resumes one past it; when no return was ever found, the body runs up
// to (but not including) the declaration that stopped the scan, or to the
// end of the stream, and the walk resumes exactly at that declaration so it
// is processed as the next function rather than being skipped.
func parseFunction(cmds []command.Command, idx int, declOpcode command.Opcode, sink *diag.Sink) (FunctionDescriptor, int) {
	declLine := cmds[idx].LineNum
	name := cmds[idx].Parameters[0]

	returnFound := false
	lastReturnIdx := -1
	newDeclIdx := -1

	j := idx + 1
	for j < len(cmds) {
		op := cmds[j].Opcode
		if op == declOpcode {
			newDeclIdx = j
			break
		}
		if op > declOpcode && op <= declOpcode+3 {
			lastReturnIdx = j
			returnFound = true
		}
		j++
	}

	if newDeclIdx != -1 && !returnFound {
		sink.Error("Expected a return statement, but got a new function definition", cmds[newDeclIdx].LineNum)
	}

	var bodyLen, next int
	if !returnFound {
		sink.Error("No return statement found", declLine)
		if newDeclIdx != -1 {
			bodyLen = newDeclIdx - idx - 1
		} else {
			bodyLen = len(cmds) - idx - 1
		}
		next = idx + bodyLen + 1
	} else {
		bodyLen = lastReturnIdx - idx
		next = idx + bodyLen + 1
	}

	return FunctionDescriptor{Name: name, DefinedInLine: declLine, NumberOfCommands: bodyLen}, next
}
