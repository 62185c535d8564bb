// Package parser matches lexed source lines against the command table's
// surface patterns and produces a command.CommandStream. Like package
// lexer, it exists so cmd/memeasm has something to feed the analyzers and
// translator.
//
// Matching uses a prefix tree the same way beevik-go6502's host/settings.go
// and debugger/command.go use github.com/beevik/prefixtree/v2 to resolve a
// typed abbreviation to a unique command: here the "abbreviation" is the
// meme phrase with its trailing parameter words trimmed off, tried from the
// longest candidate down to the shortest until the tree resolves one to a
// single pattern (an exact match, or an unambiguous prefix of one pattern).
package parser

import (
	"fmt"
	"strings"

	"github.com/beevik/prefixtree/v2"

	"github.com/Urethramancer/memeasm/command"
	"github.com/Urethramancer/memeasm/lexer"
)

var phrases = buildPhraseTree()

func buildPhraseTree() *prefixtree.Tree[command.Opcode] {
	t := prefixtree.New[command.Opcode]()
	for opcode, entry := range command.Table {
		if command.Opcode(opcode) == command.Invalid {
			continue
		}
		t.Add(strings.ToLower(entry.Pattern), command.Opcode(opcode))
	}
	return t
}

// Parse turns lexed lines into a CommandStream. RandomIndex is left at -1
// (meaning "no .LConfusedStonks cursor"), since nothing in the source
// grammar denotes it. cmd/memeasm does not change it either, so the CLI
// never emits the .LConfusedStonks label.
func Parse(lines []lexer.Line) (*command.CommandStream, error) {
	stream := &command.CommandStream{RandomIndex: -1}

	for _, line := range lines {
		cmd, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		stream.Commands = append(stream.Commands, cmd)
	}

	return stream, nil
}

func parseLine(line lexer.Line) (command.Command, error) {
	words := strings.Fields(line.Text)

	for wordCount := len(words); wordCount >= 1; wordCount-- {
		candidate := strings.ToLower(strings.Join(words[:wordCount], " "))
		candidate = strings.TrimSuffix(candidate, ",")
		opcode, err := phrases.FindValue(candidate)
		if err != nil {
			continue
		}
		return buildCommand(opcode, words[wordCount:], line.LineNum)
	}

	return command.Command{}, fmt.Errorf("line %d: unrecognized meme: %q", line.LineNum, line.Text)
}

func buildCommand(opcode command.Opcode, paramWords []string, lineNum int) (command.Command, error) {
	entry := command.Table[opcode]

	cmd := command.Command{Opcode: opcode, LineNum: lineNum, Translate: true}

	if entry.UsedParameters == 0 {
		return cmd, nil
	}

	raw := strings.Join(paramWords, " ")
	parts := strings.Split(raw, ",")
	if len(parts) < entry.UsedParameters {
		return command.Command{}, fmt.Errorf("line %d: %q expects %d parameter(s), got %q", lineNum, entry.Pattern, entry.UsedParameters, raw)
	}

	for i := 0; i < entry.UsedParameters; i++ {
		p := strings.TrimSpace(parts[i])
		if p == "" {
			return command.Command{}, fmt.Errorf("line %d: %q expects %d parameter(s), got %q", lineNum, entry.Pattern, entry.UsedParameters, raw)
		}
		if strings.HasPrefix(p, "[") && strings.HasSuffix(p, "]") {
			cmd.IsPointer = i + 1
			p = strings.TrimSpace(p[1 : len(p)-1])
		}
		cmd.Parameters[i] = p
	}

	return cmd, nil
}
