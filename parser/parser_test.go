package parser

import (
	"testing"

	"github.com/Urethramancer/memeasm/command"
	"github.com/Urethramancer/memeasm/lexer"
)

func TestParseMinimalMain(t *testing.T) {
	lines := lexer.Lex("This is the beginning of a beautiful friendship, main\nNothing to see here, move along\n")
	stream, err := Parse(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stream.Commands) != 2 {
		t.Fatalf("expected 2 commands, got %d: %+v", len(stream.Commands), stream.Commands)
	}
	if stream.Commands[0].Opcode != command.FuncDecl || stream.Commands[0].Parameters[0] != "main" {
		t.Errorf("unexpected first command: %+v", stream.Commands[0])
	}
	if stream.Commands[1].Opcode != command.Return2 {
		t.Errorf("unexpected second command: %+v", stream.Commands[1])
	}
	if stream.RandomIndex != -1 {
		t.Errorf("RandomIndex should default to -1, got %d", stream.RandomIndex)
	}
}

func TestParseWhoWouldWinTwoParameters(t *testing.T) {
	lines := lexer.Lex("Who would win? tiny_label, big_label\n")
	stream, err := Parse(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := stream.Commands[0]
	if c.Opcode != command.WhoWouldWin {
		t.Fatalf("unexpected opcode: %+v", c)
	}
	if c.Parameters[0] != "tiny_label" || c.Parameters[1] != "big_label" {
		t.Errorf("unexpected parameters: %+v", c)
	}
}

func TestParsePointerOperand(t *testing.T) {
	lines := lexer.Lex("One does not simply walk into Mordor [rax], rbx\n")
	stream, err := Parse(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := stream.Commands[0]
	if c.Opcode != command.MovReg {
		t.Fatalf("unexpected opcode: %+v", c)
	}
	if c.IsPointer != 1 {
		t.Errorf("expected IsPointer == 1, got %d", c.IsPointer)
	}
	if c.Parameters[0] != "rax" || c.Parameters[1] != "rbx" {
		t.Errorf("unexpected parameters: %+v", c)
	}
}

func TestParseZeroParameterCommandWithInternalComma(t *testing.T) {
	lines := lexer.Lex("Nothing to see here, move along\n")
	stream, err := Parse(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stream.Commands[0].Opcode != command.Return2 {
		t.Errorf("unexpected opcode: %+v", stream.Commands[0])
	}
}

func TestParseUnrecognizedLineReturnsError(t *testing.T) {
	lines := lexer.Lex("this is not a real meme at all\n")
	_, err := Parse(lines)
	if err == nil {
		t.Fatal("expected an error for an unrecognized line")
	}
}

func TestParseMissingParameterReturnsError(t *testing.T) {
	lines := lexer.Lex("Stonks\n")
	_, err := Parse(lines)
	if err == nil {
		t.Fatal("expected an error when Stonks is missing its register parameter")
	}
}
