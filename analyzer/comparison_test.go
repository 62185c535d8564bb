package analyzer

import (
	"testing"

	"github.com/Urethramancer/memeasm/command"
	"github.com/Urethramancer/memeasm/diag"
)

func twoParamCmd(opcode command.Opcode, line int, p0, p1 string) command.Command {
	c := command.Command{Opcode: opcode, LineNum: line, Translate: true}
	c.Parameters[0] = p0
	c.Parameters[1] = p1
	return c
}

func TestWhoWouldWinMissingSecondParameter(t *testing.T) {
	stream := &command.CommandStream{Commands: []command.Command{
		twoParamCmd(command.WhoWouldWin, 2, "x", "y"),
		cmd(command.WhoWouldWinLabel, 3, "x"),
	}}
	sink := diag.New()
	AnalyzeWhoWouldWin(stream, command.WhoWouldWin, sink)

	if sink.Count() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", sink.All())
	}
	d := sink.All()[0]
	if d.Message != "No comparison jump marker defined for second parameter" || d.Line != 2 {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
}

func TestWhoWouldWinBothParametersMissingEmitsTwoDiagnostics(t *testing.T) {
	stream := &command.CommandStream{Commands: []command.Command{
		twoParamCmd(command.WhoWouldWin, 5, "a", "b"),
	}}
	sink := diag.New()
	AnalyzeWhoWouldWin(stream, command.WhoWouldWin, sink)

	if sink.Count() != 2 {
		t.Fatalf("expected two diagnostics, got %v", sink.All())
	}
}

func TestWhoWouldWinDuplicateLabel(t *testing.T) {
	stream := &command.CommandStream{Commands: []command.Command{
		cmd(command.WhoWouldWinLabel, 1, "x"),
		cmd(command.WhoWouldWinLabel, 2, "x"),
		twoParamCmd(command.WhoWouldWin, 3, "x", "x"),
	}}
	sink := diag.New()
	AnalyzeWhoWouldWin(stream, command.WhoWouldWin, sink)

	if sink.Count() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", sink.All())
	}
	d := sink.All()[0]
	if d.Message != "Comparison jump markers cannot be defined twice" || d.Line != 2 || d.ExtraLine != 1 {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
}

func TestSamePictureMissingLabel(t *testing.T) {
	stream := &command.CommandStream{Commands: []command.Command{
		cmd(command.SamePictureCompare, 4),
		cmd(command.SamePictureCompare, 7),
	}}
	sink := diag.New()
	AnalyzeSamePicture(stream, command.SamePictureCompare, sink)

	if sink.Count() != 2 {
		t.Fatalf("expected two diagnostics (one per occurrence), got %v", sink.All())
	}
	for _, d := range sink.All() {
		if d.Message != "\"they're the same picture\" wasn't defined anywhere" {
			t.Errorf("unexpected diagnostic: %+v", d)
		}
	}
}

func TestSamePictureLabelDefinedNoDiagnostics(t *testing.T) {
	stream := &command.CommandStream{Commands: []command.Command{
		cmd(command.SamePictureCompare, 1),
		cmd(command.SamePictureLabel, 2),
	}}
	sink := diag.New()
	AnalyzeSamePicture(stream, command.SamePictureCompare, sink)
	if sink.Count() != 0 {
		t.Fatalf("expected no diagnostics, got %v", sink.All())
	}
}

func TestSamePictureAllowsDuplicateLabelsByDesign(t *testing.T) {
	stream := &command.CommandStream{Commands: []command.Command{
		cmd(command.SamePictureLabel, 1),
		cmd(command.SamePictureLabel, 2),
	}}
	sink := diag.New()
	AnalyzeSamePicture(stream, command.SamePictureCompare, sink)
	if sink.Count() != 0 {
		t.Fatalf("the same-picture family intentionally performs no duplicate-label detection, got %v", sink.All())
	}
}
