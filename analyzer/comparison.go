package analyzer

import (
	"github.com/Urethramancer/memeasm/command"
	"github.com/Urethramancer/memeasm/diag"
)

type whoWouldWinComparison struct {
	Params [2]string
	Line   int
}

type labelDeclaration struct {
	Param string
	Line  int
}

// AnalyzeWhoWouldWin validates the "Who would win?" comparison family:
// compareOpcode is the compare command, compareOpcode+1 its label
// declaration. Every comparison's two parameters must each match some
// label declaration's parameter, and no label declaration may repeat.
func AnalyzeWhoWouldWin(stream *command.CommandStream, compareOpcode command.Opcode, sink *diag.Sink) {
	labelOpcode := compareOpcode + 1

	var comparisons []whoWouldWinComparison
	var labels []labelDeclaration
	for _, c := range stream.Commands {
		switch c.Opcode {
		case compareOpcode:
			comparisons = append(comparisons, whoWouldWinComparison{Params: c.Parameters, Line: c.LineNum})
		case labelOpcode:
			labels = append(labels, labelDeclaration{Param: c.Parameters[0], Line: c.LineNum})
		}
	}

	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			if labels[i].Param == labels[j].Param {
				sink.ErrorWithExtra("Comparison jump markers cannot be defined twice", labels[j].Line, labels[i].Line)
			}
		}
	}

	hasLabel := func(param string) bool {
		for _, l := range labels {
			if l.Param == param {
				return true
			}
		}
		return false
	}

	for _, c := range comparisons {
		if !hasLabel(c.Params[0]) {
			sink.Error("No comparison jump marker defined for first parameter", c.Line)
		}
		if !hasLabel(c.Params[1]) {
			sink.Error("No comparison jump marker defined for second parameter", c.Line)
		}
	}
}

// AnalyzeSamePicture validates the "Corporate needs you to find the
// difference ... they're the same picture" family. This family has exactly
// one label, globally: only whether it occurs anywhere is checked, and
// (unlike AnalyzeWhoWouldWin) no duplicate-declaration check is performed.
// Preserved deliberately rather than "fixed" — see DESIGN.md.
func AnalyzeSamePicture(stream *command.CommandStream, compareOpcode command.Opcode, sink *diag.Sink) {
	labelOpcode := compareOpcode + 1

	found := false
	for _, c := range stream.Commands {
		if c.Opcode == labelOpcode {
			found = true
		}
	}

	if found {
		return
	}

	for _, c := range stream.Commands {
		if c.Opcode == compareOpcode {
			sink.Error("\"they're the same picture\" wasn't defined anywhere", c.LineNum)
		}
	}
}
