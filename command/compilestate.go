package command

import "github.com/Urethramancer/memeasm/target"

// CompileState is the shared context threaded through the whole pipeline:
// the command stream plus every compile-time option that changes analyzer
// or translator behavior.
type CompileState struct {
	Stream *CommandStream

	LogVerbosity int
	Mode         target.CompileMode
	OptLevel     target.OptLevel
	UseStabs     bool
	Platform     target.Platform

	// SourcePath is the path the source file was read from, used only for
	// the STABS file-info directive in the translator's prelude.
	SourcePath string
}
