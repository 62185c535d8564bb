// Package command holds the shared data model: parsed Commands, the
// CommandStream they live in, the static command table that drives
// translation, and the CompileState that threads compiler options through
// the pipeline. Nothing in this package performs analysis or code
// generation — it is the shape both the analyzers and the translator read.
package command

// Opcode indexes into Table. Densely numbered with deliberate
// family-adjacency: see the const block in table.go.
type Opcode int

// Command is one parsed source statement. It is immutable once built by the
// parser; analyzers and the translator only ever read it.
type Command struct {
	Opcode     Opcode
	Parameters [2]string
	// IsPointer is 0 for no pointer operand, 1 if Parameters[0] is a
	// memory-indirect operand, 2 if Parameters[1] is.
	IsPointer int
	LineNum   int
	// Translate is false when an upstream optimisation pass has elided this
	// command. The translator treats it as authoritative and performs no
	// further analysis of its own.
	Translate bool
}

// CommandStream is the ordered sequence of parsed commands for one
// compilation unit, plus the one auxiliary cursor used by the
// ".LConfusedStonks" runtime-humor feature.
type CommandStream struct {
	Commands    []Command
	RandomIndex int
}
