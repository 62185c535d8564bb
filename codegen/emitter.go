package codegen

import (
	"fmt"
	"io"
)

// emitter is a thin write-through wrapper that remembers the first write
// error instead of threading it through every call site, the way
// disassembler.Disassemble builds its output in a strings.Builder before
// ever checking for a failure. Unlike that builder, our sink is an opaque
// io.Writer (spec §6), so writes really can fail and the error is surfaced
// from Translate's return value.
//
// It also carries the one piece of cross-command state the
// ".LConfusedStonks" feature needs: a label that must prefix whatever text
// is written next, on the same output line, however many commands away that
// turns out to be (a skipped command still consumes its randomIndex slot
// without emitting anything).
type emitter struct {
	w       io.Writer
	err     error
	pending string
}

func (e *emitter) write(s string) {
	if e.err != nil {
		return
	}
	if e.pending != "" {
		if _, e.err = io.WriteString(e.w, e.pending); e.err != nil {
			return
		}
		e.pending = ""
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *emitter) printf(format string, args ...any) {
	e.write(fmt.Sprintf(format, args...))
}
