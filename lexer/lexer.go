// Package lexer turns raw meme source text into lexed lines: comments and
// blank lines removed, line numbers preserved. Kept deliberately small,
// just enough to make the compiler runnable end to end from a source file.
package lexer

import "strings"

// Line is one non-empty, comment-stripped source line.
type Line struct {
	Text    string
	LineNum int
}

// Lex splits src into lines, strips `#` comments, and drops blank lines.
// Line numbers are 1-based and refer to the original source, not the
// filtered output.
func Lex(src string) []Line {
	raw := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	var lines []Line
	for i, text := range raw {
		if idx := strings.IndexByte(text, '#'); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Text: text, LineNum: i + 1})
	}
	return lines
}
