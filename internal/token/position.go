// Package token describes locations inside pattern text.
package token

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position represents a position in pattern text.
type Position struct {
	// Line number (1-indexed). Patterns are usually a single line.
	Line int
	// Column is the rune offset on the line (1-indexed).
	Column int
	// Offset is the byte offset from the start of the pattern (0-indexed).
	Offset int
}

// String returns a string representation of the position.
// Format: "line:column", or "column N" for single-line patterns.
func (p Position) String() string {
	if p.Line > 1 {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("column %d", p.Column)
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// At computes the Position of byte offset off inside src.
// Offsets past the end of src clamp to len(src).
func At(src string, off int) Position {
	if off > len(src) {
		off = len(src)
	}
	if off < 0 {
		off = 0
	}
	line, col := 1, 1
	for _, r := range src[:off] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return Position{Line: line, Column: col, Offset: off}
}

// Caret renders the line of src holding p with a '^' marker under p:
//
//	ab)c
//	  ^
func Caret(src string, p Position) string {
	lines := strings.Split(src, "\n")
	idx := p.Line - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	line := lines[idx]
	pad := p.Column - 1
	if n := utf8.RuneCountInString(line); pad > n {
		pad = n
	}
	return line + "\n" + strings.Repeat(" ", pad) + "^"
}
