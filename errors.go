package rxgen

import (
	"fmt"
)

// ParseError represents a syntax error in a pattern.
type ParseError struct {
	Position int    // 0-based byte offset
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Message  string // Error description
	Context  string // Offending line with a caret under the column
}

func (e *ParseError) Error() string {
	if e.Line > 1 {
		return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error at column %d: %s", e.Column, e.Message)
}

// CompileError represents a structural error found after parsing.
type CompileError struct {
	Message string // Error description
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error: %s", e.Message)
}
