// Package parser provides a recursive descent compiler for patterns.
package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/kolkov/rxgen/internal/token"
)

// ParseError represents a syntax error encountered during parsing.
// It implements the error interface and includes source position information.
type ParseError struct {
	Pos     token.Position // Position where the error occurred
	Message string         // Human-readable error message
	Pattern string         // The pattern being parsed
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// Context renders the offending line with a caret under the error column.
func (e *ParseError) Context() string {
	return token.Caret(e.Pattern, e.Pos)
}

// errorf creates a ParseError at byte offset off with formatted message.
func (p *Parser) errorf(off int, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     token.At(p.src, off),
		Message: fmt.Sprintf(format, args...),
		Pattern: p.src,
	}
}

// expectedError creates a ParseError for a missing closing delimiter.
// opened is the offset of the construct that needs closing.
func (p *Parser) expectedError(off int, want string, opened int) *ParseError {
	if off >= len(p.src) {
		return p.errorf(opened, "missing closing %s for %q opened at %s", want, p.src[opened], token.At(p.src, opened))
	}
	r, _ := utf8.DecodeRuneInString(p.src[off:])
	return p.errorf(off, "expected %s, got %q", want, r)
}
