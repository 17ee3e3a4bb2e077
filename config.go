package rxgen

import "github.com/kolkov/rxgen/internal/charset"

// DefaultInfiniteRepeat is the repetition ceiling used for unbounded
// quantifiers by default.
const DefaultInfiniteRepeat = 100

// Config holds options for compiling a pattern.
type Config struct {
	// InfiniteRepeat replaces the upper bound of *, + and {n,} when
	// generating and enumerating (default: 100).
	InfiniteRepeat int

	// CaseInsensitive makes literals and sets match every case variant.
	// Generation flips letter case at random, enumeration and counting
	// include every variant, and negated classes exclude all variants.
	CaseInsensitive bool

	// Dot lists the runes matched by '.' (default: printable ASCII).
	// When set it is also the alphabet of negated classes and of
	// non-matching generation.
	Dot string

	// Whitespace lists the runes matched by \s (default: " \t\n\v\f\r").
	Whitespace string
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.InfiniteRepeat <= 0 {
		c.InfiniteRepeat = DefaultInfiniteRepeat
	}
	if c.Whitespace == "" {
		c.Whitespace = charset.DefaultWhitespace
	}
}
