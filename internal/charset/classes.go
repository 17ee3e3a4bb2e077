package charset

import (
	"strings"
	"unicode"
)

// DefaultWhitespace is the rune set behind \s unless configured otherwise.
const DefaultWhitespace = " \t\n\v\f\r"

// Pre-built sets for the common shorthands.
var (
	// Printable is the default admissible domain: ASCII 0x20..0x7E.
	Printable = New(Range{' ', '~'})

	Digit  = New(Range{'0', '9'})
	Word   = New(Range{'a', 'z'}, Range{'A', 'Z'}, Range{'0', '9'}, Range{'_', '_'})
	Lower  = New(Range{'a', 'z'})
	Upper  = New(Range{'A', 'Z'})
	Alpha  = New(Range{'a', 'z'}, Range{'A', 'Z'})
	Alnum  = New(Range{'a', 'z'}, Range{'A', 'Z'}, Range{'0', '9'})
	XDigit = New(Range{'0', '9'}, Range{'a', 'f'}, Range{'A', 'F'})
	Punct  = New(Range{'!', '/'}, Range{':', '@'}, Range{'[', '`'}, Range{'{', '~'})
	Blank  = Of(' ', '\t')
	Cntrl  = New(Range{0, 0x1f}, Range{0x7f, 0x7f})
	Graph  = New(Range{'!', '~'})
	ASCII  = New(Range{0, 0x7f})
)

// posixClasses maps the names accepted in [[:name:]] and \p{Name} (Java
// spelling) to their ASCII sets.
var posixClasses = map[string]Set{
	"alpha":  Alpha,
	"digit":  Digit,
	"alnum":  Alnum,
	"upper":  Upper,
	"lower":  Lower,
	"punct":  Punct,
	"xdigit": XDigit,
	"blank":  Blank,
	"cntrl":  Cntrl,
	"graph":  Graph,
	"print":  Printable,
	"word":   Word,
	"ascii":  ASCII,
	"space":  FromString(DefaultWhitespace),
}

// POSIX returns the set for a POSIX bracket class name such as "alpha".
func POSIX(name string) (Set, bool) {
	s, ok := posixClasses[name]
	return s, ok
}

// Named resolves the name inside \p{...}: a Unicode general category
// ("L", "Lu"), a script ("Greek", "IsGreek"), or a POSIX class in Java
// spelling ("Lower", "Alpha").
func Named(name string) (Set, bool) {
	if t, ok := unicode.Categories[name]; ok {
		return FromTable(t), true
	}
	trimmed := strings.TrimPrefix(name, "Is")
	if t, ok := unicode.Scripts[trimmed]; ok {
		return FromTable(t), true
	}
	if t, ok := unicode.Categories[trimmed]; ok {
		return FromTable(t), true
	}
	if s, ok := posixClasses[strings.ToLower(trimmed)]; ok {
		return s, true
	}
	return Set{}, false
}

// FromTable converts a unicode.RangeTable. Strided entries expand into
// single-rune ranges.
func FromTable(t *unicode.RangeTable) Set {
	var rs []Range
	for _, r := range t.R16 {
		rs = appendStrided(rs, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range t.R32 {
		rs = appendStrided(rs, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return New(rs...)
}

func appendStrided(rs []Range, lo, hi, stride rune) []Range {
	if stride == 1 {
		return append(rs, Range{lo, hi})
	}
	for c := lo; c <= hi; c += stride {
		rs = append(rs, Range{c, c})
	}
	return rs
}
