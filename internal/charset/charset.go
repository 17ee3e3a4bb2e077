// Package charset implements resolved symbol sets.
//
// A Set is a finite, duplicate-free collection of runes stored as a list of
// inclusive ranges. Ranges keep the order in which they were added, so
// indexing and enumeration follow the declaration order of the source class:
// [ba] yields 'b' before 'a'.
package charset

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Range is an inclusive rune interval.
type Range struct {
	Lo, Hi rune
}

// Len returns the number of runes in the range.
func (r Range) Len() int {
	return int(r.Hi-r.Lo) + 1
}

// Set is an ordered, duplicate-free rune set. The zero value is empty.
// Sets are values: every operation returns a new Set.
type Set struct {
	ranges []Range
	size   int
}

// New builds a set from ranges, dropping runes already covered by an
// earlier range. Ranges with Lo > Hi are ignored.
func New(ranges ...Range) Set {
	var s Set
	for _, r := range ranges {
		s = s.add(r)
	}
	return s
}

// Of builds a set from individual runes in order.
func Of(runes ...rune) Set {
	var s Set
	for _, r := range runes {
		s = s.add(Range{r, r})
	}
	return s
}

// FromString builds a set from the runes of str in order.
func FromString(str string) Set {
	return Of([]rune(str)...)
}

func (s Set) add(r Range) Set {
	if r.Lo > r.Hi {
		return s
	}
	pieces := []Range{r}
	for _, have := range s.ranges {
		pieces = subtractRange(pieces, have)
		if len(pieces) == 0 {
			return s
		}
	}
	out := Set{ranges: make([]Range, len(s.ranges), len(s.ranges)+len(pieces)), size: s.size}
	copy(out.ranges, s.ranges)
	for _, p := range pieces {
		out.ranges = appendRange(out.ranges, p)
		out.size += p.Len()
	}
	return out
}

// appendRange appends r, merging it into the last range when adjacent.
func appendRange(rs []Range, r Range) []Range {
	if n := len(rs); n > 0 && rs[n-1].Hi+1 == r.Lo {
		rs[n-1].Hi = r.Hi
		return rs
	}
	return append(rs, r)
}

// subtractRange removes cut from every range in pieces.
func subtractRange(pieces []Range, cut Range) []Range {
	out := pieces[:0:0]
	for _, p := range pieces {
		if cut.Hi < p.Lo || cut.Lo > p.Hi {
			out = append(out, p)
			continue
		}
		if p.Lo < cut.Lo {
			out = append(out, Range{p.Lo, cut.Lo - 1})
		}
		if p.Hi > cut.Hi {
			out = append(out, Range{cut.Hi + 1, p.Hi})
		}
	}
	return out
}

// Len returns the number of runes in the set.
func (s Set) Len() int { return s.size }

// IsEmpty reports whether the set holds no runes.
func (s Set) IsEmpty() bool { return s.size == 0 }

// Ranges returns the ranges of the set in order. The slice must not be modified.
func (s Set) Ranges() []Range { return s.ranges }

// At returns the i-th rune of the set in declaration order.
// It panics if i is out of range.
func (s Set) At(i int) rune {
	if i < 0 || i >= s.size {
		panic(fmt.Sprintf("charset: index %d out of range [0,%d)", i, s.size))
	}
	for _, r := range s.ranges {
		if n := r.Len(); i >= n {
			i -= n
			continue
		}
		return r.Lo + rune(i)
	}
	panic("unreachable")
}

// Runes materializes the set in order.
func (s Set) Runes() []rune {
	out := make([]rune, 0, s.size)
	for _, r := range s.ranges {
		for c := r.Lo; c <= r.Hi; c++ {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether c is in the set.
func (s Set) Contains(c rune) bool {
	for _, r := range s.ranges {
		if c >= r.Lo && c <= r.Hi {
			return true
		}
	}
	return false
}

// Union returns s followed by the runes of o not already in s.
func (s Set) Union(o Set) Set {
	out := s
	for _, r := range o.ranges {
		out = out.add(r)
	}
	return out
}

// Subtract returns the runes of s that are not in o, keeping s's order.
func (s Set) Subtract(o Set) Set {
	if s.size == 0 || o.size == 0 {
		return s
	}
	var out Set
	for _, r := range s.ranges {
		pieces := []Range{r}
		for _, cut := range o.ranges {
			pieces = subtractRange(pieces, cut)
			if len(pieces) == 0 {
				break
			}
		}
		for _, p := range pieces {
			out.ranges = appendRange(out.ranges, p)
			out.size += p.Len()
		}
	}
	return out
}

// Intersect returns the runes of s that are also in o, keeping s's order.
func (s Set) Intersect(o Set) Set {
	return s.Subtract(s.Subtract(o))
}

// Fold returns the case-insensitive superset of s: every rune followed by
// its lower and upper case forms. Runes without case pairs are unchanged.
func (s Set) Fold() Set {
	extra := make([]rune, 0)
	for _, c := range s.Runes() {
		for _, f := range Variants(c)[1:] {
			if !s.Contains(f) {
				extra = append(extra, f)
			}
		}
	}
	if len(extra) == 0 {
		return s
	}
	return s.Union(Of(extra...))
}

// Variants returns c followed by its lower and upper case forms, without
// duplicates. Other members of the simple folding orbit, such as the
// Kelvin sign for k, are left out. A rune without case yields one element.
func Variants(c rune) []rune {
	out := []rune{c}
	for _, v := range [2]rune{unicode.ToLower(c), unicode.ToUpper(c)} {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// String renders the set in bracket notation, e.g. "[a-z_]".
func (s Set) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, r := range s.ranges {
		writeRune(&sb, r.Lo)
		switch {
		case r.Hi == r.Lo:
		case r.Hi == r.Lo+1:
			writeRune(&sb, r.Hi)
		default:
			sb.WriteByte('-')
			writeRune(&sb, r.Hi)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func writeRune(sb *strings.Builder, c rune) {
	switch {
	case c == '\\' || c == ']' || c == '[' || c == '-' || c == '^':
		sb.WriteByte('\\')
		sb.WriteRune(c)
	case c < 0x20 || c == 0x7f:
		fmt.Fprintf(sb, `\x%02x`, c)
	case c > 0x7e && !unicode.IsPrint(c):
		fmt.Fprintf(sb, `\x{%x}`, c)
	default:
		sb.WriteRune(c)
	}
}
