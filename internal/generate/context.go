// Package generate produces random strings that match, or do not match, a
// pattern tree.
//
// Both generators take a *Context that carries the random source, the
// values captured by groups so far and the generation options. The context
// is passed explicitly through every call; the tree itself is never
// mutated, so one tree can feed any number of concurrent generators as long
// as each owns its context.
package generate

import (
	"github.com/kolkov/rxgen/internal/charset"
	"github.com/kolkov/rxgen/internal/runtime"
)

// DefaultInfiniteRepeat is the repetition ceiling used for unbounded
// quantifiers when Options.InfiniteRepeat is not set.
const DefaultInfiniteRepeat = 100

// Rand is the random source. *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). n > 0.
	IntN(n int) int
}

// Options control generation.
type Options struct {
	// InfiniteRepeat replaces the upper bound of unbounded quantifiers.
	InfiniteRepeat int

	// CaseInsensitive lets literals and sets produce every case variant.
	CaseInsensitive bool

	// Domain is the alphabet of the non-matching generator.
	Domain charset.Set
}

// DefaultOptions returns options with the printable ASCII domain.
func DefaultOptions() Options {
	return Options{
		InfiniteRepeat: DefaultInfiniteRepeat,
		Domain:         charset.Printable,
	}
}

// Context is the per-call state of a generator.
type Context struct {
	Rand    Rand
	Groups  map[int]string // captured values by group index
	Options Options

	// Oracle decides membership for the non-matching Choice loop. A nil
	// oracle accepts the first candidate.
	Oracle *runtime.Oracle
}

// NewContext creates a context with an empty capture table.
func NewContext(r Rand, opts Options, oracle *runtime.Oracle) *Context {
	if opts.InfiniteRepeat <= 0 {
		opts.InfiniteRepeat = DefaultInfiniteRepeat
	}
	if opts.Domain.IsEmpty() {
		opts.Domain = charset.Printable
	}
	return &Context{
		Rand:    r,
		Groups:  make(map[int]string),
		Options: opts,
		Oracle:  oracle,
	}
}

// Reset clears the capture table so the context can start a new string.
func (ctx *Context) Reset() {
	clear(ctx.Groups)
}

// upper returns the effective upper bound of a repetition.
func (ctx *Context) upper(min, max int) int {
	if max < 0 {
		max = ctx.Options.InfiniteRepeat
	}
	if max < min {
		max = min
	}
	return max
}

// between returns a uniform value in [lo, hi].
func (ctx *Context) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + ctx.Rand.IntN(hi-lo+1)
}

// pick returns a uniform rune of set. set must not be empty.
func (ctx *Context) pick(set charset.Set) rune {
	return set.At(ctx.Rand.IntN(set.Len()))
}
