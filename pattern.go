package rxgen

import (
	"io"
	"math/big"

	"github.com/kolkov/rxgen/internal/ast"
	"github.com/kolkov/rxgen/internal/charset"
	"github.com/kolkov/rxgen/internal/count"
	"github.com/kolkov/rxgen/internal/generate"
	"github.com/kolkov/rxgen/internal/iter"
	"github.com/kolkov/rxgen/internal/runtime"
)

// Pattern represents a compiled pattern.
// It is safe for concurrent use; each call to Generate, GenerateNotMatching
// or Iterator creates independent state.
type Pattern struct {
	source   string
	root     ast.Node
	config   Config
	domain   charset.Set
	oracle   *runtime.Oracle
	warnings []string
}

// Generate returns a random string that matches the pattern.
// The same seed yields the same string.
func (p *Pattern) Generate(r Rand) string {
	return generate.Generate(p.root, p.newContext(r))
}

// GenerateNotMatching returns a random string that does not match the
// pattern. Every candidate is checked against the whole pattern and
// replaced while it matches.
//
// Alternations retry until a candidate falls outside them, which may never
// happen on a tiny alphabet. Callers that need a bound must run this under
// their own timeout. A pattern that accepts every domain string, such as
// .* or a bare lookaround, yields a matching string.
func (p *Pattern) GenerateNotMatching(r Rand) string {
	return generate.GenerateNotMatching(p.root, p.newContext(r))
}

func (p *Pattern) newContext(r Rand) *generate.Context {
	return generate.NewContext(r, generate.Options{
		InfiniteRepeat:  p.config.InfiniteRepeat,
		CaseInsensitive: p.config.CaseInsensitive,
		Domain:          p.domain,
	}, p.oracle)
}

// Iterator returns a fresh iterator over every string the pattern matches,
// shortest repetitions first. Unbounded repetitions stop at
// Config.InfiniteRepeat; negative lookaround makes the iterator infinite.
func (p *Pattern) Iterator() Iterator {
	it, err := iter.Build(p.root, iter.Options{
		InfiniteRepeat:  p.config.InfiniteRepeat,
		CaseInsensitive: p.config.CaseInsensitive,
		Domain:          p.domain,
	}, p.oracle)
	if err != nil {
		// Compile already resolved the tree.
		panic(err)
	}
	return it
}

// Enumerate returns at most limit matching strings in iterator order;
// limit < 0 returns all of them. It never returns for a pattern with
// negative lookaround unless limit >= 0.
func (p *Pattern) Enumerate(limit int) []string {
	return iter.Drain(p.Iterator(), limit)
}

// Count returns the number of strings the pattern produces, or nil if it
// is infinite. Overlapping alternatives are counted once per alternative.
func (p *Pattern) Count() *big.Int {
	return count.Count(p.root, count.Options{CaseInsensitive: p.config.CaseInsensitive})
}

// Stats reports internal counters of a compiled pattern.
type Stats struct {
	// CachedRegexes is the number of subtree regexes the non-matching
	// generator and negative enumeration compiled and kept.
	CachedRegexes int
}

// Stats returns the pattern's current counters.
func (p *Pattern) Stats() Stats {
	return Stats{CachedRegexes: p.oracle.Len()}
}

// Source returns the original pattern text.
func (p *Pattern) Source() string {
	return p.source
}

// Warnings returns the non-fatal issues found while compiling, such as
// approximated lookaround.
func (p *Pattern) Warnings() []string {
	return p.warnings
}

// Dump writes the pattern's syntax tree to w, one node per line.
func (p *Pattern) Dump(w io.Writer) error {
	_, err := io.WriteString(w, ast.String(p.root))
	return err
}

// String returns the pattern text.
func (p *Pattern) String() string {
	return p.source
}

// IsInfinite reports whether n, as returned by Pattern.Count, stands for an
// infinite count.
func IsInfinite(n *big.Int) bool {
	return count.IsInfinite(n)
}

// FormatCount renders a count, "infinite" for nil.
func FormatCount(n *big.Int) string {
	return count.Format(n)
}
