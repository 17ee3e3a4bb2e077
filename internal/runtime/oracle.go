package runtime

import (
	"github.com/kolkov/rxgen/internal/ast"
)

// DefaultCacheSize bounds the number of compiled subtrees kept per oracle.
const DefaultCacheSize = 64

// Oracle answers full-match queries for pattern subtrees.
// It is safe for concurrent use.
type Oracle struct {
	cache *RegexCache
}

// NewOracle creates an oracle. When caseInsensitive is set, subtrees match
// every case variant of their literals.
func NewOracle(caseInsensitive bool) *Oracle {
	return &Oracle{
		cache: NewRegexCacheWithConfig(DefaultCacheSize, RegexConfig{CaseInsensitive: caseInsensitive}),
	}
}

// Compile returns the full-match regex for node. Backreferences to groups
// outside node resolve through captured.
func (o *Oracle) Compile(node ast.Node, captured map[int]string) (*Regex, error) {
	return o.cache.Get(Render(node, captured))
}

// Len returns the number of compiled subtrees currently cached.
func (o *Oracle) Len() int {
	return o.cache.Len()
}
