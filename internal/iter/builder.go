package iter

import (
	"github.com/kolkov/rxgen/internal/ast"
	"github.com/kolkov/rxgen/internal/charset"
	"github.com/kolkov/rxgen/internal/runtime"
	"github.com/kolkov/rxgen/internal/semantic"
)

// DefaultInfiniteRepeat is the length ceiling of unbounded repetitions.
const DefaultInfiniteRepeat = 100

// Options control enumeration.
type Options struct {
	// InfiniteRepeat replaces the upper bound of unbounded quantifiers.
	InfiniteRepeat int

	// CaseInsensitive enumerates case variants of literals and sets.
	CaseInsensitive bool

	// Domain is the alphabet of negated sub-patterns.
	Domain charset.Set
}

// Builder turns a tree into an iterator in two passes: resolution assigns
// every capturing group a registry handle, then iterators are built bottom
// up around a shared registry.
type Builder struct {
	opts     Options
	oracle   *runtime.Oracle
	resolved *semantic.ResolveResult
	reg      *Registry
}

// Build returns an iterator over every string matching root.
func Build(root ast.Node, opts Options, oracle *runtime.Oracle) (Iterator, error) {
	if opts.InfiniteRepeat <= 0 {
		opts.InfiniteRepeat = DefaultInfiniteRepeat
	}
	if opts.Domain.IsEmpty() {
		opts.Domain = charset.Printable
	}

	resolved, err := semantic.Resolve(root)
	if err != nil {
		return nil, err
	}
	indexes := make([]int, len(resolved.Groups))
	for _, g := range resolved.Groups {
		indexes[g.Handle] = g.Index
	}

	b := &Builder{
		opts:     opts,
		oracle:   oracle,
		resolved: resolved,
		reg:      NewRegistry(indexes),
	}
	return &rooted{Iterator: b.build(root), reg: b.reg}, nil
}

// rooted clears the registry along with the tree on Reset.
type rooted struct {
	Iterator
	reg *Registry
}

func (it *rooted) Reset() {
	it.Iterator.Reset()
	it.reg.Clear()
}

func (b *Builder) build(node ast.Node) Iterator {
	switch n := node.(type) {
	case *ast.FinalSymbol:
		if b.opts.CaseInsensitive {
			return b.caseVariants(n.Value)
		}
		return Single(n.Value)

	case *ast.SymbolSet:
		if b.opts.CaseInsensitive {
			return Array(n.Set.Fold())
		}
		return Array(n.Set)

	case *ast.Sequence:
		children := make([]Iterator, len(n.Nodes))
		for i, c := range n.Nodes {
			children[i] = b.build(c)
		}
		return Product(children...)

	case *ast.Choice:
		children := make([]Iterator, len(n.Nodes))
		for i, c := range n.Nodes {
			children[i] = b.build(c)
		}
		return Concat(children...)

	case *ast.Repeat:
		max := n.Max
		if n.IsUnbounded() {
			max = b.opts.InfiniteRepeat
		}
		if max < n.Min {
			max = n.Min
		}
		child := n.Node
		return Repeat(func() Iterator { return b.build(child) }, n.Min, max)

	case *ast.Group:
		inner := b.build(n.Node)
		if !n.IsCapturing() {
			return inner
		}
		info, _ := b.resolved.Group(n.Index)
		return Group(inner, b.reg, info.Handle)

	case *ast.GroupRef:
		info, _ := b.resolved.Group(n.Index)
		return Ref(b.reg, info.Handle)

	case *ast.NotSymbol:
		return Negative(n.Node, b.opts.Domain, b.oracle, b.reg)
	}
	return Single("")
}

// caseVariants enumerates every case spelling of s, varying the last rune
// fastest.
func (b *Builder) caseVariants(s string) Iterator {
	if s == "" {
		return Single("")
	}
	var children []Iterator
	for _, c := range s {
		children = append(children, Array(charset.Of(charset.Variants(c)...)))
	}
	return Product(children...)
}
