// Package count computes how many strings a pattern tree can produce.
//
// The result is an upper bound that follows the tree's structure rather
// than its language: overlapping alternatives such as (a|a) are counted
// twice, and a backreference only adds a value where its enclosing
// construct is a repetition or an alternation. A nil result means the
// count is infinite.
package count

import (
	"math/big"

	"github.com/kolkov/rxgen/internal/ast"
	"github.com/kolkov/rxgen/internal/charset"
	"github.com/kolkov/rxgen/internal/semantic"
)

// Options control counting.
type Options struct {
	// CaseInsensitive counts every case variant of literals and sets.
	CaseInsensitive bool
}

// Count returns the number of strings node produces, or nil if infinite.
func Count(node ast.Node, opts Options) *big.Int {
	// Parent links survive resolution errors; counting needs nothing else.
	resolved, _ := semantic.Resolve(node)
	c := &counter{opts: opts, resolved: resolved}
	return c.count(node)
}

// IsInfinite reports whether n is the infinite count.
func IsInfinite(n *big.Int) bool {
	return n == nil
}

// Format renders a count, "infinite" for nil.
func Format(n *big.Int) string {
	if n == nil {
		return "infinite"
	}
	return n.String()
}

type counter struct {
	opts     Options
	resolved *semantic.ResolveResult
}

func (c *counter) count(n ast.Node) *big.Int {
	if n == nil {
		return big.NewInt(0)
	}
	return ast.Accept[*big.Int](n, c)
}

func (c *counter) VisitFinalSymbol(n *ast.FinalSymbol) *big.Int {
	total := big.NewInt(1)
	if !c.opts.CaseInsensitive {
		return total
	}
	for _, r := range n.Value {
		if v := len(charset.Variants(r)); v > 1 {
			total.Mul(total, big.NewInt(int64(v)))
		}
	}
	return total
}

func (c *counter) VisitSymbolSet(n *ast.SymbolSet) *big.Int {
	set := n.Set
	if c.opts.CaseInsensitive {
		set = set.Fold()
	}
	return big.NewInt(int64(set.Len()))
}

// VisitSequence multiplies the children, skipping zero counts.
func (c *counter) VisitSequence(n *ast.Sequence) *big.Int {
	total := big.NewInt(0)
	for _, child := range n.Nodes {
		v := c.count(child)
		if v == nil {
			return nil
		}
		switch {
		case v.Sign() == 0:
		case total.Sign() == 0:
			total.Set(v)
		default:
			total.Mul(total, v)
		}
	}
	return total
}

func (c *counter) VisitChoice(n *ast.Choice) *big.Int {
	total := big.NewInt(0)
	for _, child := range n.Nodes {
		v := c.count(child)
		if v == nil {
			return nil
		}
		total.Add(total, v)
	}
	return total
}

// VisitRepeat sums child^i over the repetition range.
func (c *counter) VisitRepeat(n *ast.Repeat) *big.Int {
	if n.IsUnbounded() {
		return nil
	}
	v := c.count(n.Node)
	if v == nil {
		return nil
	}
	total := big.NewInt(0)
	pow := new(big.Int).Exp(v, big.NewInt(int64(n.Min)), nil)
	for i := n.Min; i <= n.Max; i++ {
		total.Add(total, pow)
		pow.Mul(pow, v)
	}
	return total
}

func (c *counter) VisitGroup(n *ast.Group) *big.Int {
	return c.count(n.Node)
}

// VisitGroupRef adds one value inside a repetition or alternation and
// nothing elsewhere.
func (c *counter) VisitGroupRef(n *ast.GroupRef) *big.Int {
	if c.resolved != nil {
		switch c.resolved.Enclosing(n).(type) {
		case *ast.Repeat, *ast.Choice:
			return big.NewInt(1)
		}
	}
	return big.NewInt(0)
}

func (c *counter) VisitNotSymbol(*ast.NotSymbol) *big.Int {
	return nil
}
