package semantic

import (
	"github.com/kolkov/rxgen/internal/ast"
)

// Checker performs structural validation after resolution.
type Checker struct {
	result *ResolveResult
	errors ErrorList
}

// Check validates node invariants that the parser guarantees for parsed
// trees: repeat bounds, non-empty alternations and non-nil children. It
// also reports nodes whose parent differs from the one recorded by
// result, which happens when a tree is edited after resolution.
func Check(root ast.Node, result *ResolveResult) []error {
	c := &Checker{
		result: result,
	}

	c.check(root)

	if len(c.errors) == 0 {
		return nil
	}

	errs := make([]error, len(c.errors))
	for i, e := range c.errors {
		errs[i] = e
	}
	return errs
}

func (c *Checker) check(node ast.Node) {
	ast.Inspect(node, func(n, parent ast.Node) bool {
		if c.result != nil && c.result.Parent(n) != parent {
			c.errors.Add(n.Pos(), "%T not covered by resolution", n)
		}
		switch n := n.(type) {
		case *ast.Repeat:
			if n.Min < 0 {
				c.errors.Add(n.Pos(), "negative repeat minimum %d", n.Min)
			}
			if n.Max != ast.Unbounded && n.Max < n.Min {
				c.errors.Add(n.Pos(), "repeat maximum %d below minimum %d", n.Max, n.Min)
			}
			if n.Node == nil {
				c.errors.Add(n.Pos(), "repeat without operand")
			}
		case *ast.Choice:
			if len(n.Nodes) == 0 {
				c.errors.Add(n.Pos(), "empty alternation")
			}
			c.checkChildren(n, n.Nodes)
		case *ast.Sequence:
			c.checkChildren(n, n.Nodes)
		case *ast.Group:
			if n.Node == nil {
				c.errors.Add(n.Pos(), "group without body")
			}
		case *ast.NotSymbol:
			if n.Node == nil {
				c.errors.Add(n.Pos(), "negation without body")
			}
		}
		return true
	})
}

func (c *Checker) checkChildren(parent ast.Node, nodes []ast.Node) {
	for i, child := range nodes {
		if child == nil {
			c.errors.Add(parent.Pos(), "nil child %d", i)
		}
	}
}
