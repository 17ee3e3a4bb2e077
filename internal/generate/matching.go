package generate

import (
	"strings"

	"github.com/kolkov/rxgen/internal/ast"
	"github.com/kolkov/rxgen/internal/charset"
)

// Generate returns a random string matching node.
//
// Literals are copied (with random case flips in case-insensitive mode),
// sets and alternatives are drawn uniformly, and repetition counts are
// uniform in [Min, Max] with unbounded maxima replaced by
// Options.InfiniteRepeat. A group records its output in ctx.Groups; a
// reference replays it, or yields "" before the group produced. NotSymbol
// yields a piecewise non-matching candidate of its operand.
func Generate(node ast.Node, ctx *Context) string {
	switch n := node.(type) {
	case *ast.FinalSymbol:
		if ctx.Options.CaseInsensitive {
			return flipCase(n.Value, ctx)
		}
		return n.Value

	case *ast.SymbolSet:
		set := n.Set
		if ctx.Options.CaseInsensitive {
			set = set.Fold()
		}
		if set.IsEmpty() {
			return ""
		}
		return string(ctx.pick(set))

	case *ast.Sequence:
		var sb strings.Builder
		for _, c := range n.Nodes {
			sb.WriteString(Generate(c, ctx))
		}
		return sb.String()

	case *ast.Choice:
		if len(n.Nodes) == 0 {
			return ""
		}
		return Generate(n.Nodes[ctx.Rand.IntN(len(n.Nodes))], ctx)

	case *ast.Repeat:
		count := ctx.between(n.Min, ctx.upper(n.Min, n.Max))
		var sb strings.Builder
		for i := 0; i < count; i++ {
			sb.WriteString(Generate(n.Node, ctx))
		}
		return sb.String()

	case *ast.Group:
		s := Generate(n.Node, ctx)
		if n.IsCapturing() {
			ctx.Groups[n.Index] = s
		}
		return s

	case *ast.GroupRef:
		return ctx.Groups[n.Index]

	case *ast.NotSymbol:
		return notMatching(n.Node, ctx)
	}
	return ""
}

// flipCase replaces every rune of s by a random member of its case orbit.
func flipCase(s string, ctx *Context) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, c := range s {
		v := charset.Variants(c)
		sb.WriteRune(v[ctx.Rand.IntN(len(v))])
	}
	return sb.String()
}
