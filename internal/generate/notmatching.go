package generate

import (
	"maps"
	"strings"

	"github.com/kolkov/rxgen/internal/ast"
)

// notMatchingAttempts bounds the whole-string retry of GenerateNotMatching.
const notMatchingAttempts = 1000

// GenerateNotMatching returns a random string that does not match node.
//
// Candidates are built piecewise (see notMatching) and then checked against
// the whole of node with ctx.Oracle, since pieces that each fail can still
// join into a match: a? followed by . accepts any single rune. A rejected
// candidate is replaced, alternately by a fresh one and by a random edit of
// the last one. After notMatchingAttempts the first candidate is returned;
// that only happens when node accepts almost every domain string, or its
// lookaround approximation does. Without an oracle, or when node has no
// RE2 rendering, the first candidate is returned unchecked.
func GenerateNotMatching(node ast.Node, ctx *Context) string {
	saved := maps.Clone(ctx.Groups)
	first := notMatching(node, ctx)
	if ctx.Oracle == nil {
		return first
	}
	re, err := ctx.Oracle.Compile(node, nil)
	if err != nil {
		return first
	}
	s := first
	for i := 0; re.MatchString(s); i++ {
		if i == notMatchingAttempts {
			return first
		}
		if i%2 == 0 {
			ctx.Groups = maps.Clone(saved)
			s = notMatching(node, ctx)
		} else {
			s = ctx.edit(s)
		}
	}
	return s
}

// notMatching builds a candidate that fails node piece by piece.
//
// A set draws from the domain minus the set; a literal becomes a different
// string of the same length; a repetition runs at least once. An
// alternation retries random alternatives until the candidate falls outside
// the alternation's language as decided by ctx.Oracle. That loop has no
// upper bound: on a degenerate domain it may not terminate, and callers
// that need a bound must impose one.
func notMatching(node ast.Node, ctx *Context) string {
	switch n := node.(type) {
	case *ast.FinalSymbol:
		return differentLiteral(n.Value, ctx)

	case *ast.SymbolSet:
		excluded := n.Set
		if ctx.Options.CaseInsensitive {
			excluded = excluded.Fold()
		}
		rest := ctx.Options.Domain.Subtract(excluded)
		if rest.IsEmpty() {
			return ""
		}
		return string(ctx.pick(rest))

	case *ast.Sequence:
		var sb strings.Builder
		for _, c := range n.Nodes {
			sb.WriteString(notMatching(c, ctx))
		}
		return sb.String()

	case *ast.Choice:
		return notMatchingChoice(n, ctx)

	case *ast.Repeat:
		min := max(n.Min, 1)
		count := ctx.between(min, ctx.upper(min, n.Max))
		var sb strings.Builder
		for i := 0; i < count; i++ {
			sb.WriteString(notMatching(n.Node, ctx))
		}
		return sb.String()

	case *ast.Group:
		s := notMatching(n.Node, ctx)
		if n.IsCapturing() {
			ctx.Groups[n.Index] = s
		}
		return s

	case *ast.GroupRef:
		return ctx.Groups[n.Index]

	case *ast.NotSymbol:
		return Generate(n.Node, ctx)
	}
	return ""
}

// edit returns s with one random change: a domain rune appended, the last
// rune dropped, or the whole string redrawn at a nearby length.
func (ctx *Context) edit(s string) string {
	domain := ctx.Options.Domain
	if domain.IsEmpty() {
		return ""
	}
	runes := []rune(s)
	switch ctx.Rand.IntN(3) {
	case 0:
		return s + string(ctx.pick(domain))
	case 1:
		if len(runes) > 0 {
			return string(runes[:len(runes)-1])
		}
		return string(ctx.pick(domain))
	}
	out := make([]rune, ctx.Rand.IntN(len(runes)+3))
	for i := range out {
		out[i] = ctx.pick(domain)
	}
	return string(out)
}

// differentLiteral returns a random domain string of the same length as s
// that differs from it. An empty s yields one random rune.
func differentLiteral(s string, ctx *Context) string {
	domain := ctx.Options.Domain
	if domain.IsEmpty() {
		return ""
	}
	n := len([]rune(s))
	if n == 0 {
		return string(ctx.pick(domain))
	}
	same := func(a string) bool {
		if ctx.Options.CaseInsensitive {
			return strings.EqualFold(a, s)
		}
		return a == s
	}
	var sb strings.Builder
	for {
		sb.Reset()
		for i := 0; i < n; i++ {
			sb.WriteRune(ctx.pick(domain))
		}
		if !same(sb.String()) {
			return sb.String()
		}
		if domain.Len() == 1 {
			// Only one string of this length exists; lengthen it.
			sb.WriteRune(domain.At(0))
			return sb.String()
		}
	}
}

// notMatchingChoice draws non-matching candidates from random alternatives
// until one is rejected by the oracle.
func notMatchingChoice(n *ast.Choice, ctx *Context) string {
	if len(n.Nodes) == 0 {
		return differentLiteral("", ctx)
	}
	candidate := func() string {
		return notMatching(n.Nodes[ctx.Rand.IntN(len(n.Nodes))], ctx)
	}
	if ctx.Oracle == nil {
		return candidate()
	}
	re, err := ctx.Oracle.Compile(n, ctx.Groups)
	if err != nil {
		// The subtree has no RE2 rendering; nothing can be checked.
		return candidate()
	}
	for {
		s := candidate()
		if !re.MatchString(s) {
			return s
		}
	}
}
