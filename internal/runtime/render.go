package runtime

import (
	"strconv"
	"strings"

	"github.com/kolkov/rxgen/internal/ast"
	"github.com/kolkov/rxgen/internal/charset"
)

// maxRepeat is the largest repetition count RE2 accepts.
const maxRepeat = 1000

// Render converts a subtree to RE2 syntax.
//
// RE2 has no backreferences and no lookaround, so the result describes a
// superset of the subtree's language:
//   - a reference to a group inside the subtree repeats the group's pattern;
//   - a reference to a group outside the subtree becomes its captured value
//     from captured, or the empty string when the group has not produced;
//   - a reference inside its own group, and every NotSymbol, match anything;
//   - repetition counts above 1000 lose their upper bound.
//
// A string that does not match the rendered pattern therefore never matches
// the subtree either.
func Render(node ast.Node, captured map[int]string) string {
	r := &renderer{
		captured: captured,
		local:    make(map[int]*ast.Group),
		open:     make(map[int]bool),
	}
	ast.Walk(node, func(n ast.Node) bool {
		if g, ok := n.(*ast.Group); ok && g.IsCapturing() {
			r.local[g.Index] = g
		}
		return true
	})
	r.render(node)
	return r.sb.String()
}

type renderer struct {
	sb       strings.Builder
	captured map[int]string
	local    map[int]*ast.Group
	open     map[int]bool
}

func (r *renderer) render(node ast.Node) {
	switch n := node.(type) {
	case nil:
		r.sb.WriteString("(?:)")
	case *ast.FinalSymbol:
		r.literal(n.Value)
	case *ast.SymbolSet:
		r.class(n.Set)
	case *ast.Sequence:
		r.sb.WriteString("(?:")
		for _, c := range n.Nodes {
			r.render(c)
		}
		r.sb.WriteByte(')')
	case *ast.Choice:
		r.sb.WriteString("(?:")
		for i, c := range n.Nodes {
			if i > 0 {
				r.sb.WriteByte('|')
			}
			r.render(c)
		}
		r.sb.WriteByte(')')
	case *ast.Repeat:
		r.sb.WriteString("(?:")
		r.render(n.Node)
		r.sb.WriteByte(')')
		r.bounds(n.Min, n.Max)
	case *ast.Group:
		if n.IsCapturing() {
			r.open[n.Index] = true
			defer delete(r.open, n.Index)
		}
		r.sb.WriteString("(?:")
		r.render(n.Node)
		r.sb.WriteByte(')')
	case *ast.GroupRef:
		r.ref(n.Index)
	case *ast.NotSymbol:
		r.sb.WriteString("(?:.*)")
	}
}

func (r *renderer) ref(index int) {
	if r.open[index] {
		r.sb.WriteString("(?:.*)")
		return
	}
	if g, ok := r.local[index]; ok {
		r.render(g)
		return
	}
	r.literal(r.captured[index])
}

func (r *renderer) bounds(min, max int) {
	if min > maxRepeat {
		min, max = maxRepeat, ast.Unbounded
	}
	if max > maxRepeat {
		max = ast.Unbounded
	}
	r.sb.WriteByte('{')
	r.sb.WriteString(strconv.Itoa(min))
	switch {
	case max == ast.Unbounded:
		r.sb.WriteByte(',')
	case max != min:
		r.sb.WriteByte(',')
		r.sb.WriteString(strconv.Itoa(max))
	}
	r.sb.WriteByte('}')
}

func (r *renderer) literal(s string) {
	if s == "" {
		r.sb.WriteString("(?:)")
		return
	}
	r.sb.WriteString("(?:")
	for _, c := range s {
		writeRune(&r.sb, c)
	}
	r.sb.WriteByte(')')
}

func (r *renderer) class(set charset.Set) {
	if set.IsEmpty() {
		r.sb.WriteString(`[^\x{0}-\x{10ffff}]`)
		return
	}
	r.sb.WriteByte('[')
	for _, rg := range set.Ranges() {
		writeRune(&r.sb, rg.Lo)
		if rg.Hi > rg.Lo {
			r.sb.WriteByte('-')
			writeRune(&r.sb, rg.Hi)
		}
	}
	r.sb.WriteByte(']')
}

// writeRune writes c so that it is literal both inside and outside a class.
func writeRune(sb *strings.Builder, c rune) {
	if c < 0x80 && (c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
		sb.WriteRune(c)
		return
	}
	sb.WriteString(`\x{`)
	sb.WriteString(strconv.FormatInt(int64(c), 16))
	sb.WriteByte('}')
}
