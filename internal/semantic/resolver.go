package semantic

import (
	"github.com/kolkov/rxgen/internal/ast"
)

// GroupInfo describes one capturing group.
type GroupInfo struct {
	Index  int    // 1-based parse-order number
	Name   string // empty for unnamed groups
	Handle int    // dense 0-based slot, assigned in parse order
	Node   *ast.Group
}

// ResolveResult contains the results of semantic analysis.
type ResolveResult struct {
	// Capturing groups in parse order; Groups[i].Handle == i.
	Groups []*GroupInfo

	// Backreferences in parse order.
	Refs []*ast.GroupRef

	// HasNegation is set when the tree contains a NotSymbol.
	HasNegation bool

	// Errors encountered during resolution
	Errors ErrorList

	// Warnings (non-fatal issues)
	Warnings WarningList

	byIndex map[int]*GroupInfo
	parents map[ast.Node]ast.Node
}

// Group returns the capturing group with the given index.
func (r *ResolveResult) Group(index int) (*GroupInfo, bool) {
	g, ok := r.byIndex[index]
	return g, ok
}

// Parent returns the direct parent of n, or nil for the root.
func (r *ResolveResult) Parent(n ast.Node) ast.Node {
	return r.parents[n]
}

// Enclosing returns the nearest ancestor of n that is not a Group.
// Groups are transparent: (a)* and a* enclose 'a' the same way.
func (r *ResolveResult) Enclosing(n ast.Node) ast.Node {
	p := r.Parent(n)
	for {
		if _, ok := p.(*ast.Group); !ok {
			return p
		}
		p = r.Parent(p)
	}
}

// Resolver performs semantic analysis on a tree.
type Resolver struct {
	result *ResolveResult
	open   []*ast.Group // capturing groups enclosing the current node
}

// Resolve assigns handles to capturing groups (pass one of the iterator
// build) and records parent links. Groups must be numbered 1, 2, ... in
// parse order and every backreference must name a group that was opened
// before it.
func Resolve(root ast.Node) (*ResolveResult, error) {
	r := &Resolver{
		result: &ResolveResult{
			byIndex: make(map[int]*GroupInfo),
			parents: make(map[ast.Node]ast.Node),
		},
	}

	r.resolve(root, nil)

	if err := r.result.Errors.Err(); err != nil {
		return r.result, err
	}
	return r.result, nil
}

func (r *Resolver) resolve(node, parent ast.Node) {
	if node == nil {
		return
	}
	res := r.result
	res.parents[node] = parent

	switch n := node.(type) {
	case *ast.Group:
		if n.IsCapturing() {
			want := len(res.Groups) + 1
			if n.Index != want {
				res.Errors.Add(n.Pos(), "group index %d out of parse order, want %d", n.Index, want)
				return
			}
			info := &GroupInfo{Index: n.Index, Name: n.Name, Handle: len(res.Groups), Node: n}
			res.Groups = append(res.Groups, info)
			res.byIndex[n.Index] = info
			r.open = append(r.open, n)
			defer func() { r.open = r.open[:len(r.open)-1] }()
		}

	case *ast.GroupRef:
		if _, ok := res.byIndex[n.Index]; !ok {
			res.Errors.Add(n.Pos(), "reference to undefined group \\%d", n.Index)
			return
		}
		for _, g := range r.open {
			if g.Index == n.Index {
				res.Warnings.Add(n.Pos(), "backreference \\%d inside its own group replays an empty value", n.Index)
			}
		}
		res.Refs = append(res.Refs, n)

	case *ast.NotSymbol:
		if !res.HasNegation {
			res.Warnings.Add(n.Pos(), "negative lookaround is approximated; enumeration of this pattern never ends")
		}
		res.HasNegation = true
	}

	for _, c := range ast.Children(node) {
		r.resolve(c, node)
	}
}
