package semantic_test

import (
	"strings"
	"testing"

	"github.com/kolkov/rxgen/internal/ast"
	"github.com/kolkov/rxgen/internal/parser"
	"github.com/kolkov/rxgen/internal/semantic"
)

func mustParse(t *testing.T, pattern string) ast.Node {
	t.Helper()
	root, err := parser.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", pattern, err)
	}
	return root
}

func TestResolveHandles(t *testing.T) {
	root := mustParse(t, `((a)(?:b)(?<c>c))\3\2\1`)
	res, err := semantic.Resolve(root)
	if err != nil {
		t.Fatalf("Resolve error = %v", err)
	}
	if len(res.Groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(res.Groups))
	}
	for i, g := range res.Groups {
		if g.Handle != i || g.Index != i+1 {
			t.Errorf("group %d: handle=%d index=%d", i, g.Handle, g.Index)
		}
	}
	if g, ok := res.Group(3); !ok || g.Name != "c" {
		t.Errorf("Group(3) = %+v, %v; want name c", g, ok)
	}
	if _, ok := res.Group(4); ok {
		t.Error("Group(4) found, want missing")
	}
	if len(res.Refs) != 3 {
		t.Errorf("refs = %d, want 3", len(res.Refs))
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestResolveEnclosing(t *testing.T) {
	// (a)* : the literal's direct parent is the group, its enclosing
	// construct is the repeat.
	root := mustParse(t, `(a)*\1`)
	res, err := semantic.Resolve(root)
	if err != nil {
		t.Fatal(err)
	}
	seq := root.(*ast.Sequence)
	rep := seq.Nodes[0].(*ast.Repeat)
	group := rep.Node.(*ast.Group)
	lit := group.Node

	if res.Parent(lit) != group {
		t.Errorf("Parent(a) = %T, want *ast.Group", res.Parent(lit))
	}
	if res.Enclosing(lit) != rep {
		t.Errorf("Enclosing(a) = %T, want *ast.Repeat", res.Enclosing(lit))
	}
	if res.Enclosing(seq.Nodes[1]) != seq {
		t.Errorf("Enclosing(\\1) = %T, want *ast.Sequence", res.Enclosing(seq.Nodes[1]))
	}
	if res.Parent(root) != nil {
		t.Errorf("Parent(root) = %T, want nil", res.Parent(root))
	}
}

func TestResolveWarnings(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{`(a\1)`, "inside its own group"},
		{`x(?!ab)`, "negative lookaround"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			res, err := semantic.Resolve(mustParse(t, tt.pattern))
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Warnings) != 1 {
				t.Fatalf("warnings = %v, want 1", res.Warnings)
			}
			if got := res.Warnings[0].String(); !strings.Contains(got, tt.want) {
				t.Errorf("warning = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestResolveHandBuiltErrors(t *testing.T) {
	tests := []struct {
		name string
		root ast.Node
		want string
	}{
		{
			name: "undefined reference",
			root: &ast.Sequence{Nodes: []ast.Node{
				&ast.GroupRef{Index: 1},
				&ast.Group{Index: 1, Node: &ast.FinalSymbol{Value: "a"}},
			}},
			want: "undefined group",
		},
		{
			name: "index gap",
			root: &ast.Group{Index: 2, Node: &ast.FinalSymbol{Value: "a"}},
			want: "out of parse order",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := semantic.Resolve(tt.root)
			if err == nil {
				t.Fatal("Resolve succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		root ast.Node
		want string // "" for valid
	}{
		{"parsed", nil, ""},
		{"bad bounds", &ast.Repeat{Node: &ast.FinalSymbol{}, Min: 3, Max: 2}, "below minimum"},
		{"negative min", &ast.Repeat{Node: &ast.FinalSymbol{}, Min: -1, Max: 2}, "negative repeat"},
		{"empty choice", &ast.Choice{}, "empty alternation"},
		{"nil child", &ast.Sequence{Nodes: []ast.Node{nil}}, "nil child"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := tt.root
			if root == nil {
				root = mustParse(t, `(a|b){2,5}\1[^x]`)
			}
			res, err := semantic.Resolve(root)
			if err != nil {
				t.Fatal(err)
			}
			errs := semantic.Check(root, res)
			if tt.want == "" {
				if len(errs) != 0 {
					t.Errorf("Check errors = %v, want none", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("Check found no errors, want %q", tt.want)
			}
			if !strings.Contains(errs[0].Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", errs[0], tt.want)
			}
		})
	}
}

func TestCheckEditedAfterResolve(t *testing.T) {
	seq := &ast.Sequence{Nodes: []ast.Node{&ast.FinalSymbol{Value: "a"}}}
	res, err := semantic.Resolve(seq)
	if err != nil {
		t.Fatal(err)
	}
	seq.Nodes = append(seq.Nodes, &ast.FinalSymbol{Value: "b"})

	errs := semantic.Check(seq, res)
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "not covered by resolution") {
		t.Errorf("Check errors = %v, want one uncovered node", errs)
	}
}
