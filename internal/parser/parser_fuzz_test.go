package parser_test

import (
	"errors"
	"testing"

	"github.com/kolkov/rxgen/internal/ast"
	"github.com/kolkov/rxgen/internal/parser"
)

// FuzzParser tests the parser with random inputs to find crashes.
// Every input must either produce a tree or a *ParseError, never both.
func FuzzParser(f *testing.F) {
	seeds := []string{
		// Empty and minimal
		"",
		"a",
		"abc",
		".",

		// Classes
		"[abc]",
		"[^a-z]",
		"[]a-]",
		`[\d\s_]`,
		"[[:alpha:][:digit:]]",
		"[a-z&&[^aeiou]]",
		`[\Q]\E]`,

		// Quantifiers
		"a*",
		"a+?",
		"a{2}",
		"a{2,}",
		"a{2,5}",
		"(ab){1,3}+",
		"a{",
		"a{1,",

		// Groups and references
		"(a|b)",
		"(?:a|b)c",
		`(a)(b)\2\1`,
		`(?<n>x)\k<n>`,
		"(?=ab)(?!cd)",
		"(?<=x)(?<!y)",

		// Escapes
		`\x41\x{1F600}é\0101\cA`,
		`\Qa.b\E`,
		`\p{Lu}\P{L}\pN`,

		// Errors
		"(",
		")",
		"[",
		"*",
		`\`,
		`\9`,
		"a^",
		"$a",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, pattern string) {
		root, err := parser.Parse(pattern)
		if err != nil {
			if root != nil {
				t.Fatalf("Parse(%q) returned both a tree and an error", pattern)
			}
			var pe *parser.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error %T is not *ParseError", pattern, err)
			}
			return
		}
		if root == nil {
			t.Fatalf("Parse(%q) returned nil tree without error", pattern)
		}
		checkInvariants(t, pattern, root)
	})
}

// checkInvariants verifies the structural invariants of a parsed tree.
func checkInvariants(t *testing.T, pattern string, root ast.Node) {
	t.Helper()
	maxGroup := 0
	ast.Walk(root, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Repeat:
			if n.Min < 0 || (n.Max != ast.Unbounded && n.Max < n.Min) {
				t.Fatalf("Parse(%q): invalid repeat {%d,%d}", pattern, n.Min, n.Max)
			}
		case *ast.Group:
			if n.IsCapturing() {
				if n.Index != maxGroup+1 {
					t.Fatalf("Parse(%q): group index %d out of order", pattern, n.Index)
				}
				maxGroup = n.Index
			}
		case *ast.GroupRef:
			if n.Index < 1 || n.Index > maxGroup {
				t.Fatalf("Parse(%q): reference \\%d to a group not yet opened", pattern, n.Index)
			}
		}
		return true
	})
}
