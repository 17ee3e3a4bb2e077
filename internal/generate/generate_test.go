package generate_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/kolkov/rxgen/internal/ast"
	"github.com/kolkov/rxgen/internal/charset"
	"github.com/kolkov/rxgen/internal/generate"
	"github.com/kolkov/rxgen/internal/parser"
	"github.com/kolkov/rxgen/internal/runtime"
)

// corpus holds patterns that RE2 expresses exactly, so the oracle can
// verify both generators.
var corpus = []string{
	"abc",
	"[a-z]{3}",
	`\d{3}-\d{4}`,
	"(foo|bar)baz",
	"x[0-9]+y",
	"(cat|dog|bird)",
	"[^aeiou]{2,4}",
	"a{2,5}",
	"hello|world",
	`[A-F\d]{4}`,
	"(?:ab|cd){1,3}",
	`\w+@\w+\.com`,
	"a?.",
	"x*.",
	"(?:xx|[^x]){1,2}",
	"[ab]?(?:c|d*)",
}

func newContext(seed uint64, opts generate.Options) *generate.Context {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return generate.NewContext(r, opts, runtime.NewOracle(opts.CaseInsensitive))
}

func mustParse(t *testing.T, pattern string) ast.Node {
	t.Helper()
	root, err := parser.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", pattern, err)
	}
	return root
}

func matches(t *testing.T, oracle *runtime.Oracle, root ast.Node, s string) bool {
	t.Helper()
	re, err := oracle.Compile(root, nil)
	if err != nil {
		t.Fatalf("oracle.Compile error = %v", err)
	}
	return re.MatchString(s)
}

func TestGenerateMatches(t *testing.T) {
	oracle := runtime.NewOracle(false)
	for _, pattern := range corpus {
		t.Run(pattern, func(t *testing.T) {
			root := mustParse(t, pattern)
			ctx := newContext(1, generate.DefaultOptions())
			for i := 0; i < 50; i++ {
				ctx.Reset()
				s := generate.Generate(root, ctx)
				if !matches(t, oracle, root, s) {
					t.Fatalf("Generate(%q) = %q does not match", pattern, s)
				}
			}
		})
	}
}

func TestGenerateNotMatching(t *testing.T) {
	oracle := runtime.NewOracle(false)
	for _, pattern := range corpus {
		t.Run(pattern, func(t *testing.T) {
			root := mustParse(t, pattern)
			ctx := newContext(2, generate.DefaultOptions())
			for i := 0; i < 200; i++ {
				ctx.Reset()
				s := generate.GenerateNotMatching(root, ctx)
				if matches(t, oracle, root, s) {
					t.Fatalf("GenerateNotMatching(%q) = %q matches", pattern, s)
				}
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	root := mustParse(t, `(\w{2,8})-[a-f]*\1|x?y+`)
	run := func(gen func(ast.Node, *generate.Context) string) []string {
		ctx := newContext(42, generate.DefaultOptions())
		out := make([]string, 20)
		for i := range out {
			ctx.Reset()
			out[i] = gen(root, ctx)
		}
		return out
	}
	for name, gen := range map[string]func(ast.Node, *generate.Context) string{
		"matching":     generate.Generate,
		"not matching": generate.GenerateNotMatching,
	} {
		a, b := run(gen), run(gen)
		if strings.Join(a, "\x00") != strings.Join(b, "\x00") {
			t.Errorf("%s: same seed produced different output:\n%q\n%q", name, a, b)
		}
	}
}

func TestGenerateBackreference(t *testing.T) {
	root := mustParse(t, `(a|b|c)-\1`)
	ctx := newContext(3, generate.DefaultOptions())
	for i := 0; i < 30; i++ {
		ctx.Reset()
		s := generate.Generate(root, ctx)
		if len(s) != 3 || s[0] != s[2] {
			t.Fatalf("Generate = %q, want x-x", s)
		}
	}
}

func TestGenerateReferenceBeforeCapture(t *testing.T) {
	// \1 inside its own group replays nothing on the first pass.
	root := mustParse(t, `(a\1)`)
	ctx := newContext(4, generate.DefaultOptions())
	if got := generate.Generate(root, ctx); got != "a" {
		t.Errorf("Generate = %q, want %q", got, "a")
	}
}

func TestGenerateUnboundedCeiling(t *testing.T) {
	root := mustParse(t, "a*")
	opts := generate.DefaultOptions()
	opts.InfiniteRepeat = 5
	ctx := newContext(5, opts)
	for i := 0; i < 100; i++ {
		if s := generate.Generate(root, ctx); len(s) > 5 {
			t.Fatalf("Generate = %q, longer than the ceiling", s)
		}
	}
}

func TestGenerateCaseInsensitive(t *testing.T) {
	root := mustParse(t, "hello")
	opts := generate.DefaultOptions()
	opts.CaseInsensitive = true
	ctx := newContext(6, opts)
	sawUpper := false
	for i := 0; i < 50; i++ {
		s := generate.Generate(root, ctx)
		if !strings.EqualFold(s, "hello") {
			t.Fatalf("Generate = %q, want a case variant of hello", s)
		}
		sawUpper = sawUpper || s != "hello"
		if n := generate.GenerateNotMatching(root, ctx); strings.EqualFold(n, "hello") {
			t.Fatalf("GenerateNotMatching = %q, a case variant of hello", n)
		}
	}
	if !sawUpper {
		t.Error("case-insensitive generation never flipped a letter")
	}
}

func TestGenerateNotMatchingEdges(t *testing.T) {
	tests := []struct {
		name  string
		node  ast.Node
		check func(string) bool
	}{
		{
			name:  "empty literal yields one rune",
			node:  &ast.FinalSymbol{},
			check: func(s string) bool { return len(s) == 1 },
		},
		{
			name:  "full-domain set contributes nothing",
			node:  &ast.SymbolSet{Set: charset.Printable},
			check: func(s string) bool { return s == "" },
		},
		{
			name: "zero-minimum repeat runs at least once",
			node: &ast.Repeat{Node: &ast.FinalSymbol{Value: "a"}, Min: 0, Max: 0},
			check: func(s string) bool {
				return len(s) == 1 && s != "a"
			},
		},
		{
			name:  "negation delegates to matching",
			node:  &ast.NotSymbol{Node: &ast.FinalSymbol{Value: "xy"}},
			check: func(s string) bool { return s == "xy" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(7, generate.DefaultOptions())
			for i := 0; i < 20; i++ {
				if s := generate.GenerateNotMatching(tt.node, ctx); !tt.check(s) {
					t.Fatalf("GenerateNotMatching = %q", s)
				}
			}
		})
	}
}

func TestGenerateSingleRuneDomain(t *testing.T) {
	opts := generate.DefaultOptions()
	opts.Domain = charset.Of('a')
	ctx := newContext(8, opts)
	got := generate.GenerateNotMatching(&ast.FinalSymbol{Value: "aa"}, ctx)
	if got == "aa" {
		t.Errorf("GenerateNotMatching = %q, want a different string", got)
	}
}
