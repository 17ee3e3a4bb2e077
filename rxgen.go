package rxgen

import (
	"errors"
	"math/rand/v2"

	"github.com/kolkov/rxgen/internal/charset"
	"github.com/kolkov/rxgen/internal/iter"
	"github.com/kolkov/rxgen/internal/parser"
	"github.com/kolkov/rxgen/internal/runtime"
	"github.com/kolkov/rxgen/internal/semantic"
)

// Version is the rxgen version string.
const Version = "0.1.0"

// Rand is the random source of the generators.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). n > 0.
	IntN(n int) int
}

// Iterator enumerates the strings matched by a pattern.
// See [Pattern.Iterator].
type Iterator = iter.Iterator

// ErrExhausted is wrapped by the value an Iterator panics with when Next
// is called after the last value.
var ErrExhausted = iter.ErrExhausted

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate compiles pattern and returns one random matching string.
// This is a convenience function for one-off generation.
// For repeated generation from the same pattern, use Compile followed by
// Pattern.Generate.
//
// Example:
//
//	s, err := rxgen.Generate(`[a-f\d]{8}`, rxgen.NewRand(1))
func Generate(pattern string, r Rand) (string, error) {
	p, err := Compile(pattern)
	if err != nil {
		return "", err
	}
	return p.Generate(r), nil
}

// Compile parses a pattern with the default configuration.
// The returned Pattern can drive any number of generators and iterators.
//
// Example:
//
//	p, err := rxgen.Compile(`(a|b){2}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p.Count()) // 4
func Compile(pattern string) (*Pattern, error) {
	return CompileWithConfig(pattern, nil)
}

// CompileWithConfig parses a pattern with the given configuration.
// A nil cfg selects the defaults.
func CompileWithConfig(pattern string, cfg *Config) (*Pattern, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	c.applyDefaults()

	opts := parserOptions(&c)
	root, err := parser.ParseWithOptions(pattern, opts)
	if err != nil {
		// Convert parser error to public type
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			return nil, &ParseError{
				Position: pe.Pos.Offset,
				Line:     pe.Pos.Line,
				Column:   pe.Pos.Column,
				Message:  pe.Message,
				Context:  pe.Context(),
			}
		}
		return nil, &ParseError{Message: err.Error()}
	}

	resolved, err := semantic.Resolve(root)
	if err != nil {
		return nil, &CompileError{Message: err.Error()}
	}
	if errs := semantic.Check(root, resolved); len(errs) > 0 {
		return nil, &CompileError{Message: errs[0].Error()}
	}

	warnings := make([]string, len(resolved.Warnings))
	for i, w := range resolved.Warnings {
		warnings[i] = w.String()
	}

	return &Pattern{
		source:   pattern,
		root:     root,
		config:   c,
		domain:   opts.Domain,
		oracle:   runtime.NewOracle(c.CaseInsensitive),
		warnings: warnings,
	}, nil
}

// MustCompile is like Compile but panics if the pattern cannot be parsed.
// It simplifies initialization of global pattern variables.
//
// Example:
//
//	var hexID = rxgen.MustCompile(`[0-9a-f]{16}`)
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// parserOptions maps a Config onto the parser's set resolution. A custom
// dot set also becomes the domain of negation.
func parserOptions(c *Config) parser.Options {
	opts := parser.DefaultOptions()
	if c.Dot != "" {
		opts.Dot = charset.FromString(c.Dot)
		opts.Domain = opts.Dot
	}
	opts.Whitespace = charset.FromString(c.Whitespace)
	opts.CaseInsensitive = c.CaseInsensitive
	return opts
}
