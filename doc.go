// Package rxgen generates strings from regular-expression-like patterns.
//
// A pattern is compiled once into an immutable syntax tree that four
// independent engines read:
//   - matching generation: one random string that matches
//   - non-matching generation: one random string that does not match
//   - enumeration: a lazy, resettable iterator over every match
//   - counting: the exact number of matches as a big integer, or infinite
//
// # Quick Start
//
// For simple one-off generation:
//
//	s, err := rxgen.Generate(`[A-Z]{3}-\d{4}`, rxgen.NewRand(42))
//
// # Compiled Patterns
//
// For repeated use of the same pattern:
//
//	p, err := rxgen.Compile(`(a|b){2}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := rxgen.NewRand(1)
//	fmt.Println(p.Generate(r), p.GenerateNotMatching(r))
//
//	for it := p.Iterator(); it.HasNext(); {
//	    fmt.Println(it.Next()) // aa ab ba bb
//	}
//	fmt.Println(p.Count()) // 4
//
// # Syntax
//
// Literals, '.', classes with ranges, negation, POSIX and \p{..} classes,
// the shorthands \d \w \s and their negations, alternation, capturing,
// named and non-capturing groups, greedy quantifiers (lazy and possessive
// suffixes are accepted and ignored), backreferences \N and \k<name>,
// \Q..\E quoting and anchors at the edges of an alternative. Positive
// lookaround contributes its content; negative lookaround becomes an
// excluded sub-pattern.
//
// Unless configured otherwise the alphabet is printable ASCII: '.' and
// negated classes draw from the 95 runes 0x20..0x7E.
//
// # Configuration
//
// The [Config] type adjusts compilation:
//   - the repetition ceiling for unbounded quantifiers
//   - case-insensitive matching
//   - the runes behind '.' and \s
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [ParseError]: syntax errors with position and caret context
//   - [CompileError]: structural errors found after parsing
//
// Pulling a value from an exhausted [Iterator] is a programming error and
// panics with an error wrapping [ErrExhausted].
//
// # Thread Safety
//
// Compiled [Pattern] objects are safe for concurrent use.
// Each call to a generator or to [Pattern.Iterator] creates independent
// state; an individual Iterator is not safe for concurrent use.
package rxgen
