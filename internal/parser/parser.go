package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kolkov/rxgen/internal/ast"
	"github.com/kolkov/rxgen/internal/charset"
	"github.com/kolkov/rxgen/internal/token"
)

// maxRepeat bounds explicit {m,n} counts.
const maxRepeat = 100000

// Options control how the parser resolves symbol sets.
type Options struct {
	// Domain is the full admissible alphabet. Negated classes and the
	// negated shorthands are computed against it.
	Domain charset.Set

	// Dot is the set behind '.'.
	Dot charset.Set

	// Whitespace is the set behind \s.
	Whitespace charset.Set

	// CaseInsensitive makes negation subtract the case-folded set, so that
	// [^a] excludes both 'a' and 'A'.
	CaseInsensitive bool
}

// DefaultOptions returns the printable ASCII domain for both the domain and
// the dot, and the usual whitespace set.
func DefaultOptions() Options {
	return Options{
		Domain:     charset.Printable,
		Dot:        charset.Printable,
		Whitespace: charset.FromString(charset.DefaultWhitespace),
	}
}

// Parser is a recursive descent parser for patterns.
// It reads the pattern once, left to right, with a single cursor.
type Parser struct {
	src  string  // Pattern text
	pos  int     // Cursor (byte offset)
	opts Options // Set resolution options

	groups int            // capturing groups opened so far
	names  map[string]int // named group -> index
	midway bool           // an enclosing group opened after other items
}

// Parse compiles a pattern with DefaultOptions.
func Parse(src string) (ast.Node, error) {
	return ParseWithOptions(src, DefaultOptions())
}

// ParseWithOptions compiles a pattern into its root node.
// On failure it returns a *ParseError and no tree.
func ParseWithOptions(src string, opts Options) (ast.Node, error) {
	p := &Parser{
		src:   src,
		opts:  opts,
		names: make(map[string]int),
	}
	if !utf8.ValidString(src) {
		return nil, p.errorf(0, "pattern is not valid UTF-8")
	}

	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf(p.pos, "unmatched ')'")
	}
	return root, nil
}

// -----------------------------------------------------------------------------
// Cursor helpers
// -----------------------------------------------------------------------------

func (p *Parser) eof() bool {
	return p.pos >= len(p.src)
}

// peek returns the rune at the cursor. Callers check eof first.
func (p *Parser) peek() rune {
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *Parser) next() rune {
	r, n := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += n
	return r
}

func (p *Parser) lookingAt(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

func (p *Parser) position(off int) token.Position {
	return token.At(p.src, off)
}

// base spans from start to the cursor.
func (p *Parser) base(start int) ast.BaseNode {
	return ast.MakeBaseNode(p.position(start), p.position(p.pos))
}

// atAlternativeEnd reports whether only end anchors and group closers
// remain before an alternative of every enclosing level ends. A closer
// followed by a quantifier or more items does not count: in (a$)b the
// anchor can never hold.
func (p *Parser) atAlternativeEnd() bool {
	rest := p.src[p.pos:]
	for {
		switch {
		case strings.HasPrefix(rest, "$"), strings.HasPrefix(rest, ")"):
			rest = rest[1:]
		case strings.HasPrefix(rest, `\z`), strings.HasPrefix(rest, `\Z`):
			rest = rest[2:]
		default:
			return rest == "" || rest[0] == '|'
		}
	}
}

// atAlternativeStart reports whether nothing precedes the cursor in the
// current alternative or in any enclosing one.
func (p *Parser) atAlternativeStart(b *seqBuilder) bool {
	return b.empty() && !p.midway
}

// negate computes domain - set, folding the set first in case-insensitive mode.
func (p *Parser) negate(set charset.Set) charset.Set {
	if p.opts.CaseInsensitive {
		set = set.Fold()
	}
	return p.opts.Domain.Subtract(set)
}

// -----------------------------------------------------------------------------
// Alternation and sequences
// -----------------------------------------------------------------------------

// parseAlternation parses alternatives separated by '|' up to ')' or the end.
func (p *Parser) parseAlternation() (ast.Node, error) {
	start := p.pos
	var alts []ast.Node
	for {
		seq, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		alts = append(alts, seq)
		if p.eof() || p.peek() != '|' {
			break
		}
		p.pos++
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return &ast.Choice{BaseNode: p.base(start), Nodes: alts}, nil
}

// seqBuilder collects the items of one alternative. Plain characters go to a
// pending literal buffer that becomes a single FinalSymbol when flushed.
type seqBuilder struct {
	items   []ast.Node
	lit     []rune
	litOffs []int // byte offset of every pending rune
}

func (b *seqBuilder) empty() bool {
	return len(b.items) == 0 && len(b.lit) == 0
}

func (b *seqBuilder) addRune(r rune, off int) {
	b.lit = append(b.lit, r)
	b.litOffs = append(b.litOffs, off)
}

func (b *seqBuilder) flush(p *Parser) {
	n := len(b.lit)
	if n == 0 {
		return
	}
	end := b.litOffs[n-1] + utf8.RuneLen(b.lit[n-1])
	b.items = append(b.items, &ast.FinalSymbol{
		BaseNode: ast.MakeBaseNode(p.position(b.litOffs[0]), p.position(end)),
		Value:    string(b.lit),
	})
	b.lit, b.litOffs = b.lit[:0], b.litOffs[:0]
}

func (b *seqBuilder) push(p *Parser, node ast.Node) {
	b.flush(p)
	b.items = append(b.items, node)
}

// popTarget removes the operand of a quantifier: the last pending literal
// rune if there is one, otherwise the last structural item.
func (b *seqBuilder) popTarget(p *Parser) (ast.Node, int, bool) {
	if n := len(b.lit); n > 0 {
		r, off := b.lit[n-1], b.litOffs[n-1]
		b.lit, b.litOffs = b.lit[:n-1], b.litOffs[:n-1]
		b.flush(p)
		return &ast.FinalSymbol{
			BaseNode: ast.MakeBaseNode(p.position(off), p.position(off+utf8.RuneLen(r))),
			Value:    string(r),
		}, off, true
	}
	if n := len(b.items); n > 0 {
		node := b.items[n-1]
		b.items = b.items[:n-1]
		return node, node.Pos().Offset, true
	}
	return nil, 0, false
}

func (b *seqBuilder) finish(p *Parser, start int) ast.Node {
	b.flush(p)
	switch len(b.items) {
	case 0:
		return &ast.FinalSymbol{BaseNode: p.base(start)}
	case 1:
		return b.items[0]
	default:
		return &ast.Sequence{BaseNode: p.base(start), Nodes: b.items}
	}
}

// parseSequence parses one alternative up to '|', ')' or the end.
func (p *Parser) parseSequence() (ast.Node, error) {
	start := p.pos
	b := &seqBuilder{}
	quantified := false // last item came from a quantifier

	for !p.eof() {
		off := p.pos
		c := p.peek()

		switch c {
		case '|', ')':
			return b.finish(p, start), nil

		case '*', '+', '?', '{':
			min, max, ok, err := p.parseQuantifier()
			if err != nil {
				return nil, err
			}
			if !ok {
				// '{' that does not start a bound is a literal
				p.pos++
				b.addRune('{', off)
				quantified = false
				continue
			}
			if quantified {
				return nil, p.errorf(off, "invalid nested repetition operator %q", p.src[off:p.pos])
			}
			target, tstart, found := b.popTarget(p)
			if !found {
				return nil, p.errorf(off, "missing argument to repetition operator %q", p.src[off:p.pos])
			}
			b.items = append(b.items, &ast.Repeat{
				BaseNode: p.base(tstart),
				Node:     target,
				Min:      min,
				Max:      max,
			})
			quantified = true
			continue
		}

		quantified = false
		switch c {
		case '^':
			p.pos++
			if !p.atAlternativeStart(b) {
				return nil, p.errorf(off, "unmatchable anchor '^': must start an alternative")
			}
		case '$':
			p.pos++
			if !p.atAlternativeEnd() {
				return nil, p.errorf(off, "unmatchable anchor '$': must end an alternative")
			}
		case '.':
			p.pos++
			b.push(p, &ast.SymbolSet{BaseNode: p.base(off), Set: p.opts.Dot})
		case '[':
			set, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			b.push(p, set)
		case '(':
			group, err := p.parseGroup(b.empty())
			if err != nil {
				return nil, err
			}
			b.push(p, group)
		case '\\':
			if err := p.parseEscape(b); err != nil {
				return nil, err
			}
		default:
			p.next()
			b.addRune(c, off)
		}
	}
	return b.finish(p, start), nil
}

// -----------------------------------------------------------------------------
// Quantifiers
// -----------------------------------------------------------------------------

// parseQuantifier reads a repetition operator at the cursor. ok is false
// when '{' does not start a valid bound; nothing is consumed in that case.
func (p *Parser) parseQuantifier() (min, max int, ok bool, err error) {
	off := p.pos
	switch p.next() {
	case '*':
		min, max = 0, ast.Unbounded
	case '+':
		min, max = 1, ast.Unbounded
	case '?':
		min, max = 0, 1
	case '{':
		min, max, ok = p.parseBounds()
		if !ok {
			p.pos = off
			return 0, 0, false, nil
		}
		if min > maxRepeat || max > maxRepeat {
			return 0, 0, false, p.errorf(off, "repeat count too large in %s (max %d)", p.src[off:p.pos], maxRepeat)
		}
		if max != ast.Unbounded && max < min {
			return 0, 0, false, p.errorf(off, "invalid repeat range %s", p.src[off:p.pos])
		}
	}
	// Lazy and possessive modifiers do not change the set of matches.
	if !p.eof() && (p.peek() == '?' || p.peek() == '+') {
		p.pos++
	}
	return min, max, true, nil
}

// parseBounds reads "m}", "m,}" or "m,n}" after '{'.
func (p *Parser) parseBounds() (min, max int, ok bool) {
	min, ok = p.parseInt()
	if !ok || p.eof() {
		return 0, 0, false
	}
	switch p.next() {
	case '}':
		return min, min, true
	case ',':
	default:
		return 0, 0, false
	}
	if p.lookingAt("}") {
		p.pos++
		return min, ast.Unbounded, true
	}
	max, ok = p.parseInt()
	if !ok || !p.lookingAt("}") {
		return 0, 0, false
	}
	p.pos++
	return min, max, true
}

// parseInt reads a decimal number. Values that overflow are reported as
// maxRepeat+1 so the caller rejects them.
func (p *Parser) parseInt() (int, bool) {
	start := p.pos
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil || n > maxRepeat {
		return maxRepeat + 1, true
	}
	return n, true
}

// -----------------------------------------------------------------------------
// Groups
// -----------------------------------------------------------------------------

type groupKind int

const (
	groupCapture groupKind = iota
	groupPlain
	groupLookPositive
	groupLookNegative
)

// parseGroup parses "(...)" including the lookaround and named forms.
// Positive lookaround is spliced in as a Sequence; negative lookaround
// becomes a NotSymbol.
func (p *Parser) parseGroup(atStart bool) (ast.Node, error) {
	open := p.pos
	defer func(midway bool) { p.midway = midway }(p.midway)
	p.midway = p.midway || !atStart
	p.pos++ // '('

	kind := groupCapture
	name := ""
	switch {
	case p.lookingAt("?:"):
		p.pos += 2
		kind = groupPlain
	case p.lookingAt("?="):
		p.pos += 2
		kind = groupLookPositive
	case p.lookingAt("?!"):
		p.pos += 2
		kind = groupLookNegative
	case p.lookingAt("?<="):
		p.pos += 3
		kind = groupLookPositive
	case p.lookingAt("?<!"):
		p.pos += 3
		kind = groupLookNegative
	case p.lookingAt("?P<"), p.lookingAt("?<"):
		p.pos += strings.IndexByte(p.src[p.pos:], '<') + 1
		n, err := p.parseName(open)
		if err != nil {
			return nil, err
		}
		if _, dup := p.names[n]; dup {
			return nil, p.errorf(open, "duplicate group name %q", n)
		}
		name = n
	case p.lookingAt("?"):
		return nil, p.errorf(open, "unsupported group syntax %q", p.src[open:min(len(p.src), p.pos+2)])
	}

	index := 0
	if kind == groupCapture {
		p.groups++
		index = p.groups
		if name != "" {
			p.names[name] = index
		}
	}

	body, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.eof() || p.peek() != ')' {
		return nil, p.expectedError(p.pos, "')'", open)
	}
	p.pos++

	switch kind {
	case groupLookPositive:
		if seq, ok := body.(*ast.Sequence); ok {
			return seq, nil
		}
		return &ast.Sequence{BaseNode: p.base(open), Nodes: []ast.Node{body}}, nil
	case groupLookNegative:
		return &ast.NotSymbol{BaseNode: p.base(open), Node: body}, nil
	default:
		return &ast.Group{BaseNode: p.base(open), Index: index, Name: name, Node: body}, nil
	}
}

// parseName reads a group name terminated by '>'.
func (p *Parser) parseName(open int) (string, error) {
	start := p.pos
	for !p.eof() && p.peek() != '>' {
		c := p.next()
		if !(c == '_' || unicode.IsLetter(c) || (unicode.IsDigit(c) && p.pos-1 > start)) {
			return "", p.errorf(p.pos-utf8.RuneLen(c), "invalid character %q in group name", c)
		}
	}
	if p.eof() {
		return "", p.expectedError(p.pos, "'>'", open)
	}
	if p.pos == start {
		return "", p.errorf(start, "empty group name")
	}
	name := p.src[start:p.pos]
	p.pos++ // '>'
	return name, nil
}

// -----------------------------------------------------------------------------
// Escapes
// -----------------------------------------------------------------------------

// parseEscape handles a backslash sequence outside a character class.
func (p *Parser) parseEscape(b *seqBuilder) error {
	off := p.pos
	p.pos++ // '\\'
	if p.eof() {
		return p.errorf(off, "trailing backslash at end of pattern")
	}

	c := p.peek()
	switch {
	case c >= '1' && c <= '9':
		ref, err := p.parseBackref(off)
		if err != nil {
			return err
		}
		b.push(p, ref)
	case c == 'k':
		p.pos++
		if !p.lookingAt("<") {
			return p.errorf(off, "expected '<' after \\k")
		}
		p.pos++
		name, err := p.parseName(off)
		if err != nil {
			return err
		}
		index, ok := p.names[name]
		if !ok {
			return p.errorf(off, "reference to undefined group name %q", name)
		}
		b.push(p, &ast.GroupRef{BaseNode: p.base(off), Index: index})
	case c == 'Q':
		p.pos++
		p.readQuoted(b.addRune)
	case c == 'A':
		p.pos++
		if !p.atAlternativeStart(b) {
			return p.errorf(off, "unmatchable anchor '\\A': must start an alternative")
		}
	case c == 'z' || c == 'Z':
		p.pos++
		if !p.atAlternativeEnd() {
			return p.errorf(off, "unmatchable anchor '\\%c': must end an alternative", c)
		}
	case c == 'b' || c == 'B' || c == 'G':
		return p.errorf(off, "unsupported assertion \\%c", c)
	case isShorthand(c):
		set, negated, err := p.parseShorthand(off)
		if err != nil {
			return err
		}
		b.push(p, &ast.SymbolSet{BaseNode: p.base(off), Set: set, Negated: negated})
	default:
		r, err := p.parseEscapeRune(off)
		if err != nil {
			return err
		}
		b.addRune(r, off)
	}
	return nil
}

// parseBackref reads \N. Digits are consumed while the number still names a
// group that has already been opened; a reference to a group that does not
// exist yet is an error.
func (p *Parser) parseBackref(off int) (ast.Node, error) {
	n := int(p.next() - '0')
	if n > p.groups {
		return nil, p.errorf(off, "reference to undefined group \\%d", n)
	}
	for !p.eof() {
		d := p.src[p.pos]
		if d < '0' || d > '9' {
			break
		}
		m := n*10 + int(d-'0')
		if m > p.groups {
			break
		}
		n = m
		p.pos++
	}
	return &ast.GroupRef{BaseNode: p.base(off), Index: n}, nil
}

// readQuoted consumes the text after \Q up to \E or the end of the pattern.
func (p *Parser) readQuoted(emit func(r rune, off int)) {
	for !p.eof() {
		if p.lookingAt(`\E`) {
			p.pos += 2
			return
		}
		off := p.pos
		emit(p.next(), off)
	}
}

func isShorthand(c rune) bool {
	switch c {
	case 'd', 'D', 'w', 'W', 's', 'S', 'p', 'P':
		return true
	}
	return false
}

// parseShorthand resolves \d \D \w \W \s \S \p{..} \P{..}; the cursor is on
// the letter.
func (p *Parser) parseShorthand(off int) (charset.Set, bool, error) {
	switch c := p.next(); c {
	case 'd':
		return charset.Digit, false, nil
	case 'D':
		return p.negate(charset.Digit), true, nil
	case 'w':
		return charset.Word, false, nil
	case 'W':
		return p.negate(charset.Word), true, nil
	case 's':
		return p.opts.Whitespace, false, nil
	case 'S':
		return p.negate(p.opts.Whitespace), true, nil
	default: // 'p', 'P'
		var name string
		switch {
		case p.eof():
			return charset.Set{}, false, p.errorf(off, "missing class name after \\%c", c)
		case p.peek() == '{':
			end := strings.IndexByte(p.src[p.pos:], '}')
			if end < 0 {
				return charset.Set{}, false, p.expectedError(len(p.src), "'}'", p.pos)
			}
			name = p.src[p.pos+1 : p.pos+end]
			p.pos += end + 1
		default:
			name = string(p.next())
		}
		set, ok := charset.Named(name)
		if !ok {
			return charset.Set{}, false, p.errorf(off, "unknown character class \\%c{%s}", c, name)
		}
		if c == 'P' {
			return p.negate(set), true, nil
		}
		return set, false, nil
	}
}

// parseEscapeRune decodes a single-rune escape; the cursor is on the
// character after the backslash.
func (p *Parser) parseEscapeRune(off int) (rune, error) {
	c := p.next()
	switch c {
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 'f':
		return '\f', nil
	case 'a':
		return '\a', nil
	case 'e':
		return 0x1b, nil
	case 'v':
		return '\v', nil
	case '0':
		return p.parseOctal(off)
	case 'x':
		if p.lookingAt("{") {
			end := strings.IndexByte(p.src[p.pos:], '}')
			if end < 0 {
				return 0, p.expectedError(len(p.src), "'}'", p.pos)
			}
			digits := p.src[p.pos+1 : p.pos+end]
			p.pos += end + 1
			v, err := strconv.ParseUint(digits, 16, 32)
			if err != nil || digits == "" || v > unicode.MaxRune {
				return 0, p.errorf(off, "invalid hexadecimal escape \\x{%s}", digits)
			}
			return rune(v), nil
		}
		return p.readHex(off, 2)
	case 'u':
		return p.readHex(off, 4)
	case 'c':
		if p.eof() {
			return 0, p.errorf(off, "missing control character after \\c")
		}
		return p.next() ^ 64, nil
	}
	if c < utf8.RuneSelf && (unicode.IsLetter(c) || unicode.IsDigit(c)) {
		return 0, p.errorf(off, "invalid escape sequence \\%c", c)
	}
	return c, nil
}

// parseOctal reads up to three octal digits after \0, keeping the value
// within \0377.
func (p *Parser) parseOctal(off int) (rune, error) {
	v, n := 0, 0
	for n < 3 && !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '7' {
		nv := v*8 + int(p.src[p.pos]-'0')
		if nv > 0377 {
			break
		}
		v = nv
		n++
		p.pos++
	}
	if n == 0 {
		return 0, p.errorf(off, "illegal octal escape sequence")
	}
	return rune(v), nil
}

func (p *Parser) readHex(off, n int) (rune, error) {
	if p.pos+n > len(p.src) {
		return 0, p.errorf(off, "truncated hexadecimal escape")
	}
	digits := p.src[p.pos : p.pos+n]
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, p.errorf(off, "invalid hexadecimal escape %q", p.src[off:p.pos+n])
	}
	p.pos += n
	return rune(v), nil
}

// -----------------------------------------------------------------------------
// Character classes
// -----------------------------------------------------------------------------

// parseClass parses "[...]" into a resolved SymbolSet.
func (p *Parser) parseClass() (*ast.SymbolSet, error) {
	open := p.pos
	p.pos++ // '['
	negated := false
	if !p.eof() && p.peek() == '^' {
		negated = true
		p.pos++
	}
	set, err := p.parseClassBody(open, true)
	if err != nil {
		return nil, err
	}
	if negated {
		set = p.negate(set)
	}
	return &ast.SymbolSet{BaseNode: p.base(open), Set: set, Negated: negated}, nil
}

// parseClassBody reads class items up to and including the closing ']'.
// A ']' in first position is literal. "&&" intersects with the rest of the
// class; a nested "[...]" is a union.
func (p *Parser) parseClassBody(open int, first bool) (charset.Set, error) {
	var set charset.Set
	for ; ; first = false {
		if p.eof() {
			return set, p.expectedError(p.pos, "']'", open)
		}
		off := p.pos
		c := p.peek()

		switch {
		case c == ']' && !first:
			p.pos++
			return set, nil

		case p.lookingAt("&&"):
			p.pos += 2
			rest, err := p.parseClassBody(open, false)
			if err != nil {
				return set, err
			}
			return set.Intersect(rest), nil

		case p.lookingAt("[:"):
			end := strings.Index(p.src[p.pos:], ":]")
			if end < 0 {
				return set, p.expectedError(len(p.src), "':]'", off)
			}
			name := p.src[p.pos+2 : p.pos+end]
			neg := strings.HasPrefix(name, "^")
			cls, ok := charset.POSIX(strings.TrimPrefix(name, "^"))
			if !ok {
				return set, p.errorf(off, "unknown POSIX class [:%s:]", name)
			}
			p.pos += end + 2
			if neg {
				cls = p.negate(cls)
			}
			set = set.Union(cls)

		case c == '[':
			p.pos++
			neg := false
			if !p.eof() && p.peek() == '^' {
				neg = true
				p.pos++
			}
			inner, err := p.parseClassBody(off, true)
			if err != nil {
				return set, err
			}
			if neg {
				inner = p.negate(inner)
			}
			set = set.Union(inner)

		case p.lookingAt(`\Q`):
			p.pos += 2
			p.readQuoted(func(r rune, _ int) {
				set = set.Union(charset.Of(r))
			})

		case c == '\\' && p.pos+1 < len(p.src) && isShorthand(rune(p.src[p.pos+1])):
			p.pos++
			cls, _, err := p.parseShorthand(off)
			if err != nil {
				return set, err
			}
			set = set.Union(cls)

		default:
			lo, err := p.classRune()
			if err != nil {
				return set, err
			}
			hi := lo
			if p.lookingAt("-") && !p.lookingAt("-]") && p.pos+1 < len(p.src) {
				p.pos++
				if hi, err = p.classRune(); err != nil {
					return set, err
				}
				if hi < lo {
					return set, p.errorf(off, "invalid character class range %s", p.src[off:p.pos])
				}
			}
			set = set.Union(charset.New(charset.Range{Lo: lo, Hi: hi}))
		}
	}
}

// classRune reads one literal or escaped rune inside a class.
func (p *Parser) classRune() (rune, error) {
	off := p.pos
	if p.next() != '\\' {
		r, _ := utf8.DecodeRuneInString(p.src[off:])
		return r, nil
	}
	if p.eof() {
		return 0, p.errorf(off, "trailing backslash at end of pattern")
	}
	return p.parseEscapeRune(off)
}
