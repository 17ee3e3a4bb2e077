package iter

import (
	"strings"

	"github.com/kolkov/rxgen/internal/ast"
	"github.com/kolkov/rxgen/internal/charset"
	"github.com/kolkov/rxgen/internal/runtime"
)

// negative yields every string over the domain, shortest first and in
// domain order within a length, that the oracle does not match against
// the excluded subtree. It never runs out on a non-empty domain.
type negative struct {
	excluded ast.Node
	domain   charset.Set
	oracle   *runtime.Oracle
	reg      *Registry

	digits  []int // current string as domain indexes
	started bool
	cur     string
}

// Negative returns an iterator over the domain strings outside the
// language of excluded. Backreferences in excluded resolve through reg.
//
// If every domain string matches excluded, Next never returns.
func Negative(excluded ast.Node, domain charset.Set, oracle *runtime.Oracle, reg *Registry) Iterator {
	return &negative{excluded: excluded, domain: domain, oracle: oracle, reg: reg}
}

func (it *negative) HasNext() bool {
	return !it.domain.IsEmpty() || !it.started
}

func (it *negative) Next() string {
	if !it.HasNext() {
		exhausted("negation")
	}
	var re *runtime.Regex
	if it.oracle != nil {
		// A compile failure leaves the candidates unfiltered.
		re, _ = it.oracle.Compile(it.excluded, it.reg.Captured())
	}
	for {
		s := it.advance()
		if re == nil || !re.MatchString(s) {
			it.cur = s
			return s
		}
		if it.domain.IsEmpty() {
			// "" was the only candidate and it matched.
			exhausted("negation")
		}
	}
}

// advance steps to the next candidate string.
func (it *negative) advance() string {
	if !it.started {
		it.started = true
		return ""
	}
	base := it.domain.Len()
	i := len(it.digits) - 1
	for ; i >= 0; i-- {
		it.digits[i]++
		if it.digits[i] < base {
			break
		}
		it.digits[i] = 0
	}
	if i < 0 {
		it.digits = make([]int, len(it.digits)+1)
	}
	var sb strings.Builder
	for _, d := range it.digits {
		sb.WriteRune(it.domain.At(d))
	}
	return sb.String()
}

func (it *negative) Current() string { return it.cur }

func (it *negative) Reset() {
	it.digits = nil
	it.started = false
	it.cur = ""
}
