// Package runtime provides the match oracle used by the non-matching
// generator and the negative iterator.
//
// Pattern subtrees are rendered to RE2 syntax (see Render) and compiled with
// coregex. Every compiled regex is anchored at both ends, so MatchString
// answers "does s belong to the language of the subtree".
package runtime

import (
	"sync"

	"github.com/coregx/coregex"
)

// RegexConfig controls regex behavior.
type RegexConfig struct {
	// CaseInsensitive compiles with the (?i) flag.
	CaseInsensitive bool
}

// Regex is a full-match regex compiled by coregex.
type Regex struct {
	re *coregex.Regexp
}

// CompileWithConfig creates a full-match Regex with the given configuration.
// The (?s) flag is always set: a rendered subtree never relies on dot
// excluding newlines.
func CompileWithConfig(pattern string, config RegexConfig) (*Regex, error) {
	flags := "(?s"
	if config.CaseInsensitive {
		flags += "i"
	}
	re, err := coregex.Compile(flags + ")^(?:" + pattern + ")$")
	if err != nil {
		return nil, err
	}
	return &Regex{re: re}, nil
}

// MatchString reports whether the whole of s matches.
func (r *Regex) MatchString(s string) bool {
	return r.re.MatchString(s)
}

// RegexCache provides thread-safe compiled regex caching with FIFO eviction.
// Reads are lock-free via sync.Map.
type RegexCache struct {
	cache   sync.Map   // map[string]*Regex
	orderMu sync.Mutex // Protects order slice for eviction
	order   []string   // FIFO order for eviction
	size    int32      // guarded by orderMu
	maxSize int
	config  RegexConfig
}

// NewRegexCacheWithConfig creates a cache with specified max size and config.
func NewRegexCacheWithConfig(maxSize int, config RegexConfig) *RegexCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &RegexCache{
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		config:  config,
	}
}

// Get returns a compiled regex, compiling and caching if needed.
func (c *RegexCache) Get(pattern string) (*Regex, error) {
	if re, ok := c.cache.Load(pattern); ok {
		return re.(*Regex), nil
	}

	re, err := CompileWithConfig(pattern, c.config)
	if err != nil {
		return nil, err
	}

	// Another goroutine might have stored it already.
	if existing, loaded := c.cache.LoadOrStore(pattern, re); loaded {
		return existing.(*Regex), nil
	}

	c.orderMu.Lock()
	c.order = append(c.order, pattern)
	c.size++
	for int(c.size) > c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.cache.Delete(oldest)
		c.size--
	}
	c.orderMu.Unlock()

	return re, nil
}

// Len returns the approximate number of cached regexes.
func (c *RegexCache) Len() int {
	c.orderMu.Lock()
	n := int(c.size)
	c.orderMu.Unlock()
	return n
}
