package runtime

import (
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		pattern string
		wantErr bool
	}{
		{"hello", false},
		{"[a-z]+", false},
		{"(?:foo|bar)", false},
		{`\x{41}{2,3}`, false},
		{"(?:)", false},
		{"[invalid", true},
		{"(unclosed", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := CompileWithConfig(tt.pattern, RegexConfig{})
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for pattern %q", tt.pattern)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if re == nil {
				t.Error("CompileWithConfig returned nil regex")
			}
		})
	}
}

// TestMatchStringIsFullMatch checks that matches are anchored at both ends.
func TestMatchStringIsFullMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"hello", "hello", true},
		{"hello", "hello world", false},
		{"hello", "say hello", false},
		{"[0-9]+", "123", true},
		{"[0-9]+", "abc123", false},
		{"(?:)", "", true},
		{"(?:)", "x", false},
		{"foo|bar", "bar", true},
		{"foo|bar", "foobar", false},
		{"a.b", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.input, func(t *testing.T) {
			re := mustCompile(t, tt.pattern)
			if got := re.MatchString(tt.input); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCaseInsensitive(t *testing.T) {
	re, err := CompileWithConfig("abc", RegexConfig{CaseInsensitive: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"abc", "ABC", "aBc"} {
		if !re.MatchString(s) {
			t.Errorf("MatchString(%q) = false, want true", s)
		}
	}
	if mustCompile(t, "abc").MatchString("ABC") {
		t.Error("case-sensitive regex matched ABC")
	}
}

func TestRegexCache(t *testing.T) {
	cache := NewRegexCacheWithConfig(3, RegexConfig{})

	if cache.Len() != 0 {
		t.Errorf("new cache Len() = %d, want 0", cache.Len())
	}

	re1, err := cache.Get("hello")
	if err != nil {
		t.Fatalf("Get(hello): %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("after first Get, Len() = %d, want 1", cache.Len())
	}

	re2, err := cache.Get("hello")
	if err != nil {
		t.Fatalf("Get(hello) again: %v", err)
	}
	if re1 != re2 {
		t.Error("expected same Regex instance from cache")
	}

	cache.Get("world")
	cache.Get("foo")
	if cache.Len() != 3 {
		t.Errorf("after 3 patterns, Len() = %d, want 3", cache.Len())
	}

	// Adding 4th should evict oldest (hello)
	cache.Get("bar")
	if cache.Len() != 3 {
		t.Errorf("after eviction, Len() = %d, want 3", cache.Len())
	}
	re3, _ := cache.Get("hello")
	if re3 == re1 {
		t.Error("hello was not evicted")
	}
}

func TestRegexCacheConfig(t *testing.T) {
	cache := NewRegexCacheWithConfig(10, RegexConfig{CaseInsensitive: true})
	re, err := cache.Get("abc")
	if err != nil {
		t.Fatal(err)
	}
	if !re.MatchString("AbC") {
		t.Error("cached regex ignored CaseInsensitive")
	}
	if _, err := cache.Get("[invalid"); err == nil {
		t.Error("Get([invalid) returned no error")
	}
	if cache.Len() != 1 {
		t.Errorf("failed compile was cached, Len() = %d", cache.Len())
	}
}

func TestRegexCacheConcurrency(t *testing.T) {
	cache := NewRegexCacheWithConfig(100, RegexConfig{})
	patterns := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(idx int) {
			for j := 0; j < 100; j++ {
				_, err := cache.Get(patterns[idx])
				if err != nil {
					t.Errorf("concurrent Get error: %v", err)
				}
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func BenchmarkMatchString(b *testing.B) {
	benchmarks := []struct {
		pattern string
		input   string
	}{
		{"hello", "hello"},
		{"[a-z]+", "helloworld"},
		{"(?:[0-9]{3})-(?:[0-9]{4})", "555-0100"},
	}

	for _, bm := range benchmarks {
		re, err := CompileWithConfig(bm.pattern, RegexConfig{})
		if err != nil {
			b.Fatal(err)
		}
		b.Run(bm.pattern, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				re.MatchString(bm.input)
			}
		})
	}
}

func BenchmarkRegexCache(b *testing.B) {
	cache := NewRegexCacheWithConfig(100, RegexConfig{})
	cache.Get("hello")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get("hello")
	}
}

func mustCompile(t *testing.T, pattern string) *Regex {
	t.Helper()
	re, err := CompileWithConfig(pattern, RegexConfig{})
	if err != nil {
		t.Fatalf("CompileWithConfig(%q) error = %v", pattern, err)
	}
	return re
}
