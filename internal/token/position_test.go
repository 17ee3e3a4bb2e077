package token_test

import (
	"testing"

	"github.com/kolkov/rxgen/internal/token"
)

func TestAt(t *testing.T) {
	tests := []struct {
		src  string
		off  int
		want token.Position
	}{
		{"abc", 0, token.Position{Line: 1, Column: 1, Offset: 0}},
		{"abc", 2, token.Position{Line: 1, Column: 3, Offset: 2}},
		{"abc", 9, token.Position{Line: 1, Column: 4, Offset: 3}},
		{"éa", 2, token.Position{Line: 1, Column: 2, Offset: 2}},
		{"a\nbc", 3, token.Position{Line: 2, Column: 2, Offset: 3}},
	}
	for _, tt := range tests {
		if got := token.At(tt.src, tt.off); got != tt.want {
			t.Errorf("At(%q, %d) = %+v, want %+v", tt.src, tt.off, got, tt.want)
		}
	}
}

func TestPositionString(t *testing.T) {
	if got := (token.Position{Line: 1, Column: 4}).String(); got != "column 4" {
		t.Errorf("String() = %q", got)
	}
	if got := (token.Position{Line: 2, Column: 1}).String(); got != "2:1" {
		t.Errorf("String() = %q", got)
	}
	if (token.Position{}).IsValid() {
		t.Error("zero Position is valid")
	}
}

func TestCaret(t *testing.T) {
	tests := []struct {
		src  string
		pos  token.Position
		want string
	}{
		{"ab(c", token.Position{Line: 1, Column: 3}, "ab(c\n  ^"},
		{"ab", token.Position{Line: 1, Column: 3}, "ab\n  ^"},
		{"x\nyz", token.Position{Line: 2, Column: 2}, "yz\n ^"},
		{"ab", token.Position{}, ""},
	}
	for _, tt := range tests {
		if got := token.Caret(tt.src, tt.pos); got != tt.want {
			t.Errorf("Caret(%q, %v) = %q, want %q", tt.src, tt.pos, got, tt.want)
		}
	}
}
