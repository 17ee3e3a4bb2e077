// Package ast defines the structural tree of a compiled pattern.
//
// The tree is a closed sum type: every node is one of the kinds below, and
// consumers dispatch with a type switch (or Accept). Nodes are built once by
// the parser and never mutated afterwards, so a tree can be shared freely
// between goroutines.
//
// Node kinds:
//
//	Node (interface)
//	├── FinalSymbol - fixed literal text
//	├── SymbolSet   - one rune out of a resolved set
//	├── Sequence    - concatenation
//	├── Choice      - alternation
//	├── Repeat      - bounded or unbounded repetition
//	├── Group       - capturing or non-capturing group
//	├── GroupRef    - backreference to an earlier capturing group
//	└── NotSymbol   - excluded sub-pattern (negative lookaround)
package ast

import (
	"github.com/kolkov/rxgen/internal/charset"
	"github.com/kolkov/rxgen/internal/token"
)

// Unbounded is the Repeat.Max value of an open-ended repetition.
const Unbounded = -1

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position

	// End returns the position of the first character immediately after this node.
	End() token.Position

	node() // marker method to prevent external implementations
}

// BaseNode provides position tracking for every node kind.
type BaseNode struct {
	StartPos token.Position // Position of first character
	EndPos   token.Position // Position after last character
}

func (b *BaseNode) Pos() token.Position { return b.StartPos }
func (b *BaseNode) End() token.Position { return b.EndPos }
func (b *BaseNode) node()               {}

// MakeBaseNode creates a BaseNode with the given positions.
func MakeBaseNode(start, end token.Position) BaseNode {
	return BaseNode{StartPos: start, EndPos: end}
}

// FinalSymbol is a fixed literal.
type FinalSymbol struct {
	BaseNode
	Value string
}

// SymbolSet matches exactly one rune of Set. Ranges, shorthands and negation
// are already resolved; Negated only records that the source used [^...].
type SymbolSet struct {
	BaseNode
	Set     charset.Set
	Negated bool
}

// Sequence is an ordered concatenation.
type Sequence struct {
	BaseNode
	Nodes []Node
}

// Choice is an alternation. Order fixes enumeration order only.
type Choice struct {
	BaseNode
	Nodes []Node
}

// Repeat repeats Node between Min and Max times.
// Invariant: Min >= 0 and (Max == Unbounded or Max >= Min).
type Repeat struct {
	BaseNode
	Node Node
	Min  int
	Max  int
}

// IsUnbounded reports whether the repetition has no upper bound.
func (r *Repeat) IsUnbounded() bool { return r.Max == Unbounded }

// Group wraps a sub-pattern. Index is the 1-based parse-order number of a
// capturing group, or 0 for a non-capturing group.
type Group struct {
	BaseNode
	Index int
	Name  string // set for (?<name>...) groups
	Node  Node
}

// IsCapturing reports whether the group records its value.
func (g *Group) IsCapturing() bool { return g.Index > 0 }

// GroupRef replays the value most recently produced by group Index.
// The parser guarantees the group occurs earlier in parse order.
type GroupRef struct {
	BaseNode
	Index int
}

// NotSymbol stands for any text that does not match Node.
type NotSymbol struct {
	BaseNode
	Node Node
}
