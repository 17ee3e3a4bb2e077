package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer provides pretty-printing for AST nodes.
// It outputs an indented tree suitable for debugging:
//
//	Sequence
//	    Group #1
//	        Choice
//	            FinalSymbol "a"
//	            FinalSymbol "b"
//	    GroupRef \1
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes a pretty-printed representation of the node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	for i := 0; i < p.indent; i++ {
		_, p.err = io.WriteString(p.w, "    ")
	}
}

func (p *Printer) printNode(node Node) {
	p.writeIndent()
	if node == nil {
		p.printf("<nil>\n")
		return
	}

	switch n := node.(type) {
	case *FinalSymbol:
		p.printf("FinalSymbol %s\n", strconv.Quote(n.Value))
	case *SymbolSet:
		if n.Negated {
			p.printf("SymbolSet negated %s (%d)\n", n.Set, n.Set.Len())
		} else {
			p.printf("SymbolSet %s (%d)\n", n.Set, n.Set.Len())
		}
	case *Sequence:
		p.printf("Sequence\n")
		p.printChildren(n.Nodes...)
	case *Choice:
		p.printf("Choice\n")
		p.printChildren(n.Nodes...)
	case *Repeat:
		p.printf("Repeat %s\n", repeatBounds(n))
		p.printChildren(n.Node)
	case *Group:
		switch {
		case n.Name != "":
			p.printf("Group #%d <%s>\n", n.Index, n.Name)
		case n.IsCapturing():
			p.printf("Group #%d\n", n.Index)
		default:
			p.printf("Group\n")
		}
		p.printChildren(n.Node)
	case *GroupRef:
		p.printf("GroupRef \\%d\n", n.Index)
	case *NotSymbol:
		p.printf("NotSymbol\n")
		p.printChildren(n.Node)
	default:
		p.printf("<%T>\n", node)
	}
}

func (p *Printer) printChildren(nodes ...Node) {
	p.indent++
	for _, c := range nodes {
		p.printNode(c)
	}
	p.indent--
}

func repeatBounds(r *Repeat) string {
	if r.IsUnbounded() {
		return fmt.Sprintf("{%d,}", r.Min)
	}
	if r.Min == r.Max {
		return fmt.Sprintf("{%d}", r.Min)
	}
	return fmt.Sprintf("{%d,%d}", r.Min, r.Max)
}

// String returns a string representation of the node.
func String(node Node) string {
	var sb strings.Builder
	p := NewPrinter(&sb)
	p.Print(node)
	return sb.String()
}
