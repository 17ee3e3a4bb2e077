package ast

// Visitor defines the generic visitor pattern for AST traversal.
// Type parameter T is the return type of visit methods.
//
// Example usage:
//
//	type depth struct{}
//	func (d depth) VisitFinalSymbol(*FinalSymbol) int { return 1 }
//	// ... other methods
type Visitor[T any] interface {
	VisitFinalSymbol(*FinalSymbol) T
	VisitSymbolSet(*SymbolSet) T
	VisitSequence(*Sequence) T
	VisitChoice(*Choice) T
	VisitRepeat(*Repeat) T
	VisitGroup(*Group) T
	VisitGroupRef(*GroupRef) T
	VisitNotSymbol(*NotSymbol) T
}

// Children returns the direct children of node in order.
func Children(node Node) []Node {
	switch n := node.(type) {
	case *Sequence:
		return n.Nodes
	case *Choice:
		return n.Nodes
	case *Repeat:
		return []Node{n.Node}
	case *Group:
		return []Node{n.Node}
	case *NotSymbol:
		return []Node{n.Node}
	default:
		return nil
	}
}

// Walk traverses the AST in depth-first pre-order.
// The function fn is called for each node; if it returns false,
// the children of that node are not visited.
//
// Example:
//
//	var groups int
//	ast.Walk(root, func(n ast.Node) bool {
//	    if g, ok := n.(*ast.Group); ok && g.IsCapturing() {
//	        groups++
//	    }
//	    return true // continue traversal
//	})
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, c := range Children(node) {
		Walk(c, fn)
	}
}

// Inspect traverses the AST like Walk but also provides the parent node.
// The root is visited with a nil parent.
//
// Example:
//
//	ast.Inspect(root, func(n, parent ast.Node) bool {
//	    if _, ok := n.(*ast.GroupRef); ok {
//	        if _, inRepeat := parent.(*ast.Repeat); inRepeat {
//	            fmt.Println("repeated backreference")
//	        }
//	    }
//	    return true
//	})
func Inspect(node Node, fn func(node, parent Node) bool) {
	inspect(node, nil, fn)
}

func inspect(node, parent Node, fn func(node, parent Node) bool) {
	if node == nil || !fn(node, parent) {
		return
	}
	for _, c := range Children(node) {
		inspect(c, node, fn)
	}
}

// Accept dispatches to the appropriate visitor method based on node type.
// This implements the double-dispatch pattern for the visitor.
//
// Example:
//
//	result := ast.Accept[int](node, myVisitor)
func Accept[T any](node Node, v Visitor[T]) T {
	switch n := node.(type) {
	case *FinalSymbol:
		return v.VisitFinalSymbol(n)
	case *SymbolSet:
		return v.VisitSymbolSet(n)
	case *Sequence:
		return v.VisitSequence(n)
	case *Choice:
		return v.VisitChoice(n)
	case *Repeat:
		return v.VisitRepeat(n)
	case *Group:
		return v.VisitGroup(n)
	case *GroupRef:
		return v.VisitGroupRef(n)
	case *NotSymbol:
		return v.VisitNotSymbol(n)
	default:
		var zero T
		return zero
	}
}
