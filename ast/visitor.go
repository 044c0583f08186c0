package ast

// Visitor has one method per node kind. Each method receives the Walker that
// dispatched it so that it can recurse with w.Visit and inspect w.Path.
//
// Implementations that embed another Visitor and override some of its
// methods keep working, because recursion always goes back through the
// Walker, which holds the outermost visitor.
type Visitor[T any] interface {
	VisitStylesheet(w *Walker[T], n *Stylesheet) T
	VisitAtRule(w *Walker[T], n *AtRule) T
	VisitComment(w *Walker[T], n *Comment) T
	VisitRulelist(w *Walker[T], n *Rulelist) T
	VisitRuleset(w *Walker[T], n *Ruleset) T
	VisitDeclaration(w *Walker[T], n *Declaration) T
	VisitExpression(w *Walker[T], n *Expression) T
	VisitDiscarded(w *Walker[T], n *Discarded) T
}

// Walker dispatches nodes to a Visitor and tracks the path from the root of
// the walk to the node being visited. A Walker is not safe for concurrent
// use, but independent Walkers may share a Visitor.
type Walker[T any] struct {
	visitor Visitor[T]
	path    []Node
}

// NewWalker returns a Walker dispatching to v.
func NewWalker[T any](v Visitor[T]) *Walker[T] {
	return &Walker[T]{visitor: v}
}

// Walk visits root with a fresh Walker.
func Walk[T any](v Visitor[T], root Node) T {
	return NewWalker(v).Visit(root)
}

// Visit dispatches n to the matching Visitor method with n pushed onto the
// path. A nil node yields the zero value.
func (w *Walker[T]) Visit(n Node) T {
	var zero T
	if isNil(n) {
		return zero
	}

	w.path = append(w.path, n)
	defer func() { w.path = w.path[:len(w.path)-1] }()

	switch n := n.(type) {
	case *Stylesheet:
		return w.visitor.VisitStylesheet(w, n)
	case *AtRule:
		return w.visitor.VisitAtRule(w, n)
	case *Comment:
		return w.visitor.VisitComment(w, n)
	case *Rulelist:
		return w.visitor.VisitRulelist(w, n)
	case *Ruleset:
		return w.visitor.VisitRuleset(w, n)
	case *Declaration:
		return w.visitor.VisitDeclaration(w, n)
	case *Expression:
		return w.visitor.VisitExpression(w, n)
	case *Discarded:
		return w.visitor.VisitDiscarded(w, n)
	}
	return zero
}

// Path returns the nodes from the root of the walk to the node currently
// being visited, inclusive. The slice is only valid until the visit returns
// and must not be modified.
func (w *Walker[T]) Path() []Node {
	return w.path[:len(w.path):len(w.path)]
}

// Ancestor returns the node n levels above the current one, so Ancestor(0)
// is the current node and Ancestor(1) its parent. It returns nil when the
// path is not that deep.
func (w *Walker[T]) Ancestor(n int) Node {
	i := len(w.path) - 1 - n
	if n < 0 || i < 0 {
		return nil
	}
	return w.path[i]
}

// isNil catches typed nil pointers hidden inside a Node interface.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Stylesheet:
		return n == nil
	case *AtRule:
		return n == nil
	case *Comment:
		return n == nil
	case *Rulelist:
		return n == nil
	case *Ruleset:
		return n == nil
	case *Declaration:
		return n == nil
	case *Expression:
		return n == nil
	case *Discarded:
		return n == nil
	}
	return false
}
