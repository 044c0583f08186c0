package ast

// NodesAtLocation returns the chain of nodes under root that contain offset,
// outermost first. At each level the search descends into the first child
// whose range contains offset. root itself is not included.
func NodesAtLocation(root Node, offset int) []Node {
	var chain []Node
	current := root
	for {
		next := childAt(current, offset)
		if next == nil {
			return chain
		}
		chain = append(chain, next)
		current = next
	}
}

func childAt(n Node, offset int) Node {
	for _, child := range Children(n) {
		if child.Span().Contains(offset) {
			return child
		}
	}
	return nil
}

// DeepestAt returns the innermost node containing offset, or root when no
// descendant does.
func DeepestAt(root Node, offset int) Node {
	chain := NodesAtLocation(root, offset)
	if len(chain) == 0 {
		return root
	}
	return chain[len(chain)-1]
}
