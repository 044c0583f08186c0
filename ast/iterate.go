package ast

import "iter"

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	if isNil(n) {
		return nil
	}
	switch n := n.(type) {
	case *Stylesheet:
		return rules(n.Rules)
	case *Rulelist:
		return rules(n.Rules)
	case *Ruleset:
		if n.Rulelist != nil {
			return []Node{n.Rulelist}
		}
	case *AtRule:
		if n.Rulelist != nil {
			return []Node{n.Rulelist}
		}
	case *Declaration:
		if !isNil(n.Value) {
			return []Node{n.Value}
		}
	}
	return nil
}

func rules(rs []Rule) []Node {
	nodes := make([]Node, 0, len(rs))
	for _, r := range rs {
		if !isNil(r) {
			nodes = append(nodes, r)
		}
	}
	return nodes
}

// Iterate yields root and all of its descendants depth first, parents before
// children. The sequence may be ranged over any number of times.
func Iterate(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(root, yield)
	}
}

func walk(n Node, yield func(Node) bool) bool {
	if isNil(n) {
		return true
	}
	if !yield(n) {
		return false
	}
	for _, child := range Children(n) {
		if !walk(child, yield) {
			return false
		}
	}
	return true
}

// Filter yields the nodes of Iterate(root) of type N.
func Filter[N Node](root Node) iter.Seq[N] {
	return func(yield func(N) bool) {
		for n := range Iterate(root) {
			if typed, ok := n.(N); ok {
				if !yield(typed) {
					return
				}
			}
		}
	}
}
