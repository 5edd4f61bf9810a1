package tree

import "slices"

// Relationship queries identify nodes by pointer, never by identity: two
// distinct nodes carrying equal payloads are different vertices.

// chain returns the nodes from the root down to n, inclusive.
func (n *Node[T]) chain() []*Node[T] {
	var out []*Node[T]
	for x := n; x != nil; x = x.parent {
		out = append(out, x)
	}
	slices.Reverse(out)
	return out
}

// LowestCommonAncestor returns the deepest node that is an ancestor of (or
// equal to) both n and other. The LCA of a node with itself is the node.
//
// Returns ErrNilNode if other is nil and ErrCrossTree if the two nodes do not
// share a root.
func (n *Node[T]) LowestCommonAncestor(other *Node[T]) (*Node[T], error) {
	if other == nil {
		return nil, ErrNilNode
	}
	a, b := n.chain(), other.chain()
	if a[0] != b[0] {
		return nil, ErrCrossTree
	}
	lca := a[0]
	for i := 1; i < len(a) && i < len(b) && a[i] == b[i]; i++ {
		lca = a[i]
	}
	return lca, nil
}

// PathTo returns the nodes on the path from n to other, both included:
// n, ..., LCA, ..., other. The path from a node to itself is [n].
func (n *Node[T]) PathTo(other *Node[T]) ([]*Node[T], error) {
	lca, err := n.LowestCommonAncestor(other)
	if err != nil {
		return nil, err
	}
	var path []*Node[T]
	for x := n; x != lca; x = x.parent {
		path = append(path, x)
	}
	path = append(path, lca)

	var down []*Node[T]
	for x := other; x != lca; x = x.parent {
		down = append(down, x)
	}
	slices.Reverse(down)
	return append(path, down...), nil
}

// DistanceTo returns the number of edges between n and other:
// depth(n) + depth(other) - 2*depth(LCA).
func (n *Node[T]) DistanceTo(other *Node[T]) (int, error) {
	lca, err := n.LowestCommonAncestor(other)
	if err != nil {
		return 0, err
	}
	return n.Depth() + other.Depth() - 2*lca.Depth(), nil
}
