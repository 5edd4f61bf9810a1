package tree

// Descendants returns every node below n in preorder, excluding n itself.
func (n *Node[T]) Descendants() []*Node[T] {
	var out []*Node[T]
	for d := range n.Preorder() {
		if d != n {
			out = append(out, d)
		}
	}
	return out
}

// CountDescendants returns the number of nodes below n.
func (n *Node[T]) CountDescendants() int {
	count := -1
	for range n.Preorder() {
		count++
	}
	return count
}

// Ancestors returns the chain of parents from the immediate parent up to the
// root, nearest first. The node itself is not included.
func (n *Node[T]) Ancestors() []*Node[T] {
	var out []*Node[T]
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// CountAncestors returns the number of ancestors, which equals [Node.Depth].
func (n *Node[T]) CountAncestors() int { return n.Depth() }

// Siblings returns the other children of n's parent, in order.
// A root has no siblings.
func (n *Node[T]) Siblings() []*Node[T] {
	if n.parent == nil {
		return nil
	}
	var out []*Node[T]
	for _, c := range n.parent.children {
		if c != n {
			out = append(out, c)
		}
	}
	return out
}

// CountSiblings returns the number of siblings.
func (n *Node[T]) CountSiblings() int {
	if n.parent == nil {
		return 0
	}
	count := 0
	for _, c := range n.parent.children {
		if c != n {
			count++
		}
	}
	return count
}

// HasSiblings reports whether n shares its parent with another node.
func (n *Node[T]) HasSiblings() bool { return n.CountSiblings() > 0 }

// Leaves returns the childless nodes of n's subtree in preorder.
// A leaf is its own only leaf.
func (n *Node[T]) Leaves() []*Node[T] {
	return n.FindAll(func(x *Node[T]) bool { return x.IsLeaf() })
}

// CountLeaves returns the number of leaves in n's subtree.
func (n *Node[T]) CountLeaves() int {
	count := 0
	for x := range n.Preorder() {
		if x.IsLeaf() {
			count++
		}
	}
	return count
}

// HasLeaves reports whether n's subtree contains a leaf. Every finite subtree
// does, so this is always true; it exists for symmetry with the other
// Has methods.
func (n *Node[T]) HasLeaves() bool { return n.CountLeaves() > 0 }

// Level returns the 1-based level of n: 1 for a root, parent level + 1 otherwise.
func (n *Node[T]) Level() int { return n.Depth() + 1 }

// Depth returns the number of edges between the root and n (0 for a root).
func (n *Node[T]) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Height returns the number of edges on the longest downward path from n to
// a leaf (0 for a leaf).
func (n *Node[T]) Height() int {
	type item struct {
		node  *Node[T]
		depth int
	}
	height := 0
	queue := []item{{n, 0}}
	for i := 0; i < len(queue); i++ {
		it := queue[i]
		height = max(height, it.depth)
		for _, c := range it.node.children {
			queue = append(queue, item{c, it.depth + 1})
		}
	}
	return height
}

// IsLeaf reports whether n has no children.
func (n *Node[T]) IsLeaf() bool { return len(n.children) == 0 }

// IsBranch reports whether n has at least one child.
func (n *Node[T]) IsBranch() bool { return len(n.children) > 0 }

// IsInternal reports whether n has at least one child. A root with children
// is internal too; use IsRoot to tell them apart.
func (n *Node[T]) IsInternal() bool { return n.IsBranch() }

// Contains reports whether x is n or lies in n's subtree.
// It walks x's ancestors, so the cost is proportional to x's depth.
func (n *Node[T]) Contains(x *Node[T]) bool {
	for ; x != nil; x = x.parent {
		if x == n {
			return true
		}
	}
	return false
}

// Find returns the first node of n's subtree, in preorder, that satisfies
// pred, or nil.
func (n *Node[T]) Find(pred func(*Node[T]) bool) *Node[T] {
	for x := range n.Preorder() {
		if pred(x) {
			return x
		}
	}
	return nil
}

// FindAll returns all nodes of n's subtree, in preorder, that satisfy pred.
func (n *Node[T]) FindAll(pred func(*Node[T]) bool) []*Node[T] {
	var out []*Node[T]
	for x := range n.Preorder() {
		if pred(x) {
			out = append(out, x)
		}
	}
	return out
}
