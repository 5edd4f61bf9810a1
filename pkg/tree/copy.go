package tree

// Prune detaches all children, leaving each of them as a root.
// The node's identity is kept.
func (n *Node[T]) Prune() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Clear prunes the node and removes its identity.
func (n *Node[T]) Clear() {
	n.Prune()
	n.ClearIdentity()
}

// Copy returns a shallow duplicate: same identity, same parent pointer, same
// fan-out limit, and the same child nodes.
//
// The copy aliases the original's structure and breaks exclusive ownership.
// It is not registered in the parent's children, and the shared children
// still report the original as their parent, so [Node.AddChild] or
// [Node.SetParent] on a shared child will move it out of the original. Use
// [Node.DeepCopy] for an independent tree.
func (n *Node[T]) Copy() *Node[T] {
	c := n.shallow()
	c.parent = n.parent
	c.children = append([]*Node[T](nil), n.children...)
	return c
}

// DeepCopy returns an independent clone of n's subtree. No node is shared with
// the original; the clone's root is detached. Identities are copied by
// assignment, so pointer payloads still refer to the same values.
func (n *Node[T]) DeepCopy() *Node[T] {
	return Map(n, func(v T) T { return v })
}

func (n *Node[T]) shallow() *Node[T] {
	return &Node[T]{identity: n.identity, hasIdentity: n.hasIdentity, maxChildren: n.maxChildren}
}

// Map builds a detached tree with the same shape as n whose identities are
// fn applied to n's identities. Empty nodes stay empty.
func Map[T, U any](n *Node[T], fn func(T) U) *Node[U] {
	conv := func(src *Node[T]) *Node[U] {
		dst := &Node[U]{maxChildren: src.maxChildren}
		if src.hasIdentity {
			dst.SetIdentity(fn(src.identity))
		}
		return dst
	}

	type pair struct {
		src *Node[T]
		dst *Node[U]
	}
	root := conv(n)
	stack := []pair{{n, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(p.src.children) == 0 {
			continue
		}
		p.dst.children = make([]*Node[U], len(p.src.children))
		for i, c := range p.src.children {
			cc := conv(c)
			cc.parent = p.dst
			p.dst.children[i] = cc
			stack = append(stack, pair{c, cc})
		}
	}
	return root
}
