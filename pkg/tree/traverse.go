package tree

import "iter"

// The traversals below return iterators rooted at the receiver. Each call to
// the returned function performs a fresh walk; breaking out of a range loop
// stops it early. All of them use explicit stacks or queues, so very deep
// trees do not grow the goroutine stack. Mutating the tree while a walk is in
// progress has undefined results.

// frame is a node on an explicit traversal stack together with the index of
// the next child to descend into.
type frame[T any] struct {
	node    *Node[T]
	next    int
	visited bool
}

// Preorder yields n, then the preorder walk of each child in order.
func (n *Node[T]) Preorder() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		if !yield(n) {
			return
		}
		stack := []frame[T]{{node: n}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.node.children) {
				stack = stack[:len(stack)-1]
				continue
			}
			c := top.node.children[top.next]
			top.next++
			if !yield(c) {
				return
			}
			stack = append(stack, frame[T]{node: c})
		}
	}
}

// Postorder yields the postorder walk of each child in order, then n.
func (n *Node[T]) Postorder() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		stack := []frame[T]{{node: n}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.node.children) {
				node := top.node
				stack = stack[:len(stack)-1]
				if !yield(node) {
					return
				}
				continue
			}
			c := top.node.children[top.next]
			top.next++
			stack = append(stack, frame[T]{node: c})
		}
	}
}

// Inorder generalizes binary inorder to N-ary nodes: the first
// len(children)/2 children (rounded down) are walked before the node and the
// remaining ones after it. A binary node yields left, node, right; a node
// with a single child is yielded before that child.
func (n *Node[T]) Inorder() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		stack := []frame[T]{{node: n}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if !top.visited && top.next == len(top.node.children)/2 {
				top.visited = true
				if !yield(top.node) {
					return
				}
				continue
			}
			if top.next == len(top.node.children) {
				stack = stack[:len(stack)-1]
				continue
			}
			c := top.node.children[top.next]
			top.next++
			stack = append(stack, frame[T]{node: c})
		}
	}
}

// BreadthFirst yields the subtree level by level, left to right, using a
// FIFO queue seeded with n.
func (n *Node[T]) BreadthFirst() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		queue := []*Node[T]{n}
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			if !yield(node) {
				return
			}
			queue = append(queue, node.children...)
		}
	}
}

// LevelOrder is an alias for [Node.BreadthFirst].
func (n *Node[T]) LevelOrder() iter.Seq[*Node[T]] { return n.BreadthFirst() }

// DepthFirst walks the subtree with a LIFO stack. Children are pushed in
// reverse so the visiting order matches [Node.Preorder].
func (n *Node[T]) DepthFirst() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		stack := []*Node[T]{n}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(node) {
				return
			}
			for i := len(node.children) - 1; i >= 0; i-- {
				stack = append(stack, node.children[i])
			}
		}
	}
}

// Upwards yields n and then each ancestor up to the root.
func (n *Node[T]) Upwards() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for x := n; x != nil; x = x.parent {
			if !yield(x) {
				return
			}
		}
	}
}
