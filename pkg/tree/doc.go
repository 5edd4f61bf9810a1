// Package tree provides a generic, mutable N-ary tree built from
// self-composing nodes.
//
// # Overview
//
// There is no separate container type: a tree is a set of [Node] values wired
// together through parent and child relations. Each node carries an optional
// payload (its identity), a non-owning pointer to its parent, and an ordered
// list of children that it owns exclusively.
//
//	root := tree.Of(1, tree.Of(2, tree.Of(4)), tree.Of(3))
//	fmt.Println(root.Height()) // 2
//
// # Ownership
//
// Every mutating method keeps the parent/child relation consistent on both
// sides. [Node.AddChild] and [Node.SetParent] move a node out of its previous
// parent; [Node.RemoveChild], [Node.Detach], [Node.Prune] and [Node.Clear]
// leave former children as roots. Changes that would make a node its own
// ancestor fail with [ErrCycle], and every mutation validates before it
// modifies anything, so a failed call leaves the tree untouched.
//
// Nodes may carry a fan-out limit ([WithMaxChildren]); the [Tree] handle adds
// a tree-wide limit on top.
//
// # Queries and Traversals
//
// Structural queries ([Node.Ancestors], [Node.Descendants], [Node.Leaves],
// [Node.Level], [Node.Depth], [Node.Height], ...) and relationship queries
// ([Node.LowestCommonAncestor], [Node.PathTo], [Node.DistanceTo]) identify
// nodes by pointer. Traversals return iter.Seq values:
//
//	for n := range root.BreadthFirst() {
//		fmt.Println(n)
//	}
//
// Preorder, postorder, inorder, breadth-first and depth-first walks all use
// explicit stacks or queues. Inorder on N-ary nodes visits the first
// len(children)/2 children, then the node, then the rest.
//
// # Comparison
//
// Nodes compare by identity through generic functions whose type constraints
// express the required capability: [Equal] needs a comparable payload,
// [Compare] and [Less] need cmp.Ordered, and [CompareFunc] accepts any
// payload with a caller-supplied ordering. Empty nodes are not ordered;
// ordering them returns [ErrNotComparable].
//
// # Concurrency
//
// Nodes are not safe for concurrent use. Callers that share a tree between
// goroutines must hold one lock per tree for the duration of any mutation or
// multi-node walk.
package tree
