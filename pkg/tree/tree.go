package tree

import (
	"fmt"
	"iter"
)

// Order selects the visiting order for [Tree.Walk].
type Order int

const (
	// PreOrder visits a node before its children. Returning false from the
	// callback skips the node's subtree.
	PreOrder Order = iota
	// PostOrder visits a node after its children. Returning false stops the walk.
	PostOrder
	// InOrder follows [Node.Inorder]. Returning false stops the walk.
	InOrder
	// LevelOrder visits level by level. Returning false stops the walk.
	LevelOrder
	// DepthFirstOrder is the stack-based equivalent of PreOrder and skips
	// subtrees the same way.
	DepthFirstOrder
)

var orderNames = map[Order]string{
	PreOrder:        "pre",
	PostOrder:       "post",
	InOrder:         "in",
	LevelOrder:      "level",
	DepthFirstOrder: "dfs",
}

// String returns the short name used on the command line.
func (o Order) String() string {
	if s, ok := orderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder converts a short name ("pre", "post", "in", "level", "dfs") back
// to an Order.
func ParseOrder(s string) (Order, error) {
	for o, name := range orderNames {
		if name == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown traversal order %q", s)
}

// Tree is a handle on a rooted tree of nodes. It adds a tree-wide fan-out
// limit, callback traversals and membership checks on top of [Node]; the
// nodes themselves are shared, not copied.
//
// Like Node, Tree is not safe for concurrent use.
type Tree[T any] struct {
	root        *Node[T]
	maxChildren int
}

// TreeOption configures a [Tree].
type TreeOption[T any] func(*Tree[T])

// WithTreeMaxChildren limits the fan-out of every node added through the
// tree. Zero means unlimited.
func WithTreeMaxChildren[T any](n int) TreeOption[T] {
	return func(t *Tree[T]) { t.maxChildren = n }
}

// NewTree wraps root. It returns ErrNilNode for a nil root, ErrInvalidLimit
// for a negative limit, and ErrTooManyChildren if a node below root already
// exceeds the limit.
func NewTree[T any](root *Node[T], opts ...TreeOption[T]) (*Tree[T], error) {
	if root == nil {
		return nil, ErrNilNode
	}
	t := &Tree[T]{root: root}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.checkLimit(t.maxChildren); err != nil {
		return nil, err
	}
	return t, nil
}

// Root returns the tree's root node.
func (t *Tree[T]) Root() *Node[T] { return t.root }

// MaxChildren returns the tree-wide fan-out limit; 0 means unlimited.
func (t *Tree[T]) MaxChildren() int { return t.maxChildren }

// SetMaxChildren changes the tree-wide limit after checking every node.
func (t *Tree[T]) SetMaxChildren(limit int) error {
	if err := t.checkLimit(limit); err != nil {
		return err
	}
	t.maxChildren = limit
	return nil
}

func (t *Tree[T]) checkLimit(limit int) error {
	if limit < 0 {
		return ErrInvalidLimit
	}
	if limit == 0 {
		return nil
	}
	for n := range t.root.Preorder() {
		if len(n.children) > limit {
			return fmt.Errorf("%w: %v has %d children, limit %d", ErrTooManyChildren, n, len(n.children), limit)
		}
	}
	return nil
}

// Len returns the number of nodes in the tree.
func (t *Tree[T]) Len() int { return t.root.CountDescendants() + 1 }

// Height returns the height of the root.
func (t *Tree[T]) Height() int { return t.root.Height() }

// Has reports whether n is reachable from the root.
func (t *Tree[T]) Has(n *Node[T]) bool { return n != nil && t.root.Contains(n) }

// Walk visits the tree in the given order, calling fn for each node.
// See the [Order] constants for what a false return from fn means.
func (t *Tree[T]) Walk(order Order, fn func(*Node[T]) bool) {
	switch order {
	case PreOrder, DepthFirstOrder:
		stack := []*Node[T]{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !fn(n) {
				continue
			}
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	case PostOrder:
		walkSeq(t.root.Postorder(), fn)
	case InOrder:
		walkSeq(t.root.Inorder(), fn)
	case LevelOrder:
		walkSeq(t.root.BreadthFirst(), fn)
	}
}

func walkSeq[T any](seq iter.Seq[*Node[T]], fn func(*Node[T]) bool) {
	for n := range seq {
		if !fn(n) {
			return
		}
	}
}

// Upwards calls fn for n and each of its ancestors up to the tree's root,
// stopping early when fn returns false.
func (t *Tree[T]) Upwards(n *Node[T], fn func(*Node[T]) bool) error {
	if !t.Has(n) {
		return ErrNotInTree
	}
	for x := n; x != nil; x = x.parent {
		if !fn(x) || x == t.root {
			return nil
		}
	}
	return nil
}

// Subtree returns a tree rooted at n, sharing nodes and the fan-out limit
// with t. Returns ErrNotInTree if n is not reachable from t's root.
func (t *Tree[T]) Subtree(n *Node[T]) (*Tree[T], error) {
	if !t.Has(n) {
		return nil, ErrNotInTree
	}
	return &Tree[T]{root: n, maxChildren: t.maxChildren}, nil
}

// ContainsSubtree reports whether other's root is reachable from t's root.
func (t *Tree[T]) ContainsSubtree(other *Tree[T]) bool {
	return other != nil && t.Has(other.root)
}

// AddNode attaches n as the last child of parent, or of the root when parent
// is nil. It enforces the tree-wide limit in addition to the parent's own.
func (t *Tree[T]) AddNode(n, parent *Node[T]) error {
	return t.AddNodes([]*Node[T]{n}, parent)
}

// AddNodes attaches several nodes to parent (the root when nil), all or none.
func (t *Tree[T]) AddNodes(nodes []*Node[T], parent *Node[T]) error {
	if parent == nil {
		parent = t.root
	}
	if !t.Has(parent) {
		return ErrNotInTree
	}
	if t.maxChildren > 0 {
		count := len(parent.children)
		seen := make(map[*Node[T]]struct{}, len(nodes))
		for _, n := range nodes {
			if n == nil {
				return ErrNilNode
			}
			if _, dup := seen[n]; dup || n.parent == parent {
				continue
			}
			seen[n] = struct{}{}
			count++
		}
		if count > t.maxChildren {
			return ErrTooManyChildren
		}
	}
	return parent.AddChildren(nodes...)
}

// RemoveNode detaches n (with its subtree) from the tree. The root cannot be
// removed: ErrInvalidMutation is returned for it, and ErrNotInTree for nodes
// outside the tree.
func (t *Tree[T]) RemoveNode(n *Node[T]) error {
	if n == t.root {
		return fmt.Errorf("%w: cannot remove the root", ErrInvalidMutation)
	}
	if !t.Has(n) {
		return ErrNotInTree
	}
	return n.parent.RemoveChild(n)
}

// LowestCommonAncestor is [Node.LowestCommonAncestor] restricted to nodes of t.
func (t *Tree[T]) LowestCommonAncestor(a, b *Node[T]) (*Node[T], error) {
	if !t.Has(a) || !t.Has(b) {
		return nil, ErrNotInTree
	}
	return a.LowestCommonAncestor(b)
}

// Path is [Node.PathTo] restricted to nodes of t.
func (t *Tree[T]) Path(a, b *Node[T]) ([]*Node[T], error) {
	if !t.Has(a) || !t.Has(b) {
		return nil, ErrNotInTree
	}
	return a.PathTo(b)
}

// Distance is [Node.DistanceTo] restricted to nodes of t.
func (t *Tree[T]) Distance(a, b *Node[T]) (int, error) {
	if !t.Has(a) || !t.Has(b) {
		return 0, ErrNotInTree
	}
	return a.DistanceTo(b)
}
