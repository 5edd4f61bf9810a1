package tree

import (
	"fmt"
	"slices"
)

// Node is a vertex of an N-ary tree carrying an optional payload of type T.
//
// A node owns its children exclusively: every child appears in exactly one
// children list and its parent pointer refers back to that owner. The parent
// pointer is a relation only and never an ownership edge. All mutating methods
// keep both sides of the relation consistent and reject changes that would
// introduce a cycle.
//
// The zero value is an empty root node with no children and no fan-out limit,
// ready to use. Node is not safe for concurrent use without external
// synchronization; callers should hold one lock per tree for the duration of
// any mutation or multi-node walk.
type Node[T any] struct {
	identity    T
	hasIdentity bool
	parent      *Node[T]
	children    []*Node[T]
	maxChildren int // 0 = unlimited
}

type options[T any] struct {
	identity    T
	hasIdentity bool
	parent      *Node[T]
	children    []*Node[T]
	maxChildren int
}

// Option configures a node created by [New].
type Option[T any] func(*options[T])

// WithIdentity sets the node's payload.
func WithIdentity[T any](v T) Option[T] {
	return func(o *options[T]) {
		o.identity = v
		o.hasIdentity = true
	}
}

// WithParent attaches the new node to p as its last child.
func WithParent[T any](p *Node[T]) Option[T] {
	return func(o *options[T]) { o.parent = p }
}

// WithChildren adopts the given nodes as children, in order. Nodes that
// already belong to another parent are moved.
func WithChildren[T any](children ...*Node[T]) Option[T] {
	return func(o *options[T]) { o.children = append(o.children, children...) }
}

// WithMaxChildren limits the node's fan-out. Zero means unlimited.
func WithMaxChildren[T any](n int) Option[T] {
	return func(o *options[T]) { o.maxChildren = n }
}

// New creates a node from the given options.
//
// Supplied children are re-parented to the new node, taking them away from
// any previous owner. New validates everything before touching existing
// nodes: it returns ErrInvalidLimit for a negative limit, ErrTooManyChildren
// if the children exceed the node's limit or the parent is full,
// ErrDuplicateChild for repeated children, and ErrCycle if the parent lies
// inside one of the supplied children's subtrees.
func New[T any](opts ...Option[T]) (*Node[T], error) {
	var o options[T]
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxChildren < 0 {
		return nil, ErrInvalidLimit
	}

	n := &Node[T]{
		identity:    o.identity,
		hasIdentity: o.hasIdentity,
		maxChildren: o.maxChildren,
	}
	if err := n.checkChildren(o.children); err != nil {
		return nil, err
	}
	if p := o.parent; p != nil {
		moved := 0
		for _, c := range o.children {
			if c.Contains(p) {
				return nil, ErrCycle
			}
			if c.parent == p {
				moved++
			}
		}
		if p.full(len(p.children) - moved) {
			return nil, ErrTooManyChildren
		}
	}

	n.adopt(o.children)
	if o.parent != nil {
		o.parent.attach(n)
	}
	return n, nil
}

// MustNew is like [New] but panics on error. It is intended for tests and
// static tree literals.
func MustNew[T any](opts ...Option[T]) *Node[T] {
	n, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("tree: %v", err))
	}
	return n
}

// Of returns a node with the given identity and children.
// It panics if a child cannot be adopted (see [New]).
func Of[T any](identity T, children ...*Node[T]) *Node[T] {
	return MustNew(WithIdentity(identity), WithChildren(children...))
}

// Empty returns a standalone node without identity.
func Empty[T any]() *Node[T] { return &Node[T]{} }

// Identity returns the node's payload and whether one is set.
func (n *Node[T]) Identity() (T, bool) { return n.identity, n.hasIdentity }

// Value returns the payload, or the zero value of T for an empty node.
func (n *Node[T]) Value() T { return n.identity }

// SetIdentity sets the node's payload.
func (n *Node[T]) SetIdentity(v T) {
	n.identity = v
	n.hasIdentity = true
}

// ClearIdentity removes the payload, making the node empty.
func (n *Node[T]) ClearIdentity() {
	var zero T
	n.identity = zero
	n.hasIdentity = false
}

// IsEmpty reports whether the node carries no identity.
func (n *Node[T]) IsEmpty() bool { return !n.hasIdentity }

const emptyMarker = "<empty>"

// String renders the identity with fmt's default format, or "<empty>".
func (n *Node[T]) String() string {
	if !n.hasIdentity {
		return emptyMarker
	}
	return fmt.Sprint(n.identity)
}

// GoString renders the identity with %#v, or "<empty>".
func (n *Node[T]) GoString() string {
	if !n.hasIdentity {
		return emptyMarker
	}
	return fmt.Sprintf("%#v", n.identity)
}

// Parent returns the node's parent, or nil for a root.
func (n *Node[T]) Parent() *Node[T] { return n.parent }

// SetParent moves the node under p, appending it to p's children.
// A nil p detaches the node. Setting the current parent again is a no-op.
//
// Returns ErrCycle if p is the node itself or one of its descendants, and
// ErrTooManyChildren if p is full. On error nothing is changed.
func (n *Node[T]) SetParent(p *Node[T]) error {
	if p == nil {
		n.Detach()
		return nil
	}
	return p.AddChild(n)
}

// Detach removes the node from its parent's children. Roots are unaffected.
func (n *Node[T]) Detach() {
	if n.parent == nil {
		return
	}
	n.parent.children = slices.DeleteFunc(n.parent.children, func(c *Node[T]) bool { return c == n })
	n.parent = nil
}

// IsRoot reports whether the node has no parent.
func (n *Node[T]) IsRoot() bool { return n.parent == nil }

// Root returns the topmost ancestor, or the node itself if it is a root.
func (n *Node[T]) Root() *Node[T] {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns the node's children in order.
// The returned slice is a copy; modifying it does not affect the tree.
func (n *Node[T]) Children() []*Node[T] { return slices.Clone(n.children) }

// SetChildren replaces the children list.
//
// New children are re-parented to n (and removed from their previous owners);
// previous children that are not in the new list become roots. The change is
// all-or-nothing: ErrNilNode, ErrDuplicateChild, ErrCycle or
// ErrTooManyChildren are returned before anything is modified.
func (n *Node[T]) SetChildren(children []*Node[T]) error {
	if err := n.checkChildren(children); err != nil {
		return err
	}
	for _, c := range children {
		if c.Contains(n) {
			return ErrCycle
		}
	}

	for _, old := range n.children {
		if !slices.Contains(children, old) {
			old.parent = nil
		}
	}
	n.children = nil
	n.adopt(children)
	return nil
}

// HasChildren reports whether the node has at least one child.
func (n *Node[T]) HasChildren() bool { return len(n.children) > 0 }

// CountChildren returns the number of direct children.
func (n *Node[T]) CountChildren() int { return len(n.children) }

// Child returns the child at index i, or ErrIndexOutOfRange.
func (n *Node[T]) Child(i int) (*Node[T], error) {
	if i < 0 || i >= len(n.children) {
		return nil, fmt.Errorf("%w: index %d with %d children", ErrIndexOutOfRange, i, len(n.children))
	}
	return n.children[i], nil
}

// IndexOf returns the position of c among the node's children, or -1.
func (n *Node[T]) IndexOf(c *Node[T]) int {
	return slices.Index(n.children, c)
}

// AddChild appends c to the node's children, moving it from its previous
// parent if needed. Adding a node that is already a child is a no-op.
//
// Returns ErrNilNode for a nil child, ErrCycle if c is the node itself or one
// of its ancestors, and ErrTooManyChildren if the node is full.
func (n *Node[T]) AddChild(c *Node[T]) error {
	return n.AddChildren(c)
}

// AddChildren appends several children in order. Nodes that are already
// children, and repeats within the arguments, are skipped. Either all nodes
// are added or, on error, none.
func (n *Node[T]) AddChildren(children ...*Node[T]) error {
	var fresh []*Node[T]
	for _, c := range children {
		if c == nil {
			return ErrNilNode
		}
		if c.parent == n || slices.Contains(fresh, c) {
			continue
		}
		if c.Contains(n) {
			return ErrCycle
		}
		fresh = append(fresh, c)
	}
	if n.full(len(n.children) + len(fresh) - 1) {
		return ErrTooManyChildren
	}
	for _, c := range fresh {
		n.attach(c)
	}
	return nil
}

// RemoveChild detaches c from the node, leaving c as a root.
// Returns ErrNilNode for nil and ErrNotChild if c is not a current child.
func (n *Node[T]) RemoveChild(c *Node[T]) error {
	if c == nil {
		return ErrNilNode
	}
	if c.parent != n {
		return ErrNotChild
	}
	c.Detach()
	return nil
}

// MaxChildren returns the node's fan-out limit; 0 means unlimited.
func (n *Node[T]) MaxChildren() int { return n.maxChildren }

// SetMaxChildren sets the fan-out limit. It returns ErrInvalidLimit for a
// negative limit and ErrTooManyChildren if the node already exceeds it.
func (n *Node[T]) SetMaxChildren(limit int) error {
	if limit < 0 {
		return ErrInvalidLimit
	}
	if limit > 0 && len(n.children) > limit {
		return ErrTooManyChildren
	}
	n.maxChildren = limit
	return nil
}

// full reports whether adding one more child to a node that has count
// children would exceed the limit.
func (n *Node[T]) full(count int) bool {
	return n.maxChildren > 0 && count >= n.maxChildren
}

// checkChildren validates a prospective children list for n without the
// cycle check, which depends on the caller.
func (n *Node[T]) checkChildren(children []*Node[T]) error {
	seen := make(map[*Node[T]]struct{}, len(children))
	for _, c := range children {
		if c == nil {
			return ErrNilNode
		}
		if _, dup := seen[c]; dup {
			return ErrDuplicateChild
		}
		seen[c] = struct{}{}
	}
	if n.maxChildren > 0 && len(children) > n.maxChildren {
		return ErrTooManyChildren
	}
	return nil
}

// adopt appends already validated children.
func (n *Node[T]) adopt(children []*Node[T]) {
	for _, c := range children {
		n.attach(c)
	}
}

// attach moves c under n without validation.
func (n *Node[T]) attach(c *Node[T]) {
	if c.parent == n {
		if !slices.Contains(n.children, c) {
			n.children = append(n.children, c)
		}
		return
	}
	c.Detach()
	c.parent = n
	n.children = append(n.children, c)
}
