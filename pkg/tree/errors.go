package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMutation is returned when a structural change would break the
	// parent/child invariants of a tree. More specific errors such as
	// [ErrCycle] and [ErrDuplicateChild] wrap it, so errors.Is(err,
	// ErrInvalidMutation) matches all of them.
	ErrInvalidMutation = errors.New("invalid mutation")

	// ErrCycle is returned by [Node.AddChild], [Node.SetParent],
	// [Node.SetChildren] and [New] when the change would make a node its own
	// ancestor.
	ErrCycle = fmt.Errorf("%w: node would become its own ancestor", ErrInvalidMutation)

	// ErrDuplicateChild is returned by [Node.SetChildren] when the same node
	// appears more than once in the new child list.
	ErrDuplicateChild = fmt.Errorf("%w: duplicate child", ErrInvalidMutation)

	// ErrTooManyChildren is returned when a node (or a [Tree]) has a fan-out
	// limit and the change would exceed it.
	ErrTooManyChildren = fmt.Errorf("%w: too many children", ErrInvalidMutation)

	// ErrInvalidLimit is returned when a negative fan-out limit is requested.
	ErrInvalidLimit = errors.New("children limit must not be negative")

	// ErrNotChild is returned by [Node.RemoveChild] when the node is not a
	// current child of the receiver.
	ErrNotChild = errors.New("node is not a child")

	// ErrNilNode is returned when a nil *Node is passed where a node is required.
	ErrNilNode = errors.New("nil node")

	// ErrIndexOutOfRange is returned by [Node.Child] for an invalid index.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrNotComparable is returned by the ordering functions ([Compare],
	// [Less], ...) when at least one of the nodes carries no identity.
	ErrNotComparable = errors.New("identities are not comparable")

	// ErrCrossTree is returned by relationship queries on nodes that do not
	// share a root.
	ErrCrossTree = errors.New("nodes belong to different trees")

	// ErrNotInTree is returned by [Tree] methods for nodes that are not
	// reachable from the tree's root.
	ErrNotInTree = errors.New("node is not in this tree")
)
