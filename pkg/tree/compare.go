package tree

import "cmp"

// Nodes compare by identity only; their position in a tree is irrelevant.
// The required capability is expressed as a type constraint, so payload types
// that cannot be compared are rejected at compile time. Payloads with their
// own ordering go through [CompareFunc].

// Equal reports whether a and b carry equal identities. Two empty nodes are
// equal; an empty node never equals a non-empty one. Nil nodes are equal only
// to each other.
func Equal[T comparable](a, b *Node[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.hasIdentity != b.hasIdentity {
		return false
	}
	return !a.hasIdentity || a.identity == b.identity
}

// NotEqual is the negation of [Equal].
func NotEqual[T comparable](a, b *Node[T]) bool { return !Equal(a, b) }

// Compare orders a and b by identity, returning -1, 0 or +1 like cmp.Compare.
// Empty or nil nodes have no place in the order: ErrNotComparable is
// returned if either side lacks an identity.
func Compare[T cmp.Ordered](a, b *Node[T]) (int, error) {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc orders a and b by identity using fn, with the same empty-node
// rule as [Compare].
func CompareFunc[T any](a, b *Node[T], fn func(x, y T) int) (int, error) {
	if a == nil || b == nil || !a.hasIdentity || !b.hasIdentity {
		return 0, ErrNotComparable
	}
	return fn(a.identity, b.identity), nil
}

// Less reports whether a's identity sorts before b's.
func Less[T cmp.Ordered](a, b *Node[T]) (bool, error) {
	c, err := Compare(a, b)
	return c < 0, err
}

// LessOrEqual reports whether a's identity sorts before or equal to b's.
func LessOrEqual[T cmp.Ordered](a, b *Node[T]) (bool, error) {
	c, err := Compare(a, b)
	return err == nil && c <= 0, err
}

// Greater reports whether a's identity sorts after b's.
func Greater[T cmp.Ordered](a, b *Node[T]) (bool, error) {
	c, err := Compare(a, b)
	return c > 0, err
}

// GreaterOrEqual reports whether a's identity sorts after or equal to b's.
func GreaterOrEqual[T cmp.Ordered](a, b *Node[T]) (bool, error) {
	c, err := Compare(a, b)
	return err == nil && c >= 0, err
}
