package tree

// Spec is a nested literal describing a tree, convenient for building fixed
// trees in code:
//
//	root := tree.Build(tree.Spec[string]{
//		Identity: "root",
//		Children: []tree.Spec[string]{
//			{Identity: "a", Children: []tree.Spec[string]{{Identity: "c"}}},
//			{Identity: "b"},
//		},
//	})
//
// Set Empty to describe a node without identity.
type Spec[T any] struct {
	Identity T
	Empty    bool
	Children []Spec[T]
}

// Build creates a detached tree from s.
func Build[T any](s Spec[T]) *Node[T] {
	newNode := func(s *Spec[T]) *Node[T] {
		n := &Node[T]{}
		if !s.Empty {
			n.SetIdentity(s.Identity)
		}
		return n
	}

	type pair struct {
		spec *Spec[T]
		node *Node[T]
	}
	root := newNode(&s)
	stack := []pair{{&s, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := range p.spec.Children {
			cs := &p.spec.Children[i]
			c := newNode(cs)
			p.node.attach(c)
			stack = append(stack, pair{cs, c})
		}
	}
	return root
}

// ToSpec describes n's subtree as a [Spec].
func ToSpec[T any](n *Node[T]) Spec[T] {
	fill := func(dst *Spec[T], src *Node[T]) {
		dst.Identity = src.identity
		dst.Empty = !src.hasIdentity
		if len(src.children) > 0 {
			dst.Children = make([]Spec[T], len(src.children))
		}
	}

	type pair struct {
		node *Node[T]
		spec *Spec[T]
	}
	var root Spec[T]
	fill(&root, n)
	stack := []pair{{n, &root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i, c := range p.node.children {
			fill(&p.spec.Children[i], c)
			stack = append(stack, pair{c, &p.spec.Children[i]})
		}
	}
	return root
}
