package tree

import (
	"errors"
	"slices"
	"testing"
)

func TestScenarioRelations(t *testing.T) {
	r, a, b, c := scenario(t)

	lca, err := c.LowestCommonAncestor(b)
	if err != nil || lca != r {
		t.Errorf("LCA(C, B) = %v, %v; want R", lca, err)
	}
	path, err := c.PathTo(b)
	if err != nil || !slices.Equal(path, []*Node[int]{c, a, r, b}) {
		t.Errorf("PathTo(C, B) = %v, %v; want [4 2 1 3]", path, err)
	}
	d, err := c.DistanceTo(b)
	if err != nil || d != 3 {
		t.Errorf("DistanceTo(C, B) = %d, %v; want 3", d, err)
	}
}

func TestRelationsOnSameNode(t *testing.T) {
	r, a, _, c := scenario(t)
	for _, n := range []*Node[int]{r, a, c} {
		if lca, err := n.LowestCommonAncestor(n); err != nil || lca != n {
			t.Errorf("LCA(%v, %v) = %v, %v", n, n, lca, err)
		}
		if d, err := n.DistanceTo(n); err != nil || d != 0 {
			t.Errorf("DistanceTo(%v, itself) = %d, %v", n, d, err)
		}
		if p, err := n.PathTo(n); err != nil || !slices.Equal(p, []*Node[int]{n}) {
			t.Errorf("PathTo(%v, itself) = %v, %v", n, p, err)
		}
	}
}

func TestRelationsAncestorDescendant(t *testing.T) {
	r, a, _, c := scenario(t)

	if lca, _ := c.LowestCommonAncestor(r); lca != r {
		t.Errorf("LCA(C, R) = %v, want R", lca)
	}
	if p, _ := r.PathTo(c); !slices.Equal(p, []*Node[int]{r, a, c}) {
		t.Errorf("PathTo(R, C) = %v, want [1 2 4]", p)
	}
	if p, _ := c.PathTo(r); !slices.Equal(p, []*Node[int]{c, a, r}) {
		t.Errorf("PathTo(C, R) = %v, want [4 2 1]", p)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	root := sample()
	nodes := slices.Collect(root.Preorder())
	for _, x := range nodes {
		for _, y := range nodes {
			dxy, err1 := x.DistanceTo(y)
			dyx, err2 := y.DistanceTo(x)
			if err1 != nil || err2 != nil {
				t.Fatalf("DistanceTo: %v, %v", err1, err2)
			}
			if dxy != dyx {
				t.Errorf("distance(%v,%v)=%d but distance(%v,%v)=%d", x, y, dxy, y, x, dyx)
			}
			if p, _ := x.PathTo(y); len(p)-1 != dxy {
				t.Errorf("path %v has %d edges, distance %d", p, len(p)-1, dxy)
			}
		}
	}
}

func TestRelationsCrossTree(t *testing.T) {
	r, _, _, c := scenario(t)
	other := Of(1)

	if _, err := c.LowestCommonAncestor(other); !errors.Is(err, ErrCrossTree) {
		t.Errorf("LCA across trees = %v, want ErrCrossTree", err)
	}
	if _, err := c.PathTo(other); !errors.Is(err, ErrCrossTree) {
		t.Errorf("PathTo across trees = %v, want ErrCrossTree", err)
	}
	if _, err := r.DistanceTo(other); !errors.Is(err, ErrCrossTree) {
		t.Errorf("DistanceTo across trees = %v, want ErrCrossTree", err)
	}
	if _, err := r.LowestCommonAncestor(nil); !errors.Is(err, ErrNilNode) {
		t.Errorf("LCA(nil) = %v, want ErrNilNode", err)
	}
}

func TestRelationsUseIdentityOfPointers(t *testing.T) {
	// Equal payloads in different branches must not be confused.
	x1, x2 := Of(7), Of(7)
	root := Of(0, Of(1, x1), Of(1, x2))

	lca, err := x1.LowestCommonAncestor(x2)
	if err != nil || lca != root {
		t.Errorf("LCA = %v, %v; want root", lca, err)
	}
	if d, _ := x1.DistanceTo(x2); d != 4 {
		t.Errorf("DistanceTo = %d, want 4", d)
	}
}
