// Package text renders a tree as an indented outline:
//
//	repo/
//	├── cmd/
//	│   └── main.go
//	└── go.mod
//
// Layout is delegated to lipgloss/tree; this package maps nodes onto it,
// applies per-node styles and cuts the outline at a maximum depth.
package text

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	ltree "github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/arbor/pkg/tree"
)

// Glyphs is a set of connector strings. All four must have the same width.
type Glyphs struct {
	Branch string // before a child that has later siblings
	Last   string // before the last child
	Pipe   string // indentation below a non-last child
	Space  string // indentation below the last child
}

var (
	// Unicode uses box-drawing characters.
	Unicode = Glyphs{Branch: "├── ", Last: "└── ", Pipe: "│   ", Space: "    "}
	// ASCII is for terminals without box-drawing support.
	ASCII = Glyphs{Branch: "|-- ", Last: "`-- ", Pipe: "|   ", Space: "    "}
)

// Options controls rendering.
type Options[T any] struct {
	// Label formats a node. Defaults to the node's String method.
	Label func(n *tree.Node[T]) string
	// Style, when set, is applied to each label.
	Style func(n *tree.Node[T]) lipgloss.Style
	// MaxDepth limits how many levels below the root are shown; 0 shows
	// everything. Cut-off nodes get a "[+N]" suffix counting the hidden
	// descendants.
	MaxDepth int
	// ASCII selects the ASCII glyph set.
	ASCII bool
}

// Render writes the outline of root to w, followed by a newline.
func Render[T any](w io.Writer, root *tree.Node[T], opts Options[T]) error {
	_, err := io.WriteString(w, String(root, opts)+"\n")
	return err
}

// String returns the outline of root without a trailing newline.
func String[T any](root *tree.Node[T], opts Options[T]) string {
	glyphs := Unicode
	if opts.ASCII {
		glyphs = ASCII
	}
	r := renderer[T]{opts: opts, glyphs: glyphs}

	if root.IsLeaf() || opts.MaxDepth < 0 {
		return r.label(root, 0)
	}

	type frame struct {
		node  *tree.Node[T]
		view  *ltree.Tree
		depth int
	}
	top := r.view(root, 0)
	stack := []frame{{root, top, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range f.node.Children() {
			d := f.depth + 1
			if c.IsLeaf() || !r.expand(d) {
				f.view.Child(r.label(c, d))
				continue
			}
			cv := r.view(c, d)
			f.view.Child(cv)
			stack = append(stack, frame{c, cv, d})
		}
	}
	return top.String()
}

type renderer[T any] struct {
	opts   Options[T]
	glyphs Glyphs
}

// expand reports whether a node at depth d shows its children.
func (r renderer[T]) expand(d int) bool {
	return r.opts.MaxDepth == 0 || d < r.opts.MaxDepth
}

func (r renderer[T]) label(n *tree.Node[T], d int) string {
	s := n.String()
	if r.opts.Label != nil {
		s = r.opts.Label(n)
	}
	if s == "" {
		// lipgloss folds unnamed subtrees into the previous sibling.
		s = `""`
	}
	if r.opts.Style != nil {
		s = r.opts.Style(n).Render(s)
	}
	if n.HasChildren() && !r.expand(d) {
		s += fmt.Sprintf(" [+%d]", n.CountDescendants())
	}
	return s
}

func (r renderer[T]) view(n *tree.Node[T], d int) *ltree.Tree {
	g := r.glyphs
	return ltree.Root(r.label(n, d)).
		Enumerator(func(children ltree.Children, i int) string {
			if i == children.Length()-1 {
				return g.Last
			}
			return g.Branch
		}).
		Indenter(func(children ltree.Children, i int) string {
			if i == children.Length()-1 {
				return g.Space
			}
			return g.Pipe
		}).
		EnumeratorStyle(lipgloss.NewStyle())
}
