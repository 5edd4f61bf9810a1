package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Output formats accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Formats lists the supported output formats.
var Formats = []string{FormatDOT, FormatSVG, FormatPNG}

// Options configures diagram generation.
type Options[T any] struct {
	// Label formats a node. Defaults to the node's String method.
	Label func(n *tree.Node[T]) string
	// Highlight marks nodes (and the edges between them) in a different
	// color.
	Highlight []*tree.Node[T]
	// LeftToRight lays the tree out horizontally instead of top to bottom.
	LeftToRight bool
}

const highlightColor = "\"#2a9d8f\""

// ToDOT converts the tree rooted at root to Graphviz DOT format. Vertices are
// named n0, n1, ... in preorder, and edges are emitted in the same order, so
// the output is stable for a given tree.
func ToDOT[T any](root *tree.Node[T], opts Options[T]) string {
	ids := make(map[*tree.Node[T]]int)
	for n := range root.Preorder() {
		ids[n] = len(ids)
	}
	marked := make(map[*tree.Node[T]]bool, len(opts.Highlight))
	for _, n := range opts.Highlight {
		marked[n] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.LeftToRight {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for n := range root.Preorder() {
		fmt.Fprintf(&buf, "  n%d [%s];\n", ids[n], strings.Join(nodeAttrs(n, label(n, opts), marked[n]), ", "))
	}

	buf.WriteString("\n")
	for n := range root.Preorder() {
		for _, c := range n.Children() {
			if marked[n] && marked[c] {
				fmt.Fprintf(&buf, "  n%d -> n%d [color=%s, penwidth=2.5];\n", ids[n], ids[c], highlightColor)
				continue
			}
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", ids[n], ids[c])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label[T any](n *tree.Node[T], opts Options[T]) string {
	if opts.Label != nil {
		return opts.Label(n)
	}
	return n.String()
}

func nodeAttrs[T any](n *tree.Node[T], label string, marked bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.IsLeaf() {
		attrs = append(attrs, "shape=box", "style=\"rounded,filled\"")
	} else {
		attrs = append(attrs, "shape=ellipse")
	}
	if n.IsEmpty() {
		attrs = append(attrs, "fontcolor=gray50")
	}
	if marked {
		attrs = append(attrs, "color="+highlightColor, "penwidth=2.5")
	}
	return attrs
}

// Render lays out dot with Graphviz and returns the image in the given
// format. FormatDOT returns the source unchanged.
func Render(ctx context.Context, dot string, format string) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format, strings.Count(dot, " [label="))
	start := time.Now()

	out, err := render(ctx, dot, format)
	hooks.OnRenderComplete(ctx, format, len(out), time.Since(start), err)
	return out, err
}

func render(ctx context.Context, dot string, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG is Render with FormatSVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, FormatSVG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox, so browsers scale the drawing 1:1.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
