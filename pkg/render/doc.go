// Package render groups the tree renderers.
//
// # Overview
//
// Two views are provided:
//
//   - [text]: indented outlines drawn with box-drawing or ASCII glyphs, for
//     terminals and plain-text files
//   - [nodelink]: node-link diagrams as Graphviz DOT, SVG or PNG
//
// Both take a [tree.Node] and a label function, so any payload type can be
// rendered.
//
//	fmt.Print(text.String(root, text.Options[string]{}))
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(root, nodelink.Options[string]{}))
//
// [text]: github.com/matzehuels/arbor/pkg/render/text
// [nodelink]: github.com/matzehuels/arbor/pkg/render/nodelink
// [tree.Node]: github.com/matzehuels/arbor/pkg/tree
package render
