// Package nodelink renders trees as node-link diagrams.
//
// # Overview
//
// [ToDOT] turns a tree into Graphviz DOT source: one vertex per node and one
// edge from every parent to each of its children, laid out top to bottom.
// Leaves are drawn as rounded boxes and internal nodes as ellipses. A set of
// nodes, typically the result of [tree.Node.PathTo], can be highlighted.
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options[fs.Entry]{})
//	svg, err := nodelink.Render(ctx, dot, nodelink.FormatSVG)
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz in
// process; no external binaries are needed. The DOT source can also be
// written out and processed with the Graphviz command line tools.
//
// [tree.Node.PathTo]: github.com/matzehuels/arbor/pkg/tree
package nodelink
