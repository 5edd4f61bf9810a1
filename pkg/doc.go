// Package pkg holds arbor's libraries.
//
// # Overview
//
// Arbor models hierarchies as generic N-ary trees and applies that model to
// directories. The libraries are usable without the CLI:
//
//  1. [tree] - Generic nodes with traversals, queries and relations
//  2. [source/fs] - Concurrent directory scanning into a tree
//  3. [filter] - Sandboxed Lua predicates over tree entries
//  4. [render] - Text outlines and Graphviz diagrams
//
// # Architecture
//
// The typical data flow through arbor:
//
//	Directory
//	         ↓
//	    [source/fs] package (scan into *tree.Node[fs.Entry])
//	         ↓
//	    [tree] package (walk, query, filter with [filter])
//	         ↓
//	    [render] package (outline, DOT, SVG, PNG)
//
// # Quick Start
//
//	root, err := fs.Scan(ctx, ".", fs.Options{Ignore: []string{".git"}})
//	if err != nil {
//	    return err
//	}
//	for n := range root.Preorder() {
//	    fmt.Println(n.Value().Path)
//	}
//	fmt.Println(text.String(root, text.Options[fs.Entry]{MaxDepth: 2}))
//
// # Supporting Packages
//
// [config] loads config.toml, [cache] keeps rendered artifacts between runs,
// [errors] adds machine-readable codes for the CLI boundary, and
// [observability] lets callers hook into scanning, rendering and filtering
// without the libraries logging themselves. [buildinfo] carries version
// information.
//
// [tree]: github.com/matzehuels/arbor/pkg/tree
// [source/fs]: github.com/matzehuels/arbor/pkg/source/fs
// [filter]: github.com/matzehuels/arbor/pkg/filter
// [render]: github.com/matzehuels/arbor/pkg/render
// [config]: github.com/matzehuels/arbor/pkg/config
// [cache]: github.com/matzehuels/arbor/pkg/cache
// [errors]: github.com/matzehuels/arbor/pkg/errors
// [observability]: github.com/matzehuels/arbor/pkg/observability
// [buildinfo]: github.com/matzehuels/arbor/pkg/buildinfo
package pkg
