// Package render groups the output renderers for roadmap trees.
//
// The [nodelink] subpackage produces Graphviz node-link diagrams (DOT, SVG,
// PNG). JSON output lives in [github.com/matzehuels/epicroadmap/pkg/io].
//
// [nodelink]: github.com/matzehuels/epicroadmap/pkg/render/nodelink
package render
