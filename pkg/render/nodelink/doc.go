// Package nodelink renders roadmap trees as node-link diagrams.
//
// # Overview
//
// Work items appear as rounded boxes colored by work item type, connected
// by arrows from parent to child. The diagram is laid out top to bottom, so
// epics sit above their features and features above their stories.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(result.Normalized, input.Items(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - ShowRoot: draw the virtual root as a "Roadmap" node
//   - Detailed: include the work item state in labels
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and PNG
// rendering. No system Graphviz installation is required.
package nodelink
