// Package pkg provides the libraries behind epicroadmap.
//
// # Overview
//
// epicroadmap turns parent/child links between work items into a roadmap
// tree that follows a team's backlog hierarchy. The pkg directory is
// organized as:
//
//  1. [tree] - Raw tree building, normalization, and tree queries
//  2. [backlog] - Backlog configurations and work item type ranks
//  3. [roadmap] - Pipeline orchestration (build → normalize) with logging and hooks
//  4. [io] - JSON input documents and tree export
//  5. [render/nodelink] - Graphviz diagrams (DOT, SVG, PNG)
//  6. [errors] - Coded errors shared by the CLI and the HTTP API
//  7. [observability] - Hook registry for metrics backends
//
// # Architecture
//
//	links + out-of-scope ids
//	         ↓
//	    [tree.Build] (raw tree)
//	         ↓
//	    [tree.Normalize] with ranks from [backlog.RankMapFromConfig]
//	         ↓
//	    JSON / DOT / SVG / PNG
//
// # Quick Start
//
//	runner := roadmap.NewRunner(logger)
//	result, err := runner.Run(ctx, roadmap.Input{
//	    Links:     links,
//	    WorkItems: items,
//	    Backlog:   backlog.Default(),
//	})
//	if err != nil {
//	    return err
//	}
//	return io.WriteTree(result.Normalized, os.Stdout)
//
// [tree]: github.com/matzehuels/epicroadmap/pkg/tree
// [backlog]: github.com/matzehuels/epicroadmap/pkg/backlog
// [roadmap]: github.com/matzehuels/epicroadmap/pkg/roadmap
// [io]: github.com/matzehuels/epicroadmap/pkg/io
// [render/nodelink]: github.com/matzehuels/epicroadmap/pkg/render/nodelink
// [errors]: github.com/matzehuels/epicroadmap/pkg/errors
// [observability]: github.com/matzehuels/epicroadmap/pkg/observability
// [tree.Build]: github.com/matzehuels/epicroadmap/pkg/tree.Build
// [tree.Normalize]: github.com/matzehuels/epicroadmap/pkg/tree.Normalize
// [backlog.RankMapFromConfig]: github.com/matzehuels/epicroadmap/pkg/backlog.RankMapFromConfig
package pkg
