// Package tree builds and normalizes work-item hierarchies for roadmap views.
//
// # Overview
//
// Issue trackers hand out parent/child links as an unordered list. This
// package turns that list into a bidirectional [Tree] and then rewrites it so
// that it follows the backlog hierarchy (Epic > Feature > Story, ...) a team
// has configured.
//
// The work happens in two pure stages:
//
//  1. [Build] indexes the links into a raw tree, dropping every link that
//     touches an out-of-scope work item.
//  2. [Normalize] walks the raw tree from the virtual [Root], prunes work
//     items whose type is not part of the hierarchy, and lifts same-rank
//     children (a Story under a Story) up to become siblings of their parent.
//
// # Basic Usage
//
//	raw := tree.Build([]tree.Link{
//	    tree.NewLink(tree.Root, 1),
//	    tree.NewLink(1, 2),
//	}, tree.NewSet())
//
//	types := tree.NodeTypes{1: "Epic", 2: "Feature"}
//	ranks := tree.RankFunc(func(name string) (int, bool) {
//	    r, ok := map[string]int{"Epic": 0, "Feature": 1}[name]
//	    return r, ok
//	})
//
//	norm, err := tree.Normalize(raw, types, ranks)
//
// In practice ranks come from a backlog configuration; see the backlog
// package's RankMap, which implements [RankLookup].
//
// # Virtual Root
//
// [Root] (ID 0) anchors every top-level work item. In [Link] a missing
// endpoint is a nil [Ref] rather than an ID of 0; [Link.Parent] and
// [Link.Child] resolve it to Root.
//
// # Cycles
//
// Link data is expected to be acyclic. [Normalize] tracks the nodes on the
// current path and returns [ErrCycle] instead of recursing forever when that
// expectation is broken. [Tree.Validate] checks a finished tree.
//
// # Concurrency
//
// [Build] and [Normalize] allocate fresh results and never mutate their
// inputs, so they may run concurrently on shared inputs. A [Tree] itself is
// not safe for concurrent mutation.
package tree
