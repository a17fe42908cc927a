package tree

import (
	"fmt"
	"math"
)

// RankLookup resolves a work-item type name to its backlog rank. Lower ranks
// sit higher in the hierarchy. The boolean is false for types that are not
// part of the hierarchy.
type RankLookup interface {
	Rank(typeName string) (int, bool)
}

// RankFunc adapts a plain function to [RankLookup].
type RankFunc func(typeName string) (int, bool)

// Rank calls f.
func (f RankFunc) Rank(typeName string) (int, bool) { return f(typeName) }

// rootRank is below every configurable rank so that top-level items never
// collapse into the root.
const rootRank = math.MinInt

// Normalize rewrites a raw tree so that it follows the backlog hierarchy.
//
// Starting at [Root], children are visited depth-first in raw order. For each
// child:
//   - if its type is unknown or has no rank, the child and its whole subtree
//     are dropped
//   - if its rank equals the rank of the node it hangs under, it is re-parented
//     to that node's own parent, so Story/Story chains become siblings
//   - otherwise it keeps its raw parent
//
// Only equal ranks are repaired. A child whose rank is shallower than its
// parent's (a Feature under a Story) is kept where it is.
//
// Every retained node gets a ParentToChildren entry, possibly empty, and Root
// is always present. When types is empty there is nothing to rank and an
// empty tree is returned.
//
// Normalize returns [ErrCycle] if the raw tree loops back onto a node on the
// current path. A node reachable through two different parents is not a cycle;
// it is visited once per parent.
func Normalize(raw *Tree, types NodeTypes, ranks RankLookup) (*Tree, error) {
	out := New()
	if len(types) == 0 {
		return out, nil
	}
	if raw == nil {
		raw = New()
	}

	n := &normalizer{
		raw:    raw,
		types:  types,
		ranks:  ranks,
		out:    out,
		onPath: map[ID]bool{Root: true},
	}
	out.ParentToChildren[Root] = []ID{}
	if err := n.descend(Root, Root, rootRank); err != nil {
		return nil, err
	}
	return out, nil
}

type normalizer struct {
	raw    *Tree
	types  NodeTypes
	ranks  RankLookup
	out    *Tree
	onPath map[ID]bool
}

// descend places the raw children of current. ancestor is the node current
// is attached to in the output.
func (n *normalizer) descend(ancestor, current ID, currentRank int) error {
	for _, child := range n.raw.ParentToChildren[current] {
		rank, ok := n.rankOf(child)
		if !ok {
			continue
		}
		if n.onPath[child] {
			return fmt.Errorf("%w: work item %d reached again below %d", ErrCycle, child, current)
		}

		n.out.ParentToChildren[child] = []ID{}

		parent := current
		if rank == currentRank {
			parent = ancestor
		}
		n.out.ParentToChildren[parent] = append(n.out.ParentToChildren[parent], child)
		n.out.ChildToParent[child] = parent

		n.onPath[child] = true
		err := n.descend(parent, child, rank)
		delete(n.onPath, child)
		if err != nil {
			return err
		}
	}
	return nil
}

func (n *normalizer) rankOf(id ID) (int, bool) {
	typeName, ok := n.types[id]
	if !ok || n.ranks == nil {
		return 0, false
	}
	return n.ranks.Rank(typeName)
}
