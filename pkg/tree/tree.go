package tree

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrCycle is returned by [Normalize] and [Tree.Validate] when a node is
	// reachable from itself. Work-item hierarchies are validated upstream to
	// be acyclic, so this indicates corrupted link data.
	ErrCycle = errors.New("tree contains a cycle")

	// ErrInconsistentParent is returned by [Tree.Validate] when a child is
	// listed under a parent other than the one recorded in ChildToParent.
	ErrInconsistentParent = errors.New("child listed under a parent other than its recorded parent")

	// ErrMissingRoot is returned by [Tree.Validate] when the virtual root has
	// no entry in ParentToChildren.
	ErrMissingRoot = errors.New("tree has no root entry")
)

// ID identifies a work item. [Root] is reserved for the virtual root and is
// never a real work item.
type ID int

// Root is the virtual root that anchors every top-level work item.
const Root ID = 0

// Ref is one endpoint of a [Link].
type Ref struct {
	ID ID `json:"id"`
}

// Link is a parent/child relation between two work items: Source is the
// parent and Target is the child. A nil endpoint stands for the virtual root.
type Link struct {
	Source *Ref `json:"source,omitempty"`
	Target *Ref `json:"target,omitempty"`
}

// NewLink returns a link from parent to child. Passing [Root] for either side
// leaves that endpoint nil.
func NewLink(parent, child ID) Link {
	var l Link
	if parent != Root {
		l.Source = &Ref{ID: parent}
	}
	if child != Root {
		l.Target = &Ref{ID: child}
	}
	return l
}

// Parent returns the parent endpoint, or [Root] when it is absent.
func (l Link) Parent() ID { return refID(l.Source) }

// Child returns the child endpoint, or [Root] when it is absent.
func (l Link) Child() ID { return refID(l.Target) }

func refID(r *Ref) ID {
	if r == nil {
		return Root
	}
	return r.ID
}

// WorkItem is the subset of a tracked work item the hierarchy cares about.
type WorkItem struct {
	ID    ID     `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
	State string `json:"state,omitempty"`
}

// NodeTypes maps a work item to its work-item type name.
type NodeTypes map[ID]string

// TypesOf indexes the work-item type of each item. Later duplicates win.
func TypesOf(items []WorkItem) NodeTypes {
	types := make(NodeTypes, len(items))
	for _, w := range items {
		types[w.ID] = w.Type
	}
	return types
}

// Set is a set of work item IDs.
type Set map[ID]struct{}

// NewSet returns a set holding ids.
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s Set) Add(id ID) { s[id] = struct{}{} }

// Has reports whether id is in the set. A nil set contains nothing.
func (s Set) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Tree is a bidirectional parent/child index. The same shape is used for the
// raw tree produced by [Build] and the normalized tree produced by [Normalize].
//
// ChildToParent holds at most one parent per child. ParentToChildren keeps
// insertion order and may contain duplicates when the input did.
//
// A Tree is plain data and is not safe for concurrent mutation.
type Tree struct {
	ParentToChildren map[ID][]ID `json:"parentToChildrenMap"`
	ChildToParent    map[ID]ID   `json:"childToParentMap"`
}

// New returns an empty tree with both maps allocated.
func New() *Tree {
	return &Tree{
		ParentToChildren: make(map[ID][]ID),
		ChildToParent:    make(map[ID]ID),
	}
}

// Children returns the children of id in insertion order.
// The returned slice must not be modified.
func (t *Tree) Children(id ID) []ID { return t.ParentToChildren[id] }

// Parent returns the recorded parent of id. The boolean is false when id has
// no parent entry, which is distinct from having [Root] as parent.
func (t *Tree) Parent(id ID) (ID, bool) {
	p, ok := t.ChildToParent[id]
	return p, ok
}

// IsEmpty reports whether both maps are empty.
func (t *Tree) IsEmpty() bool {
	return len(t.ParentToChildren) == 0 && len(t.ChildToParent) == 0
}

// Nodes returns every real work item referenced by the tree in ascending
// order. [Root] is not included.
func (t *Tree) Nodes() []ID {
	seen := make(map[ID]struct{}, len(t.ParentToChildren)+len(t.ChildToParent))
	for p, children := range t.ParentToChildren {
		seen[p] = struct{}{}
		for _, c := range children {
			seen[c] = struct{}{}
		}
	}
	for c := range t.ChildToParent {
		seen[c] = struct{}{}
	}
	delete(seen, Root)
	return slices.Sorted(maps.Keys(seen))
}

// Len returns the number of real work items referenced by the tree.
func (t *Tree) Len() int { return len(t.Nodes()) }

// EdgeCount returns the number of parent/child entries, duplicates included.
func (t *Tree) EdgeCount() int {
	n := 0
	for _, children := range t.ParentToChildren {
		n += len(children)
	}
	return n
}

// Depth returns the number of parent hops from id up to a node without a
// recorded parent. Root and parentless nodes have depth 0. Depth stops
// climbing if the parent chain loops.
func (t *Tree) Depth(id ID) int {
	depth := 0
	seen := map[ID]bool{id: true}
	for {
		p, ok := t.ChildToParent[id]
		if !ok || seen[p] {
			return depth
		}
		depth++
		seen[p] = true
		id = p
	}
}

// Walk visits every node reachable from [Root] depth-first, children in
// order, calling fn with the node and its depth below Root. Root itself is
// not visited. Walk stops early when fn returns false and returns ErrCycle if
// it re-enters a node on the current path.
func (t *Tree) Walk(fn func(id ID, depth int) bool) error {
	onPath := map[ID]bool{Root: true}
	var visit func(id ID, depth int) (bool, error)
	visit = func(id ID, depth int) (bool, error) {
		for _, child := range t.ParentToChildren[id] {
			if onPath[child] {
				return false, ErrCycle
			}
			if !fn(child, depth) {
				return false, nil
			}
			onPath[child] = true
			cont, err := visit(child, depth+1)
			delete(onPath, child)
			if err != nil || !cont {
				return false, err
			}
		}
		return true, nil
	}
	_, err := visit(Root, 0)
	return err
}

// Validate checks the structural invariants of a normalized tree:
//   - Root has a ParentToChildren entry
//   - every child's recorded parent lists that child
//   - no node is its own ancestor
//
// Cycles are detected with depth-first search using white/gray/black coloring.
func (t *Tree) Validate() error {
	if _, ok := t.ParentToChildren[Root]; !ok {
		return ErrMissingRoot
	}
	for child, parent := range t.ChildToParent {
		if !slices.Contains(t.ParentToChildren[parent], child) {
			return ErrInconsistentParent
		}
	}

	const (
		white = iota
		gray
		black
	)
	color := make(map[ID]int, len(t.ParentToChildren))
	var dfs func(id ID) bool
	dfs = func(id ID) bool {
		color[id] = gray
		for _, child := range t.ParentToChildren[id] {
			switch color[child] {
			case gray:
				return false
			case white:
				if !dfs(child) {
					return false
				}
			}
		}
		color[id] = black
		return true
	}
	for _, id := range slices.Sorted(maps.Keys(t.ParentToChildren)) {
		if color[id] == white && !dfs(id) {
			return ErrCycle
		}
	}
	return nil
}
