package tree

// Build indexes parent/child links into a raw [Tree].
//
// A link whose parent or child is in outOfScope is dropped entirely. For the
// remaining links the child is appended to its parent's children in input
// order and recorded as the child's parent, so when the same child appears in
// several links the last one wins in ChildToParent while every occurrence
// stays in ParentToChildren. Absent endpoints resolve to [Root].
//
// Build never fails; nil or empty links yield an empty tree with both maps
// allocated. The returned tree shares no memory with the inputs.
func Build(links []Link, outOfScope Set) *Tree {
	t := New()
	for _, l := range links {
		child, parent := l.Child(), l.Parent()
		if outOfScope.Has(child) || outOfScope.Has(parent) {
			continue
		}
		t.ChildToParent[child] = parent
		t.ParentToChildren[parent] = append(t.ParentToChildren[parent], child)
	}
	return t
}

// Excluded counts the links [Build] would drop for outOfScope.
func Excluded(links []Link, outOfScope Set) int {
	n := 0
	for _, l := range links {
		if outOfScope.Has(l.Child()) || outOfScope.Has(l.Parent()) {
			n++
		}
	}
	return n
}
