package tree

import (
	"reflect"
	"testing"
)

func TestBuild_SingleLink(t *testing.T) {
	got := Build([]Link{NewLink(1, 2)}, NewSet())

	wantP2C := map[ID][]ID{1: {2}}
	wantC2P := map[ID]ID{2: 1}
	if !reflect.DeepEqual(got.ParentToChildren, wantP2C) {
		t.Errorf("ParentToChildren = %v, want %v", got.ParentToChildren, wantP2C)
	}
	if !reflect.DeepEqual(got.ChildToParent, wantC2P) {
		t.Errorf("ChildToParent = %v, want %v", got.ChildToParent, wantC2P)
	}
}

func TestBuild_OutOfScope(t *testing.T) {
	tests := []struct {
		name       string
		links      []Link
		outOfScope Set
	}{
		{"child out of scope", []Link{NewLink(5, 6)}, NewSet(6)},
		{"parent out of scope", []Link{NewLink(5, 6)}, NewSet(5)},
		{"both out of scope", []Link{NewLink(5, 6)}, NewSet(5, 6)},
		{"root child excluded", []Link{NewLink(Root, 7)}, NewSet(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.links, tt.outOfScope)
			if !got.IsEmpty() {
				t.Errorf("Build() = %+v, want empty tree", got)
			}
			if got.ParentToChildren == nil || got.ChildToParent == nil {
				t.Error("Build() maps should be allocated")
			}
		})
	}
}

func TestBuild_ExcludesOnlyMatchingLinks(t *testing.T) {
	links := []Link{
		NewLink(Root, 1),
		NewLink(1, 2),
		NewLink(1, 3),
		NewLink(3, 4),
	}
	got := Build(links, NewSet(3))

	for _, id := range []ID{3, 4} {
		if _, ok := got.Parent(id); ok {
			t.Errorf("node %d should have no parent entry", id)
		}
	}
	want := map[ID][]ID{Root: {1}, 1: {2}}
	if !reflect.DeepEqual(got.ParentToChildren, want) {
		t.Errorf("ParentToChildren = %v, want %v", got.ParentToChildren, want)
	}
	if n := Excluded(links, NewSet(3)); n != 2 {
		t.Errorf("Excluded() = %d, want 2", n)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	for name, links := range map[string][]Link{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			got := Build(links, nil)
			if !got.IsEmpty() {
				t.Errorf("Build(%s) = %+v, want empty", name, got)
			}
		})
	}
}

func TestBuild_MissingEndpoints(t *testing.T) {
	links := []Link{
		{Target: &Ref{ID: 1}},
		{Source: &Ref{ID: 1}},
	}
	got := Build(links, nil)

	if p, ok := got.Parent(1); !ok || p != Root {
		t.Errorf("Parent(1) = %d, %v, want Root", p, ok)
	}
	if p, ok := got.Parent(Root); !ok || p != 1 {
		t.Errorf("Parent(Root) = %d, %v, want 1", p, ok)
	}
	if !reflect.DeepEqual(got.Children(Root), []ID{1}) {
		t.Errorf("Children(Root) = %v, want [1]", got.Children(Root))
	}
	if !reflect.DeepEqual(got.Children(1), []ID{Root}) {
		t.Errorf("Children(1) = %v, want [Root]", got.Children(1))
	}
}

func TestBuild_DuplicateLinks(t *testing.T) {
	links := []Link{
		NewLink(1, 3),
		NewLink(2, 3),
		NewLink(1, 3),
	}
	got := Build(links, nil)

	if p, _ := got.Parent(3); p != 1 {
		t.Errorf("Parent(3) = %d, want 1 (last link wins)", p)
	}
	want := map[ID][]ID{1: {3, 3}, 2: {3}}
	if !reflect.DeepEqual(got.ParentToChildren, want) {
		t.Errorf("ParentToChildren = %v, want %v", got.ParentToChildren, want)
	}
	if len(got.ChildToParent) != 1 {
		t.Errorf("ChildToParent has %d entries, want 1", len(got.ChildToParent))
	}
}

func TestBuild_PreservesInsertionOrder(t *testing.T) {
	links := []Link{NewLink(1, 9), NewLink(1, 4), NewLink(1, 7)}
	got := Build(links, nil)

	if !reflect.DeepEqual(got.Children(1), []ID{9, 4, 7}) {
		t.Errorf("Children(1) = %v, want [9 4 7]", got.Children(1))
	}
}

func TestBuild_DoesNotAliasInput(t *testing.T) {
	links := []Link{NewLink(1, 2)}
	a := Build(links, nil)
	b := Build(links, nil)
	a.ParentToChildren[1][0] = 99

	if b.ParentToChildren[1][0] != 2 {
		t.Error("separate Build calls should not share state")
	}
}
