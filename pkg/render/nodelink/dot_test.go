package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/epicroadmap/pkg/tree"
)

func sampleTree() (*tree.Tree, map[tree.ID]tree.WorkItem) {
	t := tree.Build([]tree.Link{
		tree.NewLink(tree.Root, 1),
		tree.NewLink(1, 2),
		tree.NewLink(1, 3),
	}, nil)
	items := map[tree.ID]tree.WorkItem{
		1: {ID: 1, Type: "Epic", Title: "Checkout", State: "Active"},
		2: {ID: 2, Type: "Feature", Title: "Payments"},
	}
	return t, items
}

func TestToDOT(t *testing.T) {
	tr, items := sampleTree()
	dot := ToDOT(tr, items, Options{})

	for _, want := range []string{
		"digraph G {",
		`"wi1" [label="#1 Epic\nCheckout", fillcolor="#f2cb7c"];`,
		`"wi2" [label="#2 Feature\nPayments", fillcolor="#c9b6e4"];`,
		`"wi3" [label="#3"];`,
		`"wi1" -> "wi2";`,
		`"wi1" -> "wi3";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s in:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"root"`) {
		t.Error("ToDOT() should omit the root by default")
	}
	if strings.Contains(dot, "Active") {
		t.Error("ToDOT() should omit states unless detailed")
	}
}

func TestToDOT_ShowRootAndDetailed(t *testing.T) {
	tr, items := sampleTree()
	dot := ToDOT(tr, items, Options{ShowRoot: true, Detailed: true})

	for _, want := range []string{`"root" [label="Roadmap"`, `"root" -> "wi1";`, `[Active]`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s in:\n%s", want, dot)
		}
	}
}

func TestToDOT_SiblingOrder(t *testing.T) {
	tr, items := sampleTree()
	dot := ToDOT(tr, items, Options{})
	if strings.Index(dot, `"wi2" [`) > strings.Index(dot, `"wi3" [`) {
		t.Errorf("siblings out of order:\n%s", dot)
	}
}

func TestToDOT_Empty(t *testing.T) {
	for _, tr := range []*tree.Tree{nil, tree.New()} {
		dot := ToDOT(tr, nil, Options{})
		if strings.Contains(dot, "->") || !strings.HasSuffix(dot, "}\n") {
			t.Errorf("ToDOT(empty) = %q", dot)
		}
	}
}

func TestToDOT_Diamond(t *testing.T) {
	tr := tree.Build([]tree.Link{
		tree.NewLink(tree.Root, 1),
		tree.NewLink(tree.Root, 2),
		tree.NewLink(1, 3),
		tree.NewLink(2, 3),
	}, nil)
	dot := ToDOT(tr, nil, Options{})
	if n := strings.Count(dot, `"wi3" [`); n != 1 {
		t.Errorf("node 3 declared %d times, want 1", n)
	}
	for _, want := range []string{`"wi1" -> "wi3";`, `"wi2" -> "wi3";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s", want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox = %s, want unchanged", got)
	}
}
