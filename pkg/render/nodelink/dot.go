package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/epicroadmap/pkg/tree"
)

// Options configures roadmap diagram rendering.
type Options struct {
	// ShowRoot draws the virtual root and its edges to top-level items.
	ShowRoot bool

	// Detailed adds the work item state to node labels.
	Detailed bool
}

// typeColors gives the stock Agile work item types a fill color. Other types
// are drawn white.
var typeColors = map[string]string{
	"Epic":       "#f2cb7c",
	"Feature":    "#c9b6e4",
	"User Story": "#a7d3f2",
	"Bug":        "#f4a7a7",
}

// ToDOT converts a roadmap tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Nodes are emitted depth-first from the root so that siblings keep their
// tree order; nodes not reachable from the root are left out. Nodes missing
// from items are labeled by ID alone.
func ToDOT(t *tree.Tree, items map[tree.ID]tree.WorkItem, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if t == nil {
		t = tree.New()
	}

	var parents []tree.ID
	if opts.ShowRoot {
		fmt.Fprintf(&buf, "  %q [label=\"Roadmap\", shape=ellipse, fillcolor=lightgrey];\n", nodeName(tree.Root))
		parents = append(parents, tree.Root)
	}
	seen := tree.NewSet()
	// Walk only fails on cycles; a partial diagram is still useful then.
	_ = t.Walk(func(id tree.ID, _ int) bool {
		if seen.Has(id) {
			return true
		}
		seen.Add(id)
		parents = append(parents, id)

		w, ok := items[id]
		if !ok {
			w = tree.WorkItem{ID: id}
		}
		attrs := fmtAttrs(w, fmtLabel(w, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeName(id), strings.Join(attrs, ", "))
		return true
	})

	buf.WriteString("\n")
	for _, p := range parents {
		for _, c := range t.Children(p) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeName(p), nodeName(c))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id tree.ID) string {
	if id == tree.Root {
		return "root"
	}
	return "wi" + strconv.Itoa(int(id))
}

func fmtLabel(w tree.WorkItem, detailed bool) string {
	parts := []string{fmt.Sprintf("#%d", w.ID)}
	if w.Type != "" {
		parts = append(parts, w.Type)
	}
	label := strings.Join(parts, " ")
	if w.Title != "" {
		label += "\n" + w.Title
	}
	if detailed && w.State != "" {
		label += "\n[" + w.State + "]"
	}
	return label
}

func fmtAttrs(w tree.WorkItem, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if c, ok := typeColors[w.Type]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
	}
	if w.State == "Removed" || w.State == "Closed" {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=gray40")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag with one whose viewBox
// starts at the origin so the diagram scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
