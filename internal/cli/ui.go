package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	ltree "github.com/charmbracelet/lipgloss/tree"
	"github.com/dustin/go-humanize"

	"github.com/matzehuels/epicroadmap/pkg/backlog"
	"github.com/matzehuels/epicroadmap/pkg/roadmap"
	"github.com/matzehuels/epicroadmap/pkg/tree"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorPurple = lipgloss.Color("141") // Lavender - features
	colorBlue   = lipgloss.Color("75")  // Light blue - stories
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// typeStyles colors work item types in tree output.
var typeStyles = map[string]lipgloss.Style{
	"Epic":       lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	"Feature":    lipgloss.NewStyle().Foreground(colorPurple),
	"User Story": lipgloss.NewStyle().Foreground(colorBlue),
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line with its size.
func printFile(w io.Writer, path string, size int) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path)+" "+
		StyleDim.Render("("+humanize.Bytes(uint64(size))+")"))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints pipeline statistics on a single line.
func printStats(w io.Writer, s roadmap.Stats) {
	parts := []string{
		humanize.Comma(int64(s.NormalizedNodes)) + " work items",
		humanize.Comma(int64(s.LinkCount)) + " links",
	}
	if s.ExcludedLinks > 0 {
		parts = append(parts, humanize.Comma(int64(s.ExcludedLinks))+" out of scope")
	}
	if s.PrunedNodes > 0 {
		parts = append(parts, humanize.Comma(int64(s.PrunedNodes))+" pruned")
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Fprintln(w, line)
}

// =============================================================================
// Tree Display
// =============================================================================

// renderTree draws t as an indented tree rooted at a "Roadmap" node. Items
// without an entry in items are labeled by ID.
func renderTree(t *tree.Tree, items map[tree.ID]tree.WorkItem) string {
	root := ltree.Root(StyleTitle.Render("Roadmap")).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)

	seen := tree.NewSet()
	var add func(parent *ltree.Tree, id tree.ID)
	add = func(parent *ltree.Tree, id tree.ID) {
		for _, child := range t.Children(id) {
			if seen.Has(child) {
				continue
			}
			seen.Add(child)
			label := itemLabel(child, items)
			if len(t.Children(child)) == 0 {
				parent.Child(label)
				continue
			}
			sub := ltree.Root(label)
			add(sub, child)
			parent.Child(sub)
		}
	}
	add(root, tree.Root)
	return root.String()
}

func itemLabel(id tree.ID, items map[tree.ID]tree.WorkItem) string {
	w, ok := items[id]
	num := StyleNumber.Render(fmt.Sprintf("#%d", id))
	if !ok {
		return num
	}
	parts := []string{num}
	if w.Type != "" {
		style, ok := typeStyles[w.Type]
		if !ok {
			style = StyleDim
		}
		parts = append(parts, style.Render(w.Type))
	}
	if w.Title != "" {
		parts = append(parts, StyleValue.Render(w.Title))
	}
	if w.State != "" {
		parts = append(parts, StyleDim.Render("["+w.State+"]"))
	}
	return strings.Join(parts, " ")
}

// =============================================================================
// Backlog Display
// =============================================================================

// renderRanks draws one table row per backlog level, highest level first.
func renderRanks(cfg *backlog.Configuration) string {
	var rows [][]string
	for _, l := range sortedLevels(cfg) {
		rows = append(rows, []string{fmt.Sprint(l.Rank), l.Name, strings.Join(l.TypeNames(), ", ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Rank", "Level", "Work Item Types").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col == 0 {
				return StyleNumber.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}
