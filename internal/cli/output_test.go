package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/epicroadmap/pkg/tree"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"json"}},
		{"svg", []string{"svg"}},
		{"json,dot", []string{"json", "dot"}},
		{" SVG , png ,", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		formats []string
		wantErr bool
	}{
		{[]string{"json"}, false},
		{[]string{"json", "dot", "svg", "png"}, false},
		{[]string{"pdf"}, true},
		{[]string{"json", "tower"}, true},
		{nil, true},
	}

	for _, tt := range tests {
		if err := validateFormats(tt.formats); (err != nil) != tt.wantErr {
			t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "links.json", "links"},
		{"", "dir/links.json", "dir/links"},
		{"roadmap.svg", "links.json", "roadmap"},
		{"roadmap", "links.json", "roadmap"},
		{"roadmap.v2", "links.json", "roadmap.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteOutputs_Stdout(t *testing.T) {
	tr := tree.Build([]tree.Link{tree.NewLink(tree.Root, 1)}, nil)

	var stdout, status bytes.Buffer
	if err := writeOutputs(context.Background(), tr, "in.json", "", []string{"dot"}, renderOpts{}, &stdout, &status); err != nil {
		t.Fatalf("writeOutputs() error: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "digraph G {") {
		t.Errorf("stdout = %q, want DOT", stdout.String())
	}
	if status.Len() != 0 {
		t.Errorf("status = %q, want nothing for stdout output", status.String())
	}
}

func TestWriteOutputs_SingleFile(t *testing.T) {
	dir := t.TempDir()
	tr := tree.Build([]tree.Link{tree.NewLink(tree.Root, 1)}, nil)
	out := filepath.Join(dir, "roadmap.txt")

	var stdout, status bytes.Buffer
	if err := writeOutputs(context.Background(), tr, "in.json", out, []string{"json"}, renderOpts{}, &stdout, &status); err != nil {
		t.Fatalf("writeOutputs() error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "parentToChildrenMap") {
		t.Errorf("file content = %s", data)
	}
	if !strings.Contains(status.String(), "roadmap.txt") {
		t.Errorf("status = %q, want the file name", status.String())
	}
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	if terminal(&buf) != nil {
		t.Error("a buffer is not a terminal")
	}
}
