package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	pkgio "github.com/matzehuels/epicroadmap/pkg/io"
	"github.com/matzehuels/epicroadmap/pkg/render/nodelink"
	"github.com/matzehuels/epicroadmap/pkg/tree"
)

// Output formats.
const (
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPNG  = "png"
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatJSON: true, formatDOT: true, formatSVG: true, formatPNG: true}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["json"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatJSON}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	if len(formats) == 0 {
		return fmt.Errorf("no output format given")
	}
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'json', 'dot', 'svg', or 'png')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output has a
// format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// renderOpts controls how a tree is exported.
type renderOpts struct {
	items    map[tree.ID]tree.WorkItem
	showRoot bool
	detailed bool
	progress io.Writer // spinner output for slow formats, none when nil
}

// spin starts a spinner on o.progress and returns the function stopping it.
func (o renderOpts) spin(ctx context.Context, msg string) func() {
	if o.progress == nil {
		return func() {}
	}
	s := newSpinner(ctx, o.progress, msg)
	s.Start()
	return s.Stop
}

// renderTreeAs encodes t in the given format.
func renderTreeAs(ctx context.Context, t *tree.Tree, format string, opts renderOpts) ([]byte, error) {
	switch format {
	case formatJSON:
		var buf bytes.Buffer
		if err := pkgio.WriteTree(t, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatDOT:
		return []byte(toDOT(t, opts)), nil
	case formatSVG:
		defer opts.spin(ctx, "Rendering SVG")()
		return nodelink.RenderSVG(ctx, toDOT(t, opts))
	case formatPNG:
		defer opts.spin(ctx, "Rendering PNG")()
		return nodelink.RenderPNG(ctx, toDOT(t, opts))
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func toDOT(t *tree.Tree, opts renderOpts) string {
	return nodelink.ToDOT(t, opts.items, nodelink.Options{ShowRoot: opts.showRoot, Detailed: opts.detailed})
}

// writeOutputs renders t in every format. A single format goes to output,
// or to stdout when output is empty or "-". Several formats are written to
// base.format files, see [basePath].
func writeOutputs(ctx context.Context, t *tree.Tree, input, output string, formats []string, opts renderOpts, stdout, status io.Writer) error {
	logger := loggerFromContext(ctx)

	if len(formats) == 1 && (output == "" || output == "-") {
		data, err := renderTreeAs(ctx, t, formats[0], opts)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	single := len(formats) == 1
	base := basePath(output, input)
	for _, format := range formats {
		data, err := renderTreeAs(ctx, t, format, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}

		path := base + "." + format
		if single {
			path = output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		logger.Debugf("Generated %s: %d bytes", format, len(data))
		printFile(status, path, len(data))
	}
	return nil
}

// fileSize returns the size of the file at path, or 0 if it cannot be read.
func fileSize(path string) int {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return int(fi.Size())
}

// terminal returns w if it is an interactive terminal, nil otherwise.
func terminal(w io.Writer) io.Writer {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return w
	}
	return nil
}
