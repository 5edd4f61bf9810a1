package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/render/nodelink"
	"github.com/matzehuels/arbor/pkg/source/fs"
	"github.com/matzehuels/arbor/pkg/tree"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	scan        scanFlags
	output      string   // output file path; stdout when empty
	format      string   // dot, svg or png; inferred from output when empty
	highlight   []string // two paths whose connecting path is highlighted
	leftToRight bool     // horizontal layout
	sizes       bool     // append sizes to labels
}

// renderCommand creates the render command for generating node-link diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [dir]",
		Short: "Render a directory tree as a Graphviz diagram",
		Long: `Render a directory tree as a node-link diagram.

DOT output is written as is; SVG and PNG are laid out in process with
Graphviz and cached by content, so re-rendering an unchanged tree is instant.

  arbor render -o tree.svg
  arbor render --format dot | dot -Tpdf > tree.pdf
  arbor render --highlight cmd/arbor/main.go,pkg/tree/node.go -o path.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			if len(opts.highlight) != 0 && len(opts.highlight) != 2 {
				return errors.New(errors.ErrCodeInvalidInput, "--highlight takes exactly two paths")
			}
			return c.runRender(cmd, dirArg(args), format, &opts)
		},
	}

	addScanFlags(cmd, &opts.scan)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png (default from -o, else dot)")
	cmd.Flags().StringSliceVar(&opts.highlight, "highlight", nil, "highlight the path between two entries (a,b)")
	cmd.Flags().BoolVar(&opts.leftToRight, "lr", false, "lay the tree out left to right")
	cmd.Flags().BoolVarP(&opts.sizes, "size", "s", false, "show sizes in labels")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return nodelink.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// resolveFormat validates format, or infers it from the output file's
// extension when empty.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" || format == "gv" {
			format = nodelink.FormatDOT
		}
	}
	if !slices.Contains(nodelink.Formats, format) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(nodelink.Formats, ", "))
	}
	return format, nil
}

func (c *CLI) runRender(cmd *cobra.Command, dir, format string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	root, err := c.scan(cmd, dir, &opts.scan)
	if err != nil {
		return err
	}

	dotOpts := nodelink.Options[fs.Entry]{
		Label:       func(n *tree.Node[fs.Entry]) string { return nodeLabel(n, opts.sizes) },
		LeftToRight: opts.leftToRight,
	}
	if len(opts.highlight) == 2 {
		path, err := highlightPath(root, opts.highlight[0], opts.highlight[1])
		if err != nil {
			return err
		}
		dotOpts.Highlight = path
		logger.Debugf("Highlighting %d nodes", len(path))
	}
	dot := nodelink.ToDOT(root, dotOpts)

	data, cached, err := c.renderDOT(ctx, dot, format)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), opts.output, data); err != nil {
		return err
	}
	if opts.output != "" {
		w := cmd.ErrOrStderr()
		printSuccess(w, "Rendered %s", format)
		printFile(w, opts.output)
		printRenderStats(w, root.CountDescendants()+1, len(data), cached)
	}
	return nil
}

// renderDOT produces the artifact for format, going through the cache for
// everything but DOT itself.
func (c *CLI) renderDOT(ctx context.Context, dot, format string) ([]byte, bool, error) {
	if format == nodelink.FormatDOT {
		return []byte(dot), false, nil
	}

	store := c.newCache()
	defer store.Close()

	prog := newProgress(loggerFromContext(ctx))
	data, cached, err := cache.Fetch(ctx, store, cache.ArtifactKey([]byte(dot), format), func() ([]byte, error) {
		return nodelink.Render(ctx, dot, format)
	})
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	if cached {
		loggerFromContext(ctx).Debugf("Loaded %s from cache", format)
	} else {
		prog.done(fmt.Sprintf("Rendered %s", format))
	}
	return data, cached, nil
}

func highlightPath(root *tree.Node[fs.Entry], from, to string) ([]*tree.Node[fs.Entry], error) {
	a, err := lookup(root, from)
	if err != nil {
		return nil, err
	}
	b, err := lookup(root, to)
	if err != nil {
		return nil, err
	}
	path, err := a.PathTo(b)
	if err != nil {
		return nil, classify(err)
	}
	return path, nil
}

func nodeLabel(n *tree.Node[fs.Entry], sizes bool) string {
	e := n.Value()
	if !sizes {
		return e.String()
	}
	return e.String() + "\n" + formatSize(e.Size)
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
