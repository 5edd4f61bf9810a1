package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	iofs "io/fs"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/source/fs"
	"github.com/matzehuels/arbor/pkg/tree"
)

// scanFlags are the flags shared by every command that reads a directory.
// Unset flags fall back to the [scan] section of the config file.
type scanFlags struct {
	maxDepth    int
	hidden      bool
	ignore      []string
	concurrency int
	follow      bool
}

func addScanFlags(cmd *cobra.Command, f *scanFlags) {
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "deepest level to read (0 = unlimited)")
	cmd.Flags().BoolVar(&f.hidden, "hidden", false, "include entries starting with '.'")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "parallel directory readers")
	cmd.Flags().BoolVarP(&f.follow, "follow", "L", false, "follow symbolic links to directories")
}

// scanOptions merges flags that were set on the command line over the config.
func (c *CLI) scanOptions(cmd *cobra.Command, f *scanFlags) fs.Options {
	opts := fs.Options{
		MaxDepth:       c.cfg.Scan.MaxDepth,
		Hidden:         c.cfg.Scan.Hidden,
		Ignore:         c.cfg.Scan.Ignore,
		Concurrency:    c.cfg.Scan.Concurrency,
		FollowSymlinks: f.follow,
	}
	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		opts.MaxDepth = f.maxDepth
	}
	if flags.Changed("hidden") {
		opts.Hidden = f.hidden
	}
	if flags.Changed("ignore") {
		opts.Ignore = f.ignore
	}
	if flags.Changed("concurrency") {
		opts.Concurrency = f.concurrency
	}
	return opts
}

// scan reads dir into a tree, showing a spinner on stderr while it runs.
func (c *CLI) scan(cmd *cobra.Command, dir string, f *scanFlags) (*tree.Node[fs.Entry], error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts := c.scanOptions(cmd, f)
	logger.Debug("scanning", "dir", dir, "max_depth", opts.MaxDepth, "hidden", opts.Hidden, "ignore", opts.Ignore)

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Scanning "+dir)
	spinner.w = cmd.ErrOrStderr()
	spinner.Start()
	root, err := fs.Scan(ctx, dir, opts)
	spinner.Stop()
	if err != nil {
		return nil, classify(err)
	}
	prog.done(fmt.Sprintf("Scanned %d entries", root.CountDescendants()+1))
	return root, nil
}

// lookup resolves a path relative to the scanned root.
func lookup(root *tree.Node[fs.Entry], p string) (*tree.Node[fs.Entry], error) {
	n, err := fs.Lookup(root, p)
	if err != nil {
		return nil, classify(err)
	}
	return n, nil
}

// classify attaches an error code to err for display at the CLI boundary.
// Cancellation is passed through untouched so main can map it to exit 130.
func classify(err error) error {
	var e *errors.Error
	switch {
	case err == nil:
		return nil
	case stderrors.As(err, &e):
		return e
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case stderrors.Is(err, fs.ErrNotFound):
		return errors.Wrap(errors.ErrCodeNotFound, err, "%s", err)
	case stderrors.Is(err, iofs.ErrNotExist):
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", err)
	case stderrors.Is(err, fs.ErrTooManyEntries):
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s (narrow the scan with --max-depth or --ignore)", err)
	default:
		return errors.FromTree(err)
	}
}
