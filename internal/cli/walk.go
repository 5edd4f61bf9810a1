package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/filter"
	"github.com/matzehuels/arbor/pkg/source/fs"
	"github.com/matzehuels/arbor/pkg/tree"
)

type walkOpts struct {
	scan  scanFlags
	order string
	where string
	prune string
	limit int
	null  bool
}

// walkCommand creates the "walk" command, which lists entries in a chosen
// traversal order.
func (c *CLI) walkCommand() *cobra.Command {
	var opts walkOpts

	cmd := &cobra.Command{
		Use:   "walk [dir]",
		Short: "List entries in traversal order",
		Long: `List every entry below dir, one path per line, in the requested order:

  pre    parent before children (default)
  post   children before parent
  in     first half of the children, the parent, then the rest
  level  level by level, top down
  dfs    depth first with an explicit stack (same sequence as pre)

--where keeps only entries for which a Lua expression is true, and --prune
skips whole subtrees (pre and dfs only). Expressions see these variables:
name, path, ext, dir, file, leaf, symlink, size, depth, level, children, mtime.

  arbor walk --where 'ext == ".go" and size > 4096'
  arbor walk --order dfs --prune 'name == "vendor"'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order := c.cfg.Output.Order
			if cmd.Flags().Changed("order") {
				order = opts.order
			}
			o, err := tree.ParseOrder(order)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --order")
			}
			if opts.prune != "" && o != tree.PreOrder && o != tree.DepthFirstOrder {
				return errors.New(errors.ErrCodeInvalidInput, "--prune needs --order pre or dfs")
			}

			where, err := compileOptional(opts.where)
			if err != nil {
				return err
			}
			defer closeOptional(where)
			prune, err := compileOptional(opts.prune)
			if err != nil {
				return err
			}
			defer closeOptional(prune)

			root, err := c.scan(cmd, dirArg(args), &opts.scan)
			if err != nil {
				return err
			}
			t, err := tree.NewTree(root)
			if err != nil {
				return classify(err)
			}

			sep := "\n"
			if opts.null {
				sep = "\x00"
			}
			w := cmd.OutOrStdout()
			ctx := cmd.Context()
			printed := 0
			var walkErr error
			// Under pre and dfs a false return only skips the subtree, so
			// stopping is tracked here.
			stopped := false
			t.Walk(o, func(n *tree.Node[fs.Entry]) bool {
				if stopped {
					return false
				}
				if ctx.Err() != nil {
					walkErr = ctx.Err()
					stopped = true
					return false
				}
				vars := filter.EntryVars(n)
				if prune != nil {
					skip, err := prune.Match(ctx, vars)
					if err != nil {
						walkErr = err
						stopped = true
						return false
					}
					if skip {
						return false
					}
				}
				if where != nil {
					ok, err := where.Match(ctx, vars)
					if err != nil {
						walkErr = err
						stopped = true
						return false
					}
					if !ok {
						return true
					}
				}
				fmt.Fprint(w, n.Value().Path, sep)
				printed++
				if opts.limit > 0 && printed >= opts.limit {
					stopped = true
					return false
				}
				return true
			})
			if walkErr != nil {
				return classify(walkErr)
			}
			loggerFromContext(ctx).Debug("walk finished", "order", o, "printed", printed)
			return nil
		},
	}

	addScanFlags(cmd, &opts.scan)
	cmd.Flags().StringVarP(&opts.order, "order", "O", "pre", "traversal order: pre, post, in, level, dfs")
	cmd.Flags().StringVarP(&opts.where, "where", "w", "", "Lua expression selecting entries to print")
	cmd.Flags().StringVar(&opts.prune, "prune", "", "Lua expression selecting subtrees to skip")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "stop after this many entries (0 = all)")
	cmd.Flags().BoolVarP(&opts.null, "null", "0", false, "separate paths with NUL instead of newline")
	_ = cmd.RegisterFlagCompletionFunc("order", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return orderNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func orderNames() []string {
	orders := []tree.Order{tree.PreOrder, tree.PostOrder, tree.InOrder, tree.LevelOrder, tree.DepthFirstOrder}
	names := make([]string, len(orders))
	for i, o := range orders {
		names[i] = o.String()
	}
	return names
}

func compileOptional(expr string) (*filter.Predicate, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	return filter.Compile(expr)
}

func closeOptional(p *filter.Predicate) {
	if p != nil {
		p.Close()
	}
}
