package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/render/text"
	"github.com/matzehuels/arbor/pkg/source/fs"
	"github.com/matzehuels/arbor/pkg/tree"
)

type showOpts struct {
	scan  scanFlags
	depth int
	ascii bool
	plain bool
	sizes bool
}

// showCommand creates the "show" command, which prints an outline.
func (c *CLI) showCommand() *cobra.Command {
	var opts showOpts

	cmd := &cobra.Command{
		Use:   "show [dir]",
		Short: "Print a directory as an indented outline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := c.scan(cmd, dirArg(args), &opts.scan)
			if err != nil {
				return err
			}
			ascii := c.cfg.Output.ASCII
			if cmd.Flags().Changed("ascii") {
				ascii = opts.ascii
			}
			return text.Render(cmd.OutOrStdout(), root, c.outlineOptions(opts, ascii))
		},
	}

	addScanFlags(cmd, &opts.scan)
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", 0, "levels to print (0 = all); deeper entries are summarized")
	cmd.Flags().BoolVar(&opts.ascii, "ascii", false, "draw connectors with ASCII characters")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable colors")
	cmd.Flags().BoolVarP(&opts.sizes, "size", "s", false, "show sizes")

	return cmd
}

func (c *CLI) outlineOptions(opts showOpts, ascii bool) text.Options[fs.Entry] {
	o := text.Options[fs.Entry]{MaxDepth: opts.depth, ASCII: ascii}
	if !opts.plain {
		o.Style = entryStyle
	}
	if opts.sizes {
		o.Label = func(n *tree.Node[fs.Entry]) string {
			e := n.Value()
			return e.String() + " (" + formatSize(e.Size) + ")"
		}
	}
	return o
}

func dirArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
