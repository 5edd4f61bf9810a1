package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/tree"
)

// queryCommand creates the "query" command, which relates two entries.
func (c *CLI) queryCommand() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "query <dir> <a> <b>",
		Short: "Show the common ancestor, path and distance between two entries",
		Long: `Show how two entries of a directory tree are related. Both paths are
relative to dir; "." names dir itself. With --from, dir is only a
placeholder.

  arbor query . cmd/arbor/main.go pkg/tree/node.go`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := c.scan(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			a, err := lookup(root, args[1])
			if err != nil {
				return err
			}
			b, err := lookup(root, args[2])
			if err != nil {
				return err
			}

			t, err := tree.NewTree(root)
			if err != nil {
				return classify(err)
			}
			lca, err := t.LowestCommonAncestor(a, b)
			if err != nil {
				return classify(err)
			}
			path, err := t.Path(a, b)
			if err != nil {
				return classify(err)
			}
			dist, err := t.Distance(a, b)
			if err != nil {
				return classify(err)
			}

			w := cmd.OutOrStdout()
			printKeyValue(w, "Ancestor", lca.Value().Path)
			printKeyValue(w, "Distance", fmt.Sprintf("%d", dist))
			printKeyValue(w, "Path", formatPath(path))
			switch {
			case a == b:
				printDetail(w, "same entry")
			case a.Contains(b):
				printDetail(w, "%s contains %s", a.Value().Path, b.Value().Path)
			case b.Contains(a):
				printDetail(w, "%s contains %s", b.Value().Path, a.Value().Path)
			}
			return nil
		},
	}

	addScanFlags(cmd, &flags)
	return cmd
}
