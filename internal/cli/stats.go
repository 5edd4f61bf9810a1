package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/source/fs"
	"github.com/matzehuels/arbor/pkg/tree"
)

// treeStats summarizes the shape of a scanned tree.
type treeStats struct {
	nodes, dirs, files, symlinks, unreadable int
	leaves, branches                         int
	height                                   int
	maxFanout                                int
	widest                                   string
	deepest                                  string
	size                                     int64
}

func collectStats(root *tree.Node[fs.Entry]) treeStats {
	s := treeStats{height: root.Height(), size: root.Value().Size}
	deepest := -1
	for n := range root.Preorder() {
		e := n.Value()
		s.nodes++
		if e.Dir {
			s.dirs++
		} else {
			s.files++
		}
		if e.Symlink {
			s.symlinks++
		}
		if e.Err != nil {
			s.unreadable++
		}
		if n.IsLeaf() {
			s.leaves++
			if d := n.Depth(); d > deepest {
				deepest = d
				s.deepest = e.Path
			}
		} else {
			s.branches++
		}
		if k := n.CountChildren(); k > s.maxFanout {
			s.maxFanout = k
			s.widest = e.Path
		}
	}
	return s
}

func (s treeStats) print(w io.Writer) {
	printKeyValue(w, "Entries", fmt.Sprintf("%d", s.nodes))
	printKeyValue(w, "Directories", fmt.Sprintf("%d", s.dirs))
	printKeyValue(w, "Files", fmt.Sprintf("%d", s.files))
	if s.symlinks > 0 {
		printKeyValue(w, "Symlinks", fmt.Sprintf("%d", s.symlinks))
	}
	printKeyValue(w, "Leaves", fmt.Sprintf("%d", s.leaves))
	printKeyValue(w, "Branches", fmt.Sprintf("%d", s.branches))
	printKeyValue(w, "Height", fmt.Sprintf("%d", s.height))
	printKeyValue(w, "Deepest", s.deepest)
	printKeyValue(w, "Max fan-out", fmt.Sprintf("%d (%s)", s.maxFanout, s.widest))
	printKeyValue(w, "Size", formatSize(s.size))
	if s.unreadable > 0 {
		printWarning(w, "%d directories could not be read", s.unreadable)
	}
}

// statsCommand creates the "stats" command.
func (c *CLI) statsCommand() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "stats [dir]",
		Short: "Summarize the shape of a directory tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := c.scan(cmd, dirArg(args), &flags)
			if err != nil {
				return err
			}
			collectStats(root).print(cmd.OutOrStdout())
			return nil
		},
	}

	addScanFlags(cmd, &flags)
	return cmd
}
