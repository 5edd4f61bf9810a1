package cli

import (
	"fmt"
	"strings"

	"github.com/matzehuels/arbor/pkg/source/fs"
	"github.com/matzehuels/arbor/pkg/tree"
)

// formatSize renders a byte count with a binary unit.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// formatPath joins the paths of nodes with arrows.
func formatPath(nodes []*tree.Node[fs.Entry]) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.Value().Path
	}
	return strings.Join(parts, " "+iconArrow+" ")
}
