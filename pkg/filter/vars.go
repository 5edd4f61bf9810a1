package filter

import (
	"path"

	"github.com/matzehuels/arbor/pkg/source/fs"
	"github.com/matzehuels/arbor/pkg/tree"
)

// EntryVars exposes a scanned node to a filter:
//
//	name, path, ext    strings
//	dir, file, leaf    booleans
//	symlink            boolean
//	size               bytes (total for directories)
//	depth              path elements below the scan root (root is 0)
//	level              depth + 1
//	children           number of direct children
//	mtime              modification time, Unix seconds
func EntryVars(n *tree.Node[fs.Entry]) map[string]any {
	e := n.Value()
	return map[string]any{
		"name":     e.Name,
		"path":     e.Path,
		"ext":      path.Ext(e.Name),
		"dir":      e.Dir,
		"file":     !e.Dir,
		"leaf":     n.IsLeaf(),
		"symlink":  e.Symlink,
		"size":     e.Size,
		"depth":    e.Depth(),
		"level":    e.Depth() + 1,
		"children": n.CountChildren(),
		"mtime":    e.ModTime,
	}
}
