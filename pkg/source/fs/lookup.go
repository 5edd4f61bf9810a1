package fs

import (
	"fmt"
	"path"
	"strings"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Lookup finds the node for p, a slash-separated path relative to the scan
// root. "." and "" name the root itself.
func Lookup(root *tree.Node[Entry], p string) (*tree.Node[Entry], error) {
	if p == "" || p == "." {
		return root, nil
	}
	if err := errors.ValidatePath(p); err != nil {
		return nil, err
	}

	n := root
	for _, name := range strings.Split(path.Clean(p), "/") {
		var next *tree.Node[Entry]
		for _, c := range n.Children() {
			if c.Value().Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		n = next
	}
	return n, nil
}
