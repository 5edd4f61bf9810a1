package fs

import (
	"context"
	stderrors "errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Scan reads the hierarchy rooted at root. A root that is not a directory
// yields a single-node tree. Unreadable subdirectories do not fail the scan;
// their Entry.Err is set instead. Cancelling ctx aborts the scan.
func Scan(ctx context.Context, root string, opts Options) (*tree.Node[Entry], error) {
	opts = opts.WithDefaults()
	for _, p := range opts.Ignore {
		if err := errors.ValidateIgnorePattern(p); err != nil {
			return nil, err
		}
	}

	hooks := observability.Scan()
	hooks.OnScanStart(ctx, root)
	start := time.Now()

	s := &scanner{ctx: ctx, opts: opts, hooks: hooks}
	n, err := s.run(root)
	count := int(s.count.Load())
	hooks.OnScanComplete(ctx, root, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return n, nil
}

type scanner struct {
	ctx   context.Context
	opts  Options
	hooks observability.ScanHooks
	count atomic.Int64
}

func (s *scanner) run(root string) (*tree.Node[Entry], error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot scan %s", root)
	}
	s.count.Add(1)
	rootEntry := entryFor(info, filepath.Clean(root), ".")
	if !rootEntry.Dir {
		return tree.Of(rootEntry), nil
	}

	children, err := s.readDir(root, ".")
	if stderrors.Is(err, ErrTooManyEntries) {
		return nil, err
	}
	if err != nil {
		rootEntry.Err = err
		return tree.Of(rootEntry), nil
	}

	subtrees := make([]*tree.Node[Entry], len(children))
	g, ctx := errgroup.WithContext(s.ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, c := range children {
		if !s.descend(c) || loops(root, c) {
			subtrees[i] = tree.Of(c.entry)
			continue
		}
		g.Go(func() error {
			began := time.Now()
			n, err := s.subtree(ctx, c)
			if err != nil {
				return err
			}
			subtrees[i] = n
			s.hooks.OnSubtreeScanned(ctx, c.entry.Path, n.CountDescendants()+1, time.Since(began))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Serial attachment: the subtrees become visible only now.
	rootNode := tree.Of(rootEntry)
	if err := rootNode.AddChildren(subtrees...); err != nil {
		return nil, err
	}
	sumSizes(rootNode)
	return rootNode, nil
}

// child is a directory entry waiting to be placed in the tree.
type child struct {
	abs   string
	entry Entry
}

// subtree scans below c iteratively. Only the calling goroutine touches the
// nodes it creates.
func (s *scanner) subtree(ctx context.Context, c child) (*tree.Node[Entry], error) {
	type frame struct {
		abs  string
		node *tree.Node[Entry]
	}
	top := tree.Of(c.entry)
	stack := []frame{{c.abs, top}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		e := f.node.Value()
		kids, err := s.readDir(f.abs, e.Path)
		if err != nil {
			if stderrors.Is(err, ErrTooManyEntries) {
				return nil, err
			}
			e.Err = err
			f.node.SetIdentity(e)
			continue
		}
		nodes := make([]*tree.Node[Entry], len(kids))
		for i, k := range kids {
			nodes[i] = tree.Of(k.entry)
			if s.descend(k) && !loops(f.abs, k) {
				stack = append(stack, frame{k.abs, nodes[i]})
			}
		}
		if err := f.node.AddChildren(nodes...); err != nil {
			return nil, err
		}
	}
	return top, nil
}

// readDir lists dir, applying the hidden and ignore filters, and returns the
// kept entries directories first, then by name.
func (s *scanner) readDir(dir, rel string) ([]child, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	out := make([]child, 0, len(des))
	for _, de := range des {
		name := de.Name()
		if !s.opts.Hidden && strings.HasPrefix(name, ".") {
			continue
		}
		if s.ignored(name) {
			continue
		}
		abs := filepath.Join(dir, name)
		info, err := de.Info()
		if err != nil {
			continue
		}
		e := entryFor(info, name, path.Join(rel, name))
		if e.Symlink && s.opts.FollowSymlinks {
			if target, err := os.Stat(abs); err == nil && target.IsDir() {
				e.Dir = true
			}
		}
		out = append(out, child{abs: abs, entry: e})
	}

	if n := s.count.Add(int64(len(out))); n > int64(s.opts.MaxNodes) {
		return nil, fmt.Errorf("%w: more than %d", ErrTooManyEntries, s.opts.MaxNodes)
	}

	slices.SortFunc(out, func(a, b child) int {
		if a.entry.Dir != b.entry.Dir {
			if a.entry.Dir {
				return -1
			}
			return 1
		}
		return strings.Compare(a.entry.Name, b.entry.Name)
	})
	return out, nil
}

func (s *scanner) ignored(name string) bool {
	for _, p := range s.opts.Ignore {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

// descend reports whether c's contents should be read.
func (s *scanner) descend(c child) bool {
	if !c.entry.Dir {
		return false
	}
	if c.entry.Symlink && !s.opts.FollowSymlinks {
		return false
	}
	return s.opts.MaxDepth == 0 || c.entry.Depth() < s.opts.MaxDepth
}

// loops reports whether following the symlink c from parent would re-enter
// one of its own ancestors.
func loops(parent string, c child) bool {
	if !c.entry.Symlink {
		return false
	}
	target, err := filepath.EvalSymlinks(c.abs)
	if err != nil {
		return true
	}
	here, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return true
	}
	return here == target || strings.HasPrefix(here, target+string(filepath.Separator))
}

func entryFor(info iofs.FileInfo, name, rel string) Entry {
	e := Entry{
		Name:    name,
		Path:    rel,
		Dir:     info.IsDir(),
		Symlink: info.Mode()&iofs.ModeSymlink != 0,
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
	}
	if !e.Dir {
		e.Size = info.Size()
	}
	return e
}

// sumSizes sets each directory's size to the total of the files below it.
func sumSizes(root *tree.Node[Entry]) {
	for n := range root.Postorder() {
		e := n.Value()
		if !e.Dir {
			continue
		}
		var total int64
		for _, c := range n.Children() {
			total += c.Value().Size
		}
		e.Size = total
		n.SetIdentity(e)
	}
}
