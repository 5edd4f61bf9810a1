// Package fs reads a directory hierarchy into a tree of [Entry] values.
//
// The scan root becomes the root node; every directory entry becomes a child
// of its directory's node, directories first and then files, each group in
// name order. Directory sizes are the total size of the files below them.
//
// Top-level subdirectories are scanned concurrently. Each goroutine builds a
// detached subtree that no other goroutine can see, and the finished subtrees
// are attached to the root one after another, so the tree package's
// single-writer rule holds without locks.
package fs

import (
	"errors"
	iofs "io/fs"
	"runtime"
	"time"
)

const (
	DefaultMaxNodes = 1_000_000 // Default cap on scanned entries
)

var (
	// ErrTooManyEntries is returned when a scan exceeds Options.MaxNodes.
	ErrTooManyEntries = errors.New("too many entries")

	// ErrNotFound is returned by [Lookup] for paths that are not in the tree.
	ErrNotFound = errors.New("no such entry")
)

// Entry describes one file or directory.
type Entry struct {
	Name    string        // Base name; the scan root keeps the name it was given
	Path    string        // Slash-separated path relative to the scan root ("." for the root)
	Dir     bool          // Directory (or a followed symlink to one)
	Symlink bool          // The entry itself is a symbolic link
	Size    int64         // File size, or total size of files below a directory
	Mode    iofs.FileMode // Permission and type bits
	ModTime time.Time     // Last modification
	Err     error         // Set when a directory could not be read; it then has no children
}

// String returns the name, with a trailing slash for directories.
func (e Entry) String() string {
	if e.Dir && e.Path != "." {
		return e.Name + "/"
	}
	return e.Name
}

// Depth returns the number of path elements below the scan root.
func (e Entry) Depth() int {
	if e.Path == "." || e.Path == "" {
		return 0
	}
	d := 1
	for i := 0; i < len(e.Path); i++ {
		if e.Path[i] == '/' {
			d++
		}
	}
	return d
}

// Options configures a scan.
type Options struct {
	MaxDepth       int      // Deepest level to include, 0 for unlimited (top-level entries are depth 1)
	MaxNodes       int      // Maximum entries to read (default: 1,000,000)
	Hidden         bool     // Include names starting with "."
	Ignore         []string // filepath.Match patterns matched against base names
	FollowSymlinks bool     // Descend into symlinked directories
	Concurrency    int      // Parallel top-level scans (default: GOMAXPROCS)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	return opts
}
