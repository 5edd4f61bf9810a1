// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages (the filesystem source, the renderers, the filter engine)
// do not log. They report what they do through the hook interfaces below, and
// the command line decides what to do with the events: the default hooks do
// nothing, and `arbor --verbose` installs hooks that write debug logs.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetScanHooks(&myScanHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scan().OnScanStart(ctx, root)
//	// ... walk the directory ...
//	observability.Scan().OnScanComplete(ctx, root, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ScanHooks receives events from the filesystem source.
type ScanHooks interface {
	OnScanStart(ctx context.Context, root string)
	// OnSubtreeScanned fires once per top-level directory, from the
	// goroutine that scanned it.
	OnSubtreeScanned(ctx context.Context, path string, nodeCount int, duration time.Duration)
	OnScanComplete(ctx context.Context, root string, nodeCount int, duration time.Duration, err error)
}

// RenderHooks receives events from the renderers.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string, nodeCount int)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// FilterHooks receives events from the Lua filter engine.
type FilterHooks interface {
	OnFilterCompile(ctx context.Context, expr string, err error)
	OnFilterError(ctx context.Context, expr string, err error)
}

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnScanStart(context.Context, string)                               {}
func (NoopScanHooks) OnSubtreeScanned(context.Context, string, int, time.Duration)      {}
func (NoopScanHooks) OnScanComplete(context.Context, string, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopFilterHooks is a no-op implementation of FilterHooks.
type NoopFilterHooks struct{}

func (NoopFilterHooks) OnFilterCompile(context.Context, string, error) {}
func (NoopFilterHooks) OnFilterError(context.Context, string, error)   {}

var (
	scanHooks   ScanHooks   = NoopScanHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	filterHooks FilterHooks = NoopFilterHooks{}
	hooksMu     sync.RWMutex
)

// SetScanHooks registers custom scan hooks. Nil is ignored.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// SetRenderHooks registers custom render hooks. Nil is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetFilterHooks registers custom filter hooks. Nil is ignored.
func SetFilterHooks(h FilterHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		filterHooks = h
	}
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Filter returns the registered filter hooks.
func Filter() FilterHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return filterHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scanHooks = NoopScanHooks{}
	renderHooks = NoopRenderHooks{}
	filterHooks = NoopFilterHooks{}
}
