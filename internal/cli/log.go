package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Scanned 4211 entries (132ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}

// logHooks implements the observability hook interfaces on top of a logger.
// Scan and render events go to debug level; filter failures are warnings.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnScanStart(_ context.Context, root string) {
	h.logger.Debug("scan started", "root", root)
}

func (h *logHooks) OnSubtreeScanned(_ context.Context, path string, nodes int, d time.Duration) {
	h.logger.Debug("subtree scanned", "path", path, "nodes", nodes, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnScanComplete(_ context.Context, root string, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("scan failed", "root", root, "err", err)
		return
	}
	h.logger.Debug("scan complete", "root", root, "nodes", nodes, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnRenderStart(_ context.Context, format string, nodes int) {
	h.logger.Debug("render started", "format", format, "nodes", nodes)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("render complete", "format", format, "bytes", size, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnFilterCompile(_ context.Context, expr string, err error) {
	if err != nil {
		h.logger.Debug("filter rejected", "expr", expr, "err", err)
	}
}

func (h *logHooks) OnFilterError(_ context.Context, expr string, err error) {
	h.logger.Warn("filter failed", "expr", expr, "err", err)
}
