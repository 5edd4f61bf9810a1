package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Scanned 7 entries")

	if !strings.Contains(buf.String(), "Scanned 7 entries (") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		level log.Level
		fire  func(h *logHooks)
		want  string
	}{
		{"scan start", log.DebugLevel, func(h *logHooks) { h.OnScanStart(ctx, "/src") }, "scan started"},
		{"subtree", log.DebugLevel, func(h *logHooks) { h.OnSubtreeScanned(ctx, "pkg", 12, time.Millisecond) }, "nodes=12"},
		{"scan done", log.DebugLevel, func(h *logHooks) { h.OnScanComplete(ctx, "/src", 40, time.Second, nil) }, "scan complete"},
		{"scan failed", log.DebugLevel, func(h *logHooks) { h.OnScanComplete(ctx, "/src", 0, 0, errors.New("boom")) }, "boom"},
		{"render", log.DebugLevel, func(h *logHooks) { h.OnRenderComplete(ctx, "svg", 2048, time.Second, nil) }, "bytes=2048"},
		{"filter error", log.WarnLevel, func(h *logHooks) { h.OnFilterError(ctx, "size >", errors.New("bad")) }, "filter failed"},
		{"debug hidden at info", log.InfoLevel, func(h *logHooks) { h.OnScanStart(ctx, "/src") }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.fire(&logHooks{logger: newLogger(&buf, tt.level)})
			if tt.want == "" {
				if buf.Len() != 0 {
					t.Errorf("unexpected output %q", buf.String())
				}
				return
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}

func TestVerboseInstallsDebugLogging(t *testing.T) {
	isolate(t)
	dir := fixture(t)

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"-v", "walk", dir})
	if err := root.Execute(); err != nil {
		t.Fatalf("walk: %v", err)
	}
	for _, want := range []string{"scan started", "subtree scanned", "Scanned 7 entries"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("verbose log missing %q:\n%s", want, logs.String())
		}
	}
}
