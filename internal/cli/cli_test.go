package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/observability"
)

// fixture creates
//
//	.hidden/z
//	a/b/y.txt
//	a/x.txt
//	c/
//	top.txt
func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, d := range []string{".hidden", "a/b", "c"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for name, content := range map[string]string{
		".hidden/z": "z",
		"a/b/y.txt": "yyyy",
		"a/x.txt":   "xx",
		"top.txt":   "top",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// isolate points the config and cache directories at temporary locations.
func isolate(t *testing.T) (configHome, cacheHome string) {
	t.Helper()
	configHome, cacheHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Cleanup(observability.Reset)
	return configHome, cacheHome
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, stdout, stderr bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestShow(t *testing.T) {
	isolate(t)
	dir := fixture(t)

	out, err := runCLI(t, "show", "--plain", dir)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	got := lines(out)[1:]
	want := []string{
		"├── a/",
		"│   ├── b/",
		"│   │   └── y.txt",
		"│   └── x.txt",
		"├── c/",
		"└── top.txt",
	}
	if !slices.Equal(got, want) {
		t.Errorf("show output:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestShowFlags(t *testing.T) {
	isolate(t)
	dir := fixture(t)

	out, err := runCLI(t, "show", "--plain", "--ascii", "--hidden", "--depth", "1", dir)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"|-- .hidden/", "|-- a/ [+3]", "`-- top.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "y.txt") {
		t.Errorf("--depth 1 should hide nested entries:\n%s", out)
	}
}

func TestWalkOrders(t *testing.T) {
	isolate(t)
	dir := fixture(t)

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"walk", dir}, []string{".", "a", "a/b", "a/b/y.txt", "a/x.txt", "c", "top.txt"}},
		{[]string{"walk", "--order", "dfs", dir}, []string{".", "a", "a/b", "a/b/y.txt", "a/x.txt", "c", "top.txt"}},
		{[]string{"walk", "--order", "post", dir}, []string{"a/b/y.txt", "a/b", "a/x.txt", "a", "c", "top.txt", "."}},
		{[]string{"walk", "--order", "level", dir}, []string{".", "a", "c", "top.txt", "a/b", "a/x.txt", "a/b/y.txt"}},
		{[]string{"walk", "--order", "in", dir}, []string{"a/b", "a/b/y.txt", "a", "a/x.txt", ".", "c", "top.txt"}},
		{[]string{"walk", "--where", "file", dir}, []string{"a/b/y.txt", "a/x.txt", "top.txt"}},
		{[]string{"walk", "--where", `ext == ".txt" and size > 2`, dir}, []string{"a/b/y.txt", "top.txt"}},
		{[]string{"walk", "--prune", `name == "a"`, dir}, []string{".", "c", "top.txt"}},
		{[]string{"walk", "--limit", "2", dir}, []string{".", "a"}},
		{[]string{"walk", "--order", "dfs", "--limit", "3", dir}, []string{".", "a", "a/b"}},
		{[]string{"walk", "--order", "level", "--limit", "3", dir}, []string{".", "a", "c"}},
		{[]string{"walk", "--order", "post", "--limit", "2", dir}, []string{"a/b/y.txt", "a/b"}},
		{[]string{"walk", "--where", "file", "--limit", "1", dir}, []string{"a/b/y.txt"}},
		{[]string{"walk", "--max-depth", "1", dir}, []string{".", "a", "c", "top.txt"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args[:len(tt.args)-1], " "), func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("walk: %v", err)
			}
			if got := lines(out); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalkNullSeparated(t *testing.T) {
	isolate(t)
	dir := fixture(t)

	out, err := runCLI(t, "walk", "-0", "--where", "leaf and file", dir)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if want := "a/b/y.txt\x00a/x.txt\x00top.txt\x00"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestWalkErrors(t *testing.T) {
	isolate(t)
	dir := fixture(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown order", []string{"walk", "--order", "sideways", dir}, errors.ErrCodeInvalidInput},
		{"prune needs preorder", []string{"walk", "--order", "post", "--prune", "dir", dir}, errors.ErrCodeInvalidInput},
		{"bad filter", []string{"walk", "--where", "size >", dir}, errors.ErrCodeInvalidFilter},
		{"runtime filter error", []string{"walk", "--where", "name.x.y", dir}, errors.ErrCodeInvalidFilter},
		{"missing dir", []string{"walk", filepath.Join(dir, "nope")}, errors.ErrCodeFileNotFound},
		{"bad ignore", []string{"walk", "--ignore", "a/b", dir}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func parseKeyValues(out string) map[string]string {
	kv := make(map[string]string)
	for _, line := range lines(out) {
		if len(line) < 12 {
			continue
		}
		kv[strings.TrimSpace(line[:12])] = strings.TrimSpace(line[12:])
	}
	return kv
}

func TestStats(t *testing.T) {
	isolate(t)
	dir := fixture(t)

	out, err := runCLI(t, "stats", dir)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	kv := parseKeyValues(out)
	want := map[string]string{
		"Entries":     "7",
		"Directories": "4",
		"Files":       "3",
		"Leaves":      "4",
		"Branches":    "3",
		"Height":      "3",
		"Deepest":     "a/b/y.txt",
		"Max fan-out": "3 (.)",
		"Size":        "9 B",
	}
	for k, v := range want {
		if kv[k] != v {
			t.Errorf("%s = %q, want %q", k, kv[k], v)
		}
	}
}

func TestQuery(t *testing.T) {
	isolate(t)
	dir := fixture(t)

	out, err := runCLI(t, "query", dir, "a/b/y.txt", "top.txt")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	kv := parseKeyValues(out)
	if kv["Ancestor"] != "." || kv["Distance"] != "4" {
		t.Errorf("query output:\n%s", out)
	}
	if want := "a/b/y.txt → a/b → a → . → top.txt"; kv["Path"] != want {
		t.Errorf("Path = %q, want %q", kv["Path"], want)
	}

	out, err = runCLI(t, "query", dir, "a", "a/b/y.txt")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if kv := parseKeyValues(out); kv["Ancestor"] != "a" || kv["Distance"] != "2" {
		t.Errorf("query output:\n%s", out)
	}
	if !strings.Contains(out, "a contains a/b/y.txt") {
		t.Errorf("containment not reported:\n%s", out)
	}
}

func TestQueryErrors(t *testing.T) {
	isolate(t)
	dir := fixture(t)

	if _, err := runCLI(t, "query", dir, "a", "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing entry: %v, want NOT_FOUND", err)
	}
	if _, err := runCLI(t, "query", dir, "../etc", "a"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("escaping path: %v, want INVALID_PATH", err)
	}
	if _, err := runCLI(t, "query", dir, "a"); err == nil {
		t.Error("query with two arguments should fail")
	}
}

func TestRenderDOT(t *testing.T) {
	isolate(t)
	dir := fixture(t)

	out, err := runCLI(t, "render", dir)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"digraph G {", `label="y.txt"`, `label="a/"`, "n0 -> n1;"} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "render", "--format", "dot", "--lr", "--highlight", "a/x.txt,top.txt", dir)
	if err != nil {
		t.Fatalf("render --highlight: %v", err)
	}
	if !strings.Contains(out, "rankdir=LR;") || strings.Count(out, "penwidth=2.5") != 7 {
		// four nodes and three edges on the path a/x.txt, a, ., top.txt
		t.Errorf("highlighted DOT:\n%s", out)
	}
}

func TestRenderToFile(t *testing.T) {
	isolate(t)
	dir := fixture(t)
	out := filepath.Join(t.TempDir(), "tree.gv")

	if _, err := runCLI(t, "render", "-o", out, dir); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil || !bytes.HasPrefix(data, []byte("digraph G {")) {
		t.Errorf("output file = %.40q, %v", data, err)
	}
}

func TestRenderErrors(t *testing.T) {
	isolate(t)
	dir := fixture(t)

	if _, err := runCLI(t, "render", "--format", "gif", dir); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif: %v, want INVALID_FORMAT", err)
	}
	if _, err := runCLI(t, "render", "--highlight", "a", dir); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("one highlight path: %v, want INVALID_INPUT", err)
	}
	if _, err := runCLI(t, "render", "--highlight", "a,nope", dir); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown highlight path: %v, want NOT_FOUND", err)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		format, output string
		want           string
		wantErr        bool
	}{
		{"", "", "dot", false},
		{"", "tree.svg", "svg", false},
		{"", "tree.PNG", "png", false},
		{"", "tree.gv", "dot", false},
		{"svg", "tree.png", "svg", false},
		{"", "tree.pdf", "", true},
		{"jpeg", "", "", true},
	}
	for _, tt := range tests {
		got, err := resolveFormat(tt.format, tt.output)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("resolveFormat(%q, %q) = %q, %v", tt.format, tt.output, got, err)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	configHome, _ := isolate(t)

	out, err := runCLI(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"[scan]", "concurrency = 8", `order = "pre"`} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if want := filepath.Join(configHome, "arbor", "config.toml"); strings.TrimSpace(out) != want {
		t.Errorf("config path = %q, want %q", out, want)
	}
}

func TestConfigFileAppliesToCommands(t *testing.T) {
	configHome, _ := isolate(t)
	dir := fixture(t)
	path := filepath.Join(configHome, "arbor", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := "[scan]\nhidden = true\nignore = [\"b\"]\n\n[output]\norder = \"level\"\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "walk", dir)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{".", ".hidden", "a", "c", "top.txt", ".hidden/z", "a/x.txt"}
	if got := lines(out); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// Flags win over the file.
	out, err = runCLI(t, "walk", "--hidden=false", "--order", "pre", dir)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if got := lines(out); !slices.Equal(got, []string{".", "a", "a/x.txt", "c", "top.txt"}) {
		t.Errorf("flags did not override config: %v", got)
	}
}

func TestConfigErrors(t *testing.T) {
	configHome, _ := isolate(t)

	missing := filepath.Join(configHome, "missing.toml")
	if _, err := runCLI(t, "--config", missing, "config"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing --config: %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(configHome, "bad.toml")
	if err := os.WriteFile(bad, []byte("[scan]\ndepth = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "--config", bad, "config"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown key: %v, want INVALID_CONFIG", err)
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := runCLI(t, "completion", shell)
		if err != nil || !strings.Contains(out, "arbor") {
			t.Errorf("completion %s: %v (%d bytes)", shell, err, len(out))
		}
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}
