package filter

import (
	"context"
	"errors"
	"testing"
	"time"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/source/fs"
	"github.com/matzehuels/arbor/pkg/tree"
)

func TestMatch(t *testing.T) {
	vars := map[string]any{
		"name":  "main.go",
		"dir":   false,
		"size":  int64(2048),
		"depth": 2,
		"tags":  []string{"go", "src"},
	}

	tests := []struct {
		expr string
		want bool
	}{
		{"true", true},
		{"dir", false},
		{"not dir and size > 1024", true},
		{"depth < 2", false},
		{`name:match("%.go$") ~= nil`, true},
		{`string.upper(name) == "MAIN.GO"`, true},
		{"math.floor(size / 1000) == 2", true},
		{"#tags == 2 and tags[1] == 'go'", true},
		{"missing", false},
		{"0", true}, // Lua: every number is truthy
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			p, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			defer p.Close()
			got, err := p.Match(context.Background(), vars)
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, expr := range []string{"", "size >", "end", "dir and (", "x = 1"} {
		if _, err := Compile(expr); !arborerrors.Is(err, arborerrors.ErrCodeInvalidFilter) {
			t.Errorf("Compile(%q) = %v, want INVALID_FILTER", expr, err)
		}
	}
}

func TestSandbox(t *testing.T) {
	for _, expr := range []string{
		`dofile("/etc/passwd")`,
		`loadstring("return 1")()`,
		`load("return 1")()`,
		`io.open("/etc/passwd")`,
		`os.exit(1)`,
		`require("os")`,
	} {
		p := MustCompile(expr)
		_, err := p.Match(context.Background(), nil)
		p.Close()
		if !arborerrors.Is(err, arborerrors.ErrCodeInvalidFilter) {
			t.Errorf("%s: error = %v, want INVALID_FILTER", expr, err)
		}
	}
}

func TestVariablesDoNotLeak(t *testing.T) {
	p := MustCompile("secret ~= nil")
	defer p.Close()

	if ok, _ := p.Match(context.Background(), map[string]any{"secret": 1}); !ok {
		t.Fatal("first call should see secret")
	}
	if ok, _ := p.Match(context.Background(), nil); ok {
		t.Error("second call should not see the previous variables")
	}
}

func TestMatchTimeout(t *testing.T) {
	p := MustCompile("(function() while true do end end)()")
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := p.Match(ctx, nil); err == nil {
		t.Fatal("runaway loop should be stopped by the context")
	}
}

func TestClosed(t *testing.T) {
	p := MustCompile("true")
	p.Close()
	p.Close()
	if _, err := p.Match(context.Background(), nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Match after Close = %v, want ErrClosed", err)
	}
}

func TestEntryVars(t *testing.T) {
	file := tree.Of(fs.Entry{Name: "go.mod", Path: "src/go.mod", Size: 120})
	dir := tree.Of(fs.Entry{Name: "src", Path: "src", Dir: true, Size: 120}, file)
	_ = tree.Of(fs.Entry{Name: "repo", Path: ".", Dir: true}, dir)

	p := MustCompile(`file and ext == ".mod" and depth == 2 and level == 3 and leaf`)
	defer p.Close()
	if ok, err := p.Match(context.Background(), EntryVars(file)); err != nil || !ok {
		t.Errorf("file vars: %v, %v", ok, err)
	}

	q := MustCompile(`dir and children == 1 and size == 120 and not leaf`)
	defer q.Close()
	if ok, err := q.Match(context.Background(), EntryVars(dir)); err != nil || !ok {
		t.Errorf("dir vars: %v, %v", ok, err)
	}
}
