// Package config loads arbor's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/arbor/config.toml, falling back to
// ~/.config/arbor/config.toml. Every field is optional; command line flags
// override whatever the file sets.
//
//	[scan]
//	max_depth = 4
//	hidden = false
//	ignore = [".git", "node_modules", "*.pyc"]
//	concurrency = 8
//
//	[output]
//	ascii = false
//	order = "pre"
//
//	[cache]
//	disabled = false
//	ttl = "168h"
package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

const appName = "arbor"

// Config is the decoded configuration file.
type Config struct {
	Scan   Scan   `toml:"scan"`
	Output Output `toml:"output"`
	Cache  Cache  `toml:"cache"`
}

// Scan holds defaults for reading directories.
type Scan struct {
	MaxDepth    int      `toml:"max_depth"`
	Hidden      bool     `toml:"hidden"`
	Ignore      []string `toml:"ignore"`
	Concurrency int      `toml:"concurrency"`
}

// Output holds defaults for printing trees.
type Output struct {
	ASCII bool   `toml:"ascii"`
	Order string `toml:"order"`
}

// Cache configures the render cache.
type Cache struct {
	Disabled bool     `toml:"disabled"`
	TTL      Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a string ("90m", "24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Scan: Scan{
			Ignore:      []string{".git"},
			Concurrency: 8,
		},
		Output: Output{Order: tree.PreOrder.String()},
		Cache:  Cache{TTL: Duration{7 * 24 * time.Hour}},
	}
}

// Path returns the default configuration file path.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path on top of [Default]. An empty path means the
// default location, where a missing file is not an error; a missing file at
// an explicit path is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open config file %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config file %s", path)
	}
	return cfg, nil
}

// Decode parses TOML from r on top of [Default] and validates the result.
// Unknown keys are rejected so that typos do not go unnoticed.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and patterns.
func (c Config) Validate() error {
	if c.Scan.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scan.max_depth must not be negative")
	}
	if c.Scan.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scan.concurrency must not be negative")
	}
	for _, p := range c.Scan.Ignore {
		if err := errors.ValidateIgnorePattern(p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "scan.ignore")
		}
	}
	if c.Output.Order != "" {
		if _, err := tree.ParseOrder(c.Output.Order); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output.order")
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// CacheDir returns the render cache directory using the XDG convention
// (~/.cache/arbor/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
