// Package cli implements the arbor command-line interface.
//
// Every command reads a directory into a [tree.Node] and then prints,
// queries or renders it. Commands share the state on [CLI]: the logger, the
// loaded configuration and the global flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context as well, and library progress is reported
// through observability hooks that log at debug level.
//
// [tree.Node]: github.com/matzehuels/arbor/pkg/tree
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/buildinfo"
	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/config"
	"github.com/matzehuels/arbor/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "arbor"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the configuration loaded for the current command.
func (c *CLI) Config() config.Config { return c.cfg }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Arbor explores directory trees",
		Long:          `Arbor reads a directory into a tree and lets you explore it from the terminal.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.installHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/arbor/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "do not read or write the render cache")

	// Register all subcommands
	root.AddCommand(c.showCommand())
	root.AddCommand(c.walkCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// installHooks routes library events to the logger.
func (c *CLI) installHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetScanHooks(h)
	observability.SetRenderHooks(h)
	observability.SetFilterHooks(h)
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache returns the render cache, or a NullCache when caching is off or
// the cache directory is unusable.
func (c *CLI) newCache() cache.Cache {
	if c.noCache || c.cfg.Cache.Disabled {
		return cache.NewNullCache()
	}
	dir, err := config.CacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir, c.cfg.Cache.TTL.Duration)
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}
