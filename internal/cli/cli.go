// Package cli implements the lociview command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lociview/lociview/pkg/buildinfo"
	"github.com/lociview/lociview/pkg/cache"
	"github.com/lociview/lociview/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "lociview"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "lociview",
		Short:        "Lociview plots genome tracks and contact matrices",
		Long:         `Lociview composes genome tracks into frames and joint contact views, rendering them as SVG, PNG, or PDF figures from TOML layout files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.plotCommand())
	root.AddCommand(c.jointCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(newCache(noCache), c.Logger)
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return store
}

// cacheDir returns the cache directory using the XDG convention
// (~/.cache/lociview/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// outputPath derives the artifact path for a format from the output
// base (or the layout file name when no base is given).
func outputPath(base, layoutPath, format string) string {
	if base == "" {
		base = strings.TrimSuffix(layoutPath, filepath.Ext(layoutPath))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + "." + format
}
