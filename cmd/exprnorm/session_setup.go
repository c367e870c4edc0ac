package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"exprnorm/internal/driver"
	"exprnorm/internal/meta"
	"exprnorm/internal/observ"
)

const cacheApp = "exprnorm"

// sessionConfig is what the persistent flags plus exprnorm.toml resolve to.
type sessionConfig struct {
	metaPaths []string
	manifest  *projectManifest
	noCache   bool
	opts      driver.Options
}

func readSessionConfig(cmd *cobra.Command) (*sessionConfig, error) {
	pf := cmd.Root().PersistentFlags()
	metaPaths, err := pf.GetStringSlice("meta")
	if err != nil {
		return nil, fmt.Errorf("failed to get meta flag: %w", err)
	}
	noCache, err := pf.GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	maxDiag, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	rawText, err := pf.GetBool("raw-text")
	if err != nil {
		return nil, fmt.Errorf("failed to get raw-text flag: %w", err)
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg := &sessionConfig{
		metaPaths: metaPaths,
		noCache:   noCache,
		opts:      driver.Options{MaxDiagnostics: maxDiag, KeepRawText: rawText},
	}
	if timings {
		cfg.opts.Timer = observ.NewTimer()
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return nil, err
	}
	cfg.manifest = manifest
	if len(cfg.metaPaths) == 0 && manifest != nil {
		cfg.metaPaths = manifest.resolve(manifest.Config.Metadata.Files)
	}
	if len(cfg.metaPaths) == 0 {
		return nil, fmt.Errorf("%s", noMetadataMessage)
	}
	return cfg, nil
}

// openCache returns nil when caching is disabled or unavailable.
func (c *sessionConfig) openCache() *meta.Cache {
	if c.noCache {
		return nil
	}
	cache, err := meta.OpenCache(cacheApp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: metadata cache disabled: %v\n", err)
		return nil
	}
	return cache
}

func (c *sessionConfig) open(ctx context.Context) (*driver.Session, error) {
	return driver.OpenSession(ctx, c.metaPaths, c.openCache(), c.opts)
}

func openSession(cmd *cobra.Command) (*sessionConfig, *driver.Session, error) {
	cfg, err := readSessionConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	sess, err := cfg.open(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return cfg, sess, nil
}

// printTimings writes the phase table to stderr when --timings is on.
func printTimings(sess *driver.Session) {
	if t := sess.Timer(); t != nil {
		fmt.Fprint(os.Stderr, t.Summary())
	}
}
