package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"exprnorm/internal/driver"
	"exprnorm/internal/expr"
)

var watchCmd = &cobra.Command{
	Use:   "watch [PATH...]",
	Short: "Re-normalize .xn files whenever they or the metadata change",
	Long: `Watch directories (or single files) and normalize every changed .xn file.
A change to a metadata file reloads the table and renormalizes all inputs.
Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", driver.DefaultDebounce, "quiet period before reacting to changes")
}

func runWatch(cmd *cobra.Command, args []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	cfg, sess, err := openSession(cmd)
	if err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 && cfg.manifest != nil {
		inputs = cfg.manifest.resolve(cfg.manifest.Config.Normalize.Inputs)
	}
	if len(inputs) == 0 {
		inputs = []string{"."}
	}
	metaSet := make(map[string]bool, len(cfg.metaPaths))
	watched := slices.Clone(inputs)
	for _, p := range cfg.metaPaths {
		metaSet[absPath(p)] = true
		// метаданные могут лежать вне входных директорий
		watched = append(watched, filepath.Dir(p))
	}
	slices.Sort(watched)
	watched = slices.Compact(watched)

	w, err := driver.NewWatcher(watched)
	if err != nil {
		return err
	}
	defer w.Close() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws := &watchState{cfg: cfg, sess: sess, inputs: inputs, metaSet: metaSet, quiet: quiet(cmd)}
	ws.renormalizeAll(ctx)
	if !ws.quiet {
		fmt.Fprintf(os.Stderr, "watching %d path(s)\n", len(watched))
	}
	return w.Run(ctx, debounce, ws.onChange)
}

type watchState struct {
	cfg     *sessionConfig
	sess    *driver.Session
	inputs  []string
	metaSet map[string]bool
	quiet   bool
}

func (ws *watchState) onChange(ctx context.Context, changed []string) {
	reload := false
	var exprFiles []string
	for _, p := range changed {
		if ws.metaSet[absPath(p)] || filepath.Base(p) == manifestName {
			reload = true
			continue
		}
		if filepath.Ext(p) == driver.ExprExt {
			if _, err := os.Stat(p); err == nil {
				exprFiles = append(exprFiles, p)
			}
		}
	}
	if reload {
		sess, err := ws.cfg.open(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "metadata reload failed: %v\n", err)
			return
		}
		ws.sess = sess
		if !ws.quiet {
			fmt.Fprintln(os.Stderr, "metadata reloaded")
		}
		ws.renormalizeAll(ctx)
		return
	}
	ws.normalize(ctx, exprFiles)
}

func (ws *watchState) renormalizeAll(ctx context.Context) {
	files, err := collectExprFiles(ws.inputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	ws.normalize(ctx, files)
}

func (ws *watchState) normalize(ctx context.Context, files []string) {
	if len(files) == 0 {
		return
	}
	started := time.Now()
	results, err := ws.sess.NormalizeFiles(ctx, ".", files, 0, nil)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return
	}
	printer := expr.NewPrinter(ws.sess.Table().Types())
	for _, res := range results {
		if res == nil {
			continue
		}
		if !ws.quiet {
			fmt.Fprintf(os.Stdout, "== %s ==\n", res.Path)
			if err := printEntries(os.Stdout, printer, res, formatPretty); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		}
		if err := printDiagnostics(os.Stderr, res, ws.cfg.opts.MaxDiagnostics); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	if !ws.quiet {
		fmt.Fprintf(os.Stderr, "normalized %d file(s) in %s\n", len(results), time.Since(started).Round(time.Millisecond))
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
