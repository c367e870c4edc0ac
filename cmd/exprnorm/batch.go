package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"exprnorm/internal/driver"
	"exprnorm/internal/expr"
)

var batchCmd = &cobra.Command{
	Use:   "batch [PATH...]",
	Short: "Normalize every .xn file under the given paths in parallel",
	Long: `Normalize every .xn file under the given directories (or the listed files).
Without arguments the [normalize].inputs of exprnorm.toml are used, falling
back to the current directory.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntP("jobs", "j", 0, "max parallel workers (0=auto)")
	batchCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	batchCmd.Flags().String("format", "summary", "output format (summary|json)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	progress, err := parseProgressUI(uiFlag)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "summary" && format != "json" {
		return fmt.Errorf("unknown format %q (expected summary|json)", format)
	}

	cfg, sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer printTimings(sess)

	baseDir, inputs := ".", args
	if len(inputs) == 0 && cfg.manifest != nil {
		baseDir = cfg.manifest.Root
		inputs = cfg.manifest.resolve(cfg.manifest.Config.Normalize.Inputs)
		if !cmd.Flags().Changed("jobs") {
			jobs = cfg.manifest.Config.Normalize.Jobs
		}
	}
	if len(inputs) == 0 {
		inputs = []string{"."}
	}
	files, err := collectExprFiles(inputs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !quiet(cmd) {
			fmt.Fprintln(os.Stderr, "no .xn files found")
		}
		return nil
	}

	var results []*driver.FileResult
	if format == "summary" && progress.wanted(os.Stdout) && !quiet(cmd) {
		results, err = runBatchWithUI(cmd.Context(), "exprnorm batch", sess, baseDir, files, jobs)
	} else {
		results, err = sess.NormalizeFiles(cmd.Context(), baseDir, files, jobs, nil)
	}
	if err != nil {
		return err
	}

	if format == "json" {
		printer := expr.NewPrinter(sess.Table().Types())
		out := make([]fileJSON, 0, len(results))
		failed := false
		for _, res := range results {
			if res == nil {
				continue
			}
			out = append(out, buildFileJSON(printer, res, cfg.opts.MaxDiagnostics))
			failed = failed || res.HasErrors()
		}
		if err := writeJSON(os.Stdout, out); err != nil {
			return err
		}
		if failed {
			return errDiagnostics
		}
		return nil
	}
	return printBatchSummary(cmd, results, cfg.opts.MaxDiagnostics)
}

// collectExprFiles expands directories into their .xn files; plain files pass through.
func collectExprFiles(inputs []string) ([]string, error) {
	var files []string
	for _, in := range inputs {
		st, err := os.Stat(in)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			files = append(files, filepath.Clean(in))
			continue
		}
		found, err := driver.ListExprFiles(in)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func printBatchSummary(cmd *cobra.Command, results []*driver.FileResult, maxDiag int) error {
	var total driver.Stats
	failedFiles := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		total.Add(res.Stats)
		if res.HasErrors() {
			failedFiles++
		}
		if err := printDiagnostics(os.Stderr, res, maxDiag); err != nil {
			return err
		}
		if quiet(cmd) {
			continue
		}
		mark := color.GreenString("ok")
		if res.HasErrors() {
			mark = color.RedString("error")
		}
		fmt.Fprintf(os.Stdout, "%-6s %s: %d stmt(s), %d rewritten, %d rejected\n",
			mark, res.Path, res.Stats.Statements, res.Stats.Rewritten, res.Stats.Rejected)
	}
	if !quiet(cmd) {
		fmt.Fprintf(os.Stdout, "%d file(s), %d stmt(s), %d rewritten, %d accessor call(s) replaced, %d rejected\n",
			len(results), total.Statements, total.Rewritten, total.Accessors, total.Rejected)
	}
	if failedFiles > 0 {
		return errDiagnostics
	}
	return nil
}
