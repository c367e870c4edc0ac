package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"exprnorm/internal/driver"
	"exprnorm/internal/expr"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize FILE...",
	Short: "Normalize accessor calls in expression files",
	Long: `Parse each .xn file against the metadata table and print every statement
with get_X/set_X/get_Item/set_Item calls rewritten into member access,
index and assignment nodes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().String("format", "pretty", "output format (pretty|tree|json)")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatFlag)
	if err != nil {
		return err
	}
	cfg, sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer printTimings(sess)

	printer := expr.NewPrinter(sess.Table().Types())
	results := make([]*driver.FileResult, 0, len(args))
	for _, path := range args {
		res, err := sess.NormalizeFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	failed := false
	if format == formatJSON {
		files := make([]fileJSON, 0, len(results))
		for _, res := range results {
			files = append(files, buildFileJSON(printer, res, cfg.opts.MaxDiagnostics))
			failed = failed || res.HasErrors()
		}
		if err := writeJSON(os.Stdout, files); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if len(results) > 1 && !quiet(cmd) {
				fmt.Fprintf(os.Stdout, "== %s ==\n", res.Path)
			}
			if err := printEntries(os.Stdout, printer, res, format); err != nil {
				return err
			}
			if err := printDiagnostics(os.Stderr, res, cfg.opts.MaxDiagnostics); err != nil {
				return err
			}
			failed = failed || res.HasErrors()
		}
	}
	if failed {
		return errDiagnostics
	}
	return nil
}
