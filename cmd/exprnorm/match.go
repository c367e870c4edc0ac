package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"exprnorm/internal/expr"
)

var matchCmd = &cobra.Command{
	Use:   "match EXPECTED OBSERVED",
	Short: "Check that two expressions are equal after normalization",
	Long: `Normalize both expressions over the same parameters and compare them
structurally. Exit status is 0 when they match and 1 otherwise.

  exprnorm match --param "x: Widget" 'x.Name' 'x.get_Name()'`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringArrayP("param", "p", nil, "parameter declaration such as \"x: Widget\" (repeatable)")
}

func runMatch(cmd *cobra.Command, args []string) error {
	params, err := cmd.Flags().GetStringArray("param")
	if err != nil {
		return fmt.Errorf("failed to get param flag: %w", err)
	}
	cfg, sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer printTimings(sess)

	m, err := sess.Match(cmd.Context(), params, args[0], args[1])
	if err != nil {
		return err
	}
	if m.File.HasErrors() {
		if err := printDiagnostics(os.Stderr, m.File, cfg.opts.MaxDiagnostics); err != nil {
			return err
		}
		return errDiagnostics
	}

	printer := expr.NewPrinter(sess.Table().Types())
	if !quiet(cmd) {
		fmt.Fprintf(os.Stdout, "expected: %s\nobserved: %s\n", printer.Format(m.Expected), printer.Format(m.Observed))
	}
	if !m.Equal {
		fmt.Fprintln(os.Stdout, color.RedString("no match"))
		return errDiagnostics
	}
	if !quiet(cmd) {
		fmt.Fprintln(os.Stdout, color.GreenString("match"))
	}
	return nil
}
