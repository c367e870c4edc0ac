package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"exprnorm/internal/meta"
)

var metaCmd = &cobra.Command{
	Use:   "meta [FILE...]",
	Short: "List the types and members of metadata files",
	Long: `Load metadata files (or --meta / exprnorm.toml when none are given) and list
every declared type with its properties, indexers and methods.`,
	RunE: runMeta,
}

func init() {
	metaCmd.Flags().Bool("clear-cache", false, "drop the on-disk metadata cache and exit")
}

func runMeta(cmd *cobra.Command, args []string) error {
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if clearCache {
		cache, err := meta.OpenCache(cacheApp)
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear metadata cache: %w", err)
		}
		if !quiet(cmd) {
			fmt.Fprintln(os.Stdout, "metadata cache cleared")
		}
		return nil
	}

	if len(args) > 0 {
		if err := cmd.Root().PersistentFlags().Set("meta", strings.Join(args, ",")); err != nil {
			return err
		}
	}
	_, sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer printTimings(sess)
	return meta.Describe(os.Stdout, sess.Table())
}
