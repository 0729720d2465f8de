package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fstune/fstune/bench"
)

var allTestsYes bool

// allTestsCmd runs the full benchmark matrix. Each cycle reformats the
// device, so the whole run is destructive.
var allTestsCmd = &cobra.Command{
	Use:   "all-tests",
	Short: "Run the full filesystem/mount-option benchmark matrix",
	Long: `Runs every (filesystem, mount options) combination in the test matrix:
each cycle formats the device, mounts it, measures direct write, buffered
write and read throughput, and appends the result to the store. The store is
truncated at the start of the run.

All data on the device is destroyed. Interrupting the run leaves the device
in whatever formatted/mounted state the current cycle reached; recovery is
manual.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		color.Red("This will destroy all data on %s (%d configurations).", cfg.Device, len(cfg.Matrix))
		if !allTestsYes && !confirm() {
			color.Yellow("aborted")
			return nil
		}

		ops := bench.NewExecStorageOps()
		store := bench.NewStore(cfg.ResultsPath)
		runner := bench.NewRunner(cfg, ops)
		controller := bench.NewController(cfg, ops, runner, store)

		results, err := controller.RunMatrix(context.Background())
		if err != nil {
			return err
		}

		appended := 0
		for _, res := range results {
			if res.Appended {
				appended++
			}
		}
		color.Cyan("matrix complete: %d of %d configurations measured, results in %s",
			appended, len(results), store.Path())

		records, err := store.ReadAll()
		if err != nil {
			return err
		}
		printRankings(bench.Rank(records, bench.DefaultTopN))
		return nil
	},
}

func init() {
	allTestsCmd.Flags().BoolVar(&allTestsYes, "yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(allTestsCmd)
}
