package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fstune/fstune/bench"
)

// showCmd prints the rankings from the existing store without running any
// new benchmark.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show rankings from the existing result store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := bench.NewStore(cfg.ResultsPath)
		records, err := store.ReadAll()
		if err != nil {
			return err
		}
		printRankings(bench.Rank(records, bench.DefaultTopN))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
