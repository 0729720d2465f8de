package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fstune/fstune/bench"
)

// testCmd benchmarks whatever is currently mounted, without formatting. The
// record is appended to the existing result store (created with a header if
// missing), so manual spot checks accumulate next to matrix results.
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run one benchmark against the currently mounted filesystem",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		info, err := bench.MountAt(cfg.Mountpoint)
		if err != nil {
			return err
		}
		if !info.Mounted {
			return &bench.ConfigurationError{Filesystem: "none", Reason: "nothing is mounted at " + cfg.Mountpoint}
		}

		color.Blue("benchmarking %s (%s, options %s)", cfg.Mountpoint, info.Filesystem, info.Options)
		runner := bench.NewRunner(cfg, bench.NewExecStorageOps())
		m, merr := runner.Measure(cfg.Mountpoint)
		if merr != nil {
			color.Yellow("some phases failed: %v", merr)
		}

		record := bench.BenchmarkRecord{
			Filesystem:       info.Filesystem,
			MountOptions:     info.Options,
			DirectWriteMBs:   m.DirectWriteMBs,
			BufferedWriteMBs: m.BufferedWriteMBs,
			ReadMBs:          m.ReadMBs,
		}
		store := bench.NewStore(cfg.ResultsPath)
		if err := store.Append(record); err != nil {
			return err
		}

		color.Green("direct write:   %8.2f MB/s", record.DirectWriteMBs)
		color.Green("buffered write: %8.2f MB/s", record.BufferedWriteMBs)
		color.Green("read:           %8.2f MB/s", record.ReadMBs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}
