package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fstune/fstune/bench"
)

var (
	// Persistent CLI flags; empty string means "keep the config/default value"
	configPath  string // Path to an optional YAML configuration file
	device      string // Block device under test
	mountpoint  string // Where test filesystems get mounted
	resultsPath string // CSV result store location
	logLevel    string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fstune",
	Short: "Benchmark filesystem/mount-option combinations and recommend the fastest",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", logLevel)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// loadConfig merges the optional config file with CLI flag overrides.
func loadConfig() (bench.Config, error) {
	cfg := bench.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = bench.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
	}
	if device != "" {
		cfg.Device = device
	}
	if mountpoint != "" {
		cfg.Mountpoint = mountpoint
	}
	if resultsPath != "" {
		cfg.ResultsPath = resultsPath
	}
	return cfg, cfg.Validate()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up the persistent flags shared by all subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&device, "device", "", "Block device under test (default /dev/sdb)")
	rootCmd.PersistentFlags().StringVar(&mountpoint, "mountpoint", "", "Mountpoint for test filesystems (default /mnt/fstune)")
	rootCmd.PersistentFlags().StringVar(&resultsPath, "results", "", "Result store path (default fstune_results.csv)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
