package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fstune/fstune/bench"
)

var optimizeYes bool

// optimizeCmd formats and mounts the device with the recommended
// configuration. Destructive, so it insists on a typed confirmation unless
// --yes is given.
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Format and mount the device with the recommended configuration",
	Long: `Formats the device with the recommended filesystem and mounts it with the
recommended options. All data on the device is destroyed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		color.Red("This will destroy all data on %s.", cfg.Device)
		if !optimizeYes && !confirm() {
			color.Yellow("aborted")
			return nil
		}

		ctx := context.Background()
		ops := bench.NewExecStorageOps()
		return applyTarget(ctx, ops, cfg, cfg.Recommended)
	},
}

// applyTarget unmounts (if needed), formats and mounts device per target.
func applyTarget(ctx context.Context, ops bench.StorageOps, cfg bench.Config, target bench.Target) error {
	mounted, err := ops.Mounted(ctx, cfg.Mountpoint)
	if err != nil {
		return err
	}
	if mounted {
		if err := ops.Unmount(ctx, cfg.Mountpoint); err != nil {
			return err
		}
	}
	if err := ops.Format(ctx, cfg.Device, target.Filesystem); err != nil {
		return err
	}
	if err := ops.Mount(ctx, cfg.Device, cfg.Mountpoint, target.Options); err != nil {
		return err
	}
	color.Green("%s is now %s, mounted at %s with options %q",
		cfg.Device, target.Filesystem, cfg.Mountpoint, target.Options)
	return nil
}

func confirm() bool {
	fmt.Print("Type 'yes' to continue: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}

func init() {
	optimizeCmd.Flags().BoolVar(&optimizeYes, "yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(optimizeCmd)
}
