package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fstune/fstune/bench"
)

// checkCmd reports the device's current mount state against the recommended
// target. Read-only; never touches the device.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report the device's current filesystem and mount options",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		info, err := bench.CurrentMount(cfg.Device)
		if err != nil {
			return err
		}
		if !info.Mounted {
			color.Yellow("%s is not mounted", cfg.Device)
			color.Yellow("recommended: %s with options %q; run `fstune optimize` to apply",
				cfg.Recommended.Filesystem, cfg.Recommended.Options)
			return nil
		}
		fmt.Printf("%s is mounted at %s as %s with options %s\n",
			info.Device, info.Mountpoint, info.Filesystem, info.Options)
		if info.Filesystem == cfg.Recommended.Filesystem && info.HasOptions(cfg.Recommended.Options) {
			color.Green("matches the recommended configuration (%s, %q)",
				cfg.Recommended.Filesystem, cfg.Recommended.Options)
		} else {
			color.Yellow("recommended: %s with options %q; run `fstune optimize` to apply",
				cfg.Recommended.Filesystem, cfg.Recommended.Options)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
