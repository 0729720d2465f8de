package bench

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SupportedFilesystems is the fixed set of filesystem types the tool knows
// how to format. Anything else is a ConfigurationError before any
// destructive action.
var SupportedFilesystems = map[string]bool{
	"ext4":  true,
	"xfs":   true,
	"btrfs": true,
	"f2fs":  true,
}

// MatrixEntry is one (filesystem, mount options) combination to benchmark.
// Options is the exact string handed to mount -o and may contain commas.
type MatrixEntry struct {
	Filesystem string `yaml:"filesystem"`
	Options    string `yaml:"options"`
}

// Target is a filesystem/options pair, used for the recommended
// configuration that `check` compares against and `optimize` applies.
type Target struct {
	Filesystem string `yaml:"filesystem"`
	Options    string `yaml:"options"`
}

// Config carries everything the pipeline needs: the device under test, where
// to mount it, where results go, payload sizing, the recommended target and
// the test matrix. It is passed explicitly into each component at
// construction; there is no process-global state.
type Config struct {
	Device      string        `yaml:"device"`
	Mountpoint  string        `yaml:"mountpoint"`
	ResultsPath string        `yaml:"results"`
	PayloadMiB  int           `yaml:"payload_mib"`
	BlockMiB    int           `yaml:"block_mib"`
	Recommended Target        `yaml:"recommended"`
	Matrix      []MatrixEntry `yaml:"matrix,omitempty"`
}

// DefaultConfig returns the built-in configuration, including the fixed test
// matrix. The matrix is compatibility data: the exact combinations below are
// what a full `all-tests` run measures unless a config file overrides them.
func DefaultConfig() Config {
	return Config{
		Device:      "/dev/sdb",
		Mountpoint:  "/mnt/fstune",
		ResultsPath: "fstune_results.csv",
		PayloadMiB:  1000,
		BlockMiB:    1,
		Recommended: Target{Filesystem: "ext4", Options: "noatime,data=writeback"},
		Matrix:      DefaultMatrix(),
	}
}

// LoadConfig reads a YAML config file over the defaults. Fields absent from
// the file keep their default values; an explicit empty matrix falls back to
// the built-in one.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(cfg.Matrix) == 0 {
		cfg.Matrix = DefaultMatrix()
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations that would fail every cycle.
func (c Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("device must not be empty")
	}
	if c.Mountpoint == "" {
		return fmt.Errorf("mountpoint must not be empty")
	}
	if c.PayloadMiB <= 0 {
		return fmt.Errorf("payload_mib must be positive, got %d", c.PayloadMiB)
	}
	if c.BlockMiB <= 0 || c.BlockMiB > c.PayloadMiB {
		return fmt.Errorf("block_mib must be in [1, payload_mib], got %d", c.BlockMiB)
	}
	for _, entry := range c.Matrix {
		if !SupportedFilesystems[entry.Filesystem] {
			return fmt.Errorf("unsupported filesystem %q in matrix", entry.Filesystem)
		}
	}
	return nil
}
