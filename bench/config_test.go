package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatrix_FixedCombinations(t *testing.T) {
	matrix := DefaultMatrix()

	// the matrix is compatibility data: 4 ext4 + 4 xfs + 4 btrfs + 2 f2fs
	require.Len(t, matrix, 14)
	counts := map[string]int{}
	for _, entry := range matrix {
		counts[entry.Filesystem]++
		assert.True(t, SupportedFilesystems[entry.Filesystem])
	}
	assert.Equal(t, map[string]int{"ext4": 4, "xfs": 4, "btrfs": 4, "f2fs": 2}, counts)
	assert.Equal(t, MatrixEntry{Filesystem: "ext4", Options: "defaults"}, matrix[0])
	assert.Contains(t, matrix, MatrixEntry{Filesystem: "btrfs", Options: "discard,compress=zstd"})
	assert.Contains(t, matrix, MatrixEntry{Filesystem: "xfs", Options: "allocsize=1m,discard"})
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.PayloadMiB)
	assert.Equal(t, 1, cfg.BlockMiB)
	assert.Equal(t, "ext4", cfg.Recommended.Filesystem)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	// GIVEN a config file that overrides device and matrix
	path := filepath.Join(t.TempDir(), "fstune.yaml")
	content := `
device: /dev/nvme1n1
mountpoint: /mnt/scratch
payload_mib: 200
matrix:
  - filesystem: ext4
    options: noatime
  - filesystem: xfs
    options: "allocsize=1m,discard"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// WHEN loaded
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// THEN file values win and unset fields keep defaults
	assert.Equal(t, "/dev/nvme1n1", cfg.Device)
	assert.Equal(t, "/mnt/scratch", cfg.Mountpoint)
	assert.Equal(t, 200, cfg.PayloadMiB)
	assert.Equal(t, 1, cfg.BlockMiB)
	require.Len(t, cfg.Matrix, 2)
	assert.Equal(t, "allocsize=1m,discard", cfg.Matrix[1].Options)
}

func TestLoadConfig_NoMatrixInFile_KeepsDefaultMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fstune.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device: /dev/sdc\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultMatrix(), cfg.Matrix)
}

func TestLoadConfig_MissingFile_Error(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate_Rejections(t *testing.T) {
	base := DefaultConfig()

	for name, mutate := range map[string]func(*Config){
		"empty device":       func(c *Config) { c.Device = "" },
		"empty mountpoint":   func(c *Config) { c.Mountpoint = "" },
		"zero payload":       func(c *Config) { c.PayloadMiB = 0 },
		"block over payload": func(c *Config) { c.PayloadMiB = 2; c.BlockMiB = 4 },
		"unsupported fs": func(c *Config) {
			c.Matrix = []MatrixEntry{{Filesystem: "zfs", Options: "defaults"}}
		},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
