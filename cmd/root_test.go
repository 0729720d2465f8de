package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		configPath, device, mountpoint, resultsPath = "", "", "", ""
	})
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	resetFlags(t)
	device = "/dev/nvme0n1"
	resultsPath = "/tmp/out.csv"

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/dev/nvme0n1", cfg.Device)
	assert.Equal(t, "/tmp/out.csv", cfg.ResultsPath)
	assert.Equal(t, "/mnt/fstune", cfg.Mountpoint, "unset flags keep defaults")
}

func TestLoadConfig_FileThenFlags(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "fstune.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device: /dev/sdc\nmountpoint: /mnt/bench\n"), 0o644))
	configPath = path
	device = "/dev/sdd"

	cfg, err := loadConfig()
	require.NoError(t, err)

	// flags override the file, the file overrides defaults
	assert.Equal(t, "/dev/sdd", cfg.Device)
	assert.Equal(t, "/mnt/bench", cfg.Mountpoint)
}

func TestLoadConfig_BadFile_Error(t *testing.T) {
	resetFlags(t)
	configPath = filepath.Join(t.TempDir(), "absent.yaml")

	_, err := loadConfig()
	assert.Error(t, err)
}
