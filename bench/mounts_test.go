package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mountsFixture = `proc /proc proc rw,nosuid,nodev,noexec,relatime 0 0
/dev/sda2 / ext4 rw,relatime 0 0
/dev/sdb1 /mnt/fstune xfs rw,noatime,allocsize=1m,discard 0 0
tmpfs /tmp tmpfs rw,nosuid,nodev 0 0
`

func writeMountsFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mounts")
	require.NoError(t, os.WriteFile(path, []byte(mountsFixture), 0o644))
	return path
}

func TestCurrentMount_DeviceFound(t *testing.T) {
	table := writeMountsFixture(t)

	info, err := currentMount(table, "/dev/sdb1")
	require.NoError(t, err)

	assert.True(t, info.Mounted)
	assert.Equal(t, "/mnt/fstune", info.Mountpoint)
	assert.Equal(t, "xfs", info.Filesystem)
	assert.Equal(t, "rw,noatime,allocsize=1m,discard", info.Options)
}

func TestCurrentMount_DeviceAbsent_NotMounted(t *testing.T) {
	table := writeMountsFixture(t)

	info, err := currentMount(table, "/dev/sdz9")
	require.NoError(t, err)

	assert.False(t, info.Mounted)
}

func TestMountAt_MountpointLookup(t *testing.T) {
	table := writeMountsFixture(t)

	info, err := mountAt(table, "/mnt/fstune")
	require.NoError(t, err)

	assert.True(t, info.Mounted)
	assert.Equal(t, "/dev/sdb1", info.Device)
}

func TestScanMounts_MissingTable_Error(t *testing.T) {
	_, err := currentMount(filepath.Join(t.TempDir(), "absent"), "/dev/sda")
	assert.Error(t, err)
}

func TestMountInfoHasOptions(t *testing.T) {
	info := MountInfo{Options: "rw,noatime,allocsize=1m,discard", Mounted: true}

	assert.True(t, info.HasOptions("defaults"), "defaults matches any mount")
	assert.True(t, info.HasOptions(""))
	assert.True(t, info.HasOptions("noatime,discard"))
	assert.True(t, info.HasOptions("allocsize=1m,discard"))
	assert.False(t, info.HasOptions("compress=zstd"))
	assert.False(t, info.HasOptions("noatime,data=writeback"))
}
