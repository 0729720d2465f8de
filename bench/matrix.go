package bench

// DefaultMatrix returns the fixed benchmark matrix. "defaults" is the plain
// mount with no extra options. f2fs entries are skipped at run time when
// mkfs.f2fs is not installed.
func DefaultMatrix() []MatrixEntry {
	return []MatrixEntry{
		{Filesystem: "ext4", Options: "defaults"},
		{Filesystem: "ext4", Options: "discard"},
		{Filesystem: "ext4", Options: "data=writeback"},
		{Filesystem: "ext4", Options: "data=ordered"},
		{Filesystem: "xfs", Options: "defaults"},
		{Filesystem: "xfs", Options: "discard"},
		{Filesystem: "xfs", Options: "allocsize=1m"},
		{Filesystem: "xfs", Options: "allocsize=1m,discard"},
		{Filesystem: "btrfs", Options: "defaults"},
		{Filesystem: "btrfs", Options: "discard"},
		{Filesystem: "btrfs", Options: "compress=zstd"},
		{Filesystem: "btrfs", Options: "discard,compress=zstd"},
		{Filesystem: "f2fs", Options: "defaults"},
		{Filesystem: "f2fs", Options: "discard"},
	}
}
