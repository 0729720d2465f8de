package bench

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// StorageOps is the seam between the benchmark pipeline and the operating
// system's storage stack. The production implementation shells out to the
// usual utilities; tests substitute a fake so no real block device is
// needed.
type StorageOps interface {
	Format(ctx context.Context, device, fsType string) error
	Mount(ctx context.Context, device, mountpoint, options string) error
	Unmount(ctx context.Context, mountpoint string) error
	Mounted(ctx context.Context, mountpoint string) (bool, error)
	DropCaches() error
}

// mkfsFlags holds the per-tool force/quiet flags. Format is always forced;
// confirmation is a CLI-layer concern.
var mkfsFlags = map[string][]string{
	"ext4":  {"-F", "-q"},
	"xfs":   {"-f", "-q"},
	"btrfs": {"-f", "-q"},
	"f2fs":  {"-f", "-q"},
}

const dropCachesPath = "/proc/sys/vm/drop_caches"

// ExecStorageOps implements StorageOps by invoking mkfs.*, mount and umount
// synchronously. No timeouts are enforced; a stalled call blocks until the
// operator intervenes.
type ExecStorageOps struct {
	// DropCachesKnob is overridable for tests; defaults to the Linux procfs
	// knob. Dropping caches is Linux-only and fails loudly elsewhere.
	DropCachesKnob string
}

// NewExecStorageOps returns the production StorageOps implementation.
func NewExecStorageOps() *ExecStorageOps {
	return &ExecStorageOps{DropCachesKnob: dropCachesPath}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	logrus.Debugf("exec: %s %s", name, strings.Join(args, " "))
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s %s: %s", name, strings.Join(args, " "), strings.TrimSpace(string(out)))
	}
	return nil
}

// Format creates fsType on device, destroying its contents. An unsupported
// type or a missing mkfs tool is a ConfigurationError raised before anything
// destructive happens.
func (s *ExecStorageOps) Format(ctx context.Context, device, fsType string) error {
	flags, ok := mkfsFlags[fsType]
	if !ok {
		return &ConfigurationError{Filesystem: fsType, Reason: "not in the supported set"}
	}
	tool := "mkfs." + fsType
	if _, err := exec.LookPath(tool); err != nil {
		return &ConfigurationError{Filesystem: fsType, Reason: tool + " not found in PATH"}
	}
	args := append(append([]string{}, flags...), device)
	if err := runCommand(ctx, tool, args...); err != nil {
		return &DeviceError{Op: "format", Device: device, Target: fsType, Err: err}
	}
	return nil
}

// Mount mounts device at mountpoint with the exact option string supplied.
func (s *ExecStorageOps) Mount(ctx context.Context, device, mountpoint, options string) error {
	args := []string{device, mountpoint}
	if options != "" {
		args = append([]string{"-o", options}, args...)
	}
	if err := runCommand(ctx, "mount", args...); err != nil {
		return &DeviceError{Op: "mount", Device: device, Target: mountpoint, Options: options, Err: err}
	}
	return nil
}

// Unmount unmounts whatever is at mountpoint.
func (s *ExecStorageOps) Unmount(ctx context.Context, mountpoint string) error {
	if err := runCommand(ctx, "umount", mountpoint); err != nil {
		return &DeviceError{Op: "unmount", Device: mountpoint, Target: mountpoint, Err: err}
	}
	return nil
}

// Mounted reports whether anything is mounted at mountpoint, per the kernel
// mount table.
func (s *ExecStorageOps) Mounted(ctx context.Context, mountpoint string) (bool, error) {
	info, err := mountAt(procMountsPath, mountpoint)
	if err != nil {
		return false, err
	}
	return info.Mounted, nil
}

// DropCaches syncs dirty pages and asks the kernel to discard the page,
// dentry and inode caches so the next measurement phase starts cold.
func (s *ExecStorageOps) DropCaches() error {
	unix.Sync()
	knob := s.DropCachesKnob
	if knob == "" {
		knob = dropCachesPath
	}
	if err := os.WriteFile(knob, []byte("3\n"), 0o200); err != nil {
		return errors.Wrap(err, "dropping caches")
	}
	return nil
}
