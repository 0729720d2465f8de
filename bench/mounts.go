package bench

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const procMountsPath = "/proc/self/mounts"

// MountInfo is the device's state as reported by the kernel mount table.
// The pipeline mutates this state through format/mount calls but never
// caches it; every lookup reads the table fresh.
type MountInfo struct {
	Device     string
	Mountpoint string
	Filesystem string
	Options    string
	Mounted    bool
}

// HasOptions reports whether every token of the requested option string is
// present in the active mount options. "defaults" and the empty string match
// any mount, since the kernel expands them away.
func (m MountInfo) HasOptions(requested string) bool {
	active := make(map[string]bool)
	for _, tok := range strings.Split(m.Options, ",") {
		active[tok] = true
	}
	for _, tok := range strings.Split(requested, ",") {
		if tok == "" || tok == "defaults" {
			continue
		}
		if !active[tok] {
			return false
		}
	}
	return true
}

// CurrentMount reports how device is currently mounted, or Mounted=false if
// it does not appear in the mount table.
func CurrentMount(device string) (MountInfo, error) {
	return currentMount(procMountsPath, device)
}

// MountAt reports what is mounted at mountpoint, if anything.
func MountAt(mountpoint string) (MountInfo, error) {
	return mountAt(procMountsPath, mountpoint)
}

func currentMount(table, device string) (MountInfo, error) {
	return scanMounts(table, func(fields []string) bool { return fields[0] == device })
}

func mountAt(table, mountpoint string) (MountInfo, error) {
	return scanMounts(table, func(fields []string) bool { return fields[1] == mountpoint })
}

func scanMounts(table string, match func(fields []string) bool) (MountInfo, error) {
	f, err := os.Open(table)
	if err != nil {
		return MountInfo{}, fmt.Errorf("reading mount table %s: %w", table, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		if match(fields) {
			return MountInfo{
				Device:     fields[0],
				Mountpoint: fields[1],
				Filesystem: fields[2],
				Options:    fields[3],
				Mounted:    true,
			}, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return MountInfo{}, fmt.Errorf("scanning mount table %s: %w", table, err)
	}
	return MountInfo{}, nil
}
