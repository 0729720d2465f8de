package bench

import "fmt"

// ConfigurationError reports an invalid or unusable configuration before any
// destructive action is taken (unsupported filesystem, missing mkfs tool).
type ConfigurationError struct {
	Filesystem string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Filesystem, e.Reason)
}

// DeviceError reports a failed unmount, format or mount operation.
type DeviceError struct {
	Op      string // "unmount", "format", "mount"
	Device  string
	Target  string // filesystem for format, mountpoint for mount/unmount
	Options string
	Err     error
}

func (e *DeviceError) Error() string {
	if e.Options != "" {
		return fmt.Sprintf("%s failed for %s (%s, options %q): %v", e.Op, e.Device, e.Target, e.Options, e.Err)
	}
	return fmt.Sprintf("%s failed for %s (%s): %v", e.Op, e.Device, e.Target, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// MeasurementError reports an I/O failure during one measurement phase. The
// affected phase's speed is the sentinel 0; remaining phases still run.
type MeasurementError struct {
	Phase string // "direct write", "buffered write", "read", "drop caches"
	Err   error
}

func (e *MeasurementError) Error() string {
	return fmt.Sprintf("measurement phase %q: %v", e.Phase, e.Err)
}

func (e *MeasurementError) Unwrap() error { return e.Err }

// StoreError reports a result store read or write failure. Append failures
// abort a matrix run: measurements that cannot be persisted are wasted.
type StoreError struct {
	Op   string // "initialize", "append", "read"
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("result store %s on %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ValidationError reports a malformed speed value coming out of a
// measurement. The whole record is coerced to zeros, never partially kept.
type ValidationError struct {
	Field string
	Value float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s value %v: speeds must be finite and non-negative", e.Field, e.Value)
}
