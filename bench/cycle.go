package bench

import (
	"context"
	"errors"
	"math"

	"github.com/sirupsen/logrus"
)

// Controller drives configuration cycles: for each (filesystem, options)
// pair it unmounts any prior mount, formats the device, mounts, measures,
// unmounts and appends the record. All failures are converted into a
// cycle-level result; nothing panics past this boundary.
type Controller struct {
	cfg   Config
	ops   StorageOps
	meas  Measurer
	store *Store
}

// NewController wires the pipeline together.
func NewController(cfg Config, ops StorageOps, meas Measurer, store *Store) *Controller {
	return &Controller{cfg: cfg, ops: ops, meas: meas, store: store}
}

// CycleResult is the outcome of one configuration cycle. Err is non-nil only
// when the cycle aborted before a record could be appended; measurement
// problems zero the record's fields but still append it.
type CycleResult struct {
	Record   BenchmarkRecord
	Appended bool
	Err      error
}

// RunCycle produces one BenchmarkRecord for entry. State machine:
// Unmounted → Formatted → Mounted → Measured → Unmounted, or Failed on any
// transition error.
func (c *Controller) RunCycle(ctx context.Context, entry MatrixEntry) CycleResult {
	record := BenchmarkRecord{Filesystem: entry.Filesystem, MountOptions: entry.Options}
	fail := func(err error) CycleResult {
		return CycleResult{Record: record.Zeroed(), Err: err}
	}

	// Short-circuit before anything destructive.
	if !SupportedFilesystems[entry.Filesystem] {
		return fail(&ConfigurationError{Filesystem: entry.Filesystem, Reason: "not in the supported set"})
	}

	// Unmounted: clear any prior mount. The mountpoint is shared state; a
	// failed unmount means the next format would destroy a live filesystem.
	mounted, err := c.ops.Mounted(ctx, c.cfg.Mountpoint)
	if err != nil {
		return fail(err)
	}
	if mounted {
		if err := c.ops.Unmount(ctx, c.cfg.Mountpoint); err != nil {
			return fail(err)
		}
	}

	// Formatted.
	if err := c.ops.Format(ctx, c.cfg.Device, entry.Filesystem); err != nil {
		return fail(err)
	}

	// Mounted. Failure here yields a Failed record that is never appended.
	if err := c.ops.Mount(ctx, c.cfg.Device, c.cfg.Mountpoint, entry.Options); err != nil {
		return fail(err)
	}

	// Measured. Phase failures already carry a zero for the failed phase;
	// the record is still appended so the configuration shows up as tested.
	m, merr := c.meas.Measure(c.cfg.Mountpoint)
	if merr != nil {
		logrus.Warnf("measurement on %s (%s): %v", entry.Filesystem, entry.Options, merr)
	}
	record.DirectWriteMBs = m.DirectWriteMBs
	record.BufferedWriteMBs = m.BufferedWriteMBs
	record.ReadMBs = m.ReadMBs

	// A malformed value poisons the whole record: all three fields go to
	// zero rather than persisting a partially valid row.
	if verr := validateSpeeds(record); verr != nil {
		logrus.Warnf("coercing record for %s (%s) to zeros: %v", entry.Filesystem, entry.Options, verr)
		record = record.Zeroed()
	}

	// Back to Unmounted. Cycle N+1 must never start before this returns.
	if err := c.ops.Unmount(ctx, c.cfg.Mountpoint); err != nil {
		logrus.Warnf("cleanup unmount after %s (%s): %v", entry.Filesystem, entry.Options, err)
	}

	if err := c.store.Append(record); err != nil {
		return CycleResult{Record: record, Err: err}
	}
	return CycleResult{Record: record, Appended: true}
}

// RunMatrix truncates the store and runs every matrix entry strictly in
// order. Configuration and device failures skip to the next entry with a
// logged warning; only a store failure aborts the run, since measurements
// that cannot be persisted are wasted. There is no mid-cycle cancellation:
// an interrupted run leaves the device in whatever formatted/mounted state
// it reached, and recovery is manual.
func (c *Controller) RunMatrix(ctx context.Context) ([]CycleResult, error) {
	if err := c.store.Initialize(true); err != nil {
		return nil, err
	}
	results := make([]CycleResult, 0, len(c.cfg.Matrix))
	for _, entry := range c.cfg.Matrix {
		logrus.Infof("benchmarking %s with options %q", entry.Filesystem, entry.Options)
		res := c.RunCycle(ctx, entry)
		results = append(results, res)
		if res.Err != nil {
			var storeErr *StoreError
			if errors.As(res.Err, &storeErr) {
				return results, res.Err
			}
			logrus.Warnf("skipping %s (%s): %v", entry.Filesystem, entry.Options, res.Err)
		}
	}
	return results, nil
}

func validateSpeeds(r BenchmarkRecord) *ValidationError {
	fields := []struct {
		name  string
		value float64
	}{
		{"direct_write_speed", r.DirectWriteMBs},
		{"buffered_write_speed", r.BufferedWriteMBs},
		{"read_speed", r.ReadMBs},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ValidationError{Field: f.name, Value: f.value}
		}
	}
	return nil
}
