package bench

import (
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	sigar "github.com/cloudfoundry/gosigar"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const mib = 1 << 20

// Measurement holds the three throughput numbers for one mounted target, in
// MB/s (2^20 bytes per second).
type Measurement struct {
	DirectWriteMBs   float64
	BufferedWriteMBs float64
	ReadMBs          float64
}

// Measurer produces a Measurement for a mounted directory. The cycle
// controller depends on this interface so it can be tested with a fake.
type Measurer interface {
	Measure(dir string) (Measurement, error)
}

// Runner measures throughput by timed in-process byte transfer instead of
// scraping dd output: write the payload, stop the clock after fsync, divide
// bytes by elapsed seconds. Three sequential phases run against the mounted
// target: a direct (O_DIRECT) write, a buffered write, and a read-back of
// the buffered file, with a cache drop between phases so each starts cold.
type Runner struct {
	PayloadMiB int
	BlockMiB   int
	ops        StorageOps
}

// NewRunner builds a Runner sized from cfg. It warns when the payload is
// small enough for the page cache to dominate the buffered numbers.
func NewRunner(cfg Config, ops StorageOps) *Runner {
	warnIfPayloadFitsInCache(uint64(cfg.PayloadMiB) * mib)
	return &Runner{PayloadMiB: cfg.PayloadMiB, BlockMiB: cfg.BlockMiB, ops: ops}
}

func warnIfPayloadFitsInCache(payloadBytes uint64) {
	var mem sigar.Mem
	if err := mem.Get(); err != nil {
		logrus.Debugf("cannot read physical memory size: %v", err)
		return
	}
	if payloadBytes < 2*mem.Total {
		logrus.Warnf("payload (%d MiB) is below twice physical RAM (%d MiB); buffered results will partly measure the page cache",
			payloadBytes>>20, mem.Total>>20)
	}
}

// Measure runs the three phases against dir. A failed phase leaves its speed
// at the sentinel 0 and is reported in the returned error; the remaining
// phases still run. Test files are removed even on partial failure.
func (r *Runner) Measure(dir string) (Measurement, error) {
	var m Measurement
	var errs []error

	// Random content defeats filesystems that compress transparently, which
	// would otherwise report fantasy throughput for a zero-filled payload.
	block := make([]byte, r.BlockMiB*mib)
	rand.New(rand.NewSource(time.Now().UnixNano())).Read(block)

	directPath := filepath.Join(dir, "fstune_direct.dat")
	bufferedPath := filepath.Join(dir, "fstune_buffered.dat")
	defer os.Remove(directPath)
	defer os.Remove(bufferedPath)

	if speed, err := r.timedWrite(directPath, block, true); err != nil {
		errs = append(errs, &MeasurementError{Phase: "direct write", Err: err})
	} else {
		m.DirectWriteMBs = speed
	}

	if err := r.ops.DropCaches(); err != nil {
		errs = append(errs, &MeasurementError{Phase: "drop caches", Err: err})
	}

	if speed, err := r.timedWrite(bufferedPath, block, false); err != nil {
		errs = append(errs, &MeasurementError{Phase: "buffered write", Err: err})
	} else {
		m.BufferedWriteMBs = speed
	}

	if err := r.ops.DropCaches(); err != nil {
		errs = append(errs, &MeasurementError{Phase: "drop caches", Err: err})
	}

	if speed, err := r.timedRead(bufferedPath); err != nil {
		errs = append(errs, &MeasurementError{Phase: "read", Err: err})
	} else {
		m.ReadMBs = speed
	}

	return m, errors.Join(errs...)
}

// timedWrite writes the payload block by block and returns MB/s. The clock
// stops only after fsync so the number reflects bytes on stable storage.
// Large slices come page-aligned from the runtime allocator, which satisfies
// O_DIRECT's alignment requirement for the direct phase.
func (r *Runner) timedWrite(path string, block []byte, direct bool) (float64, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if direct {
		flags |= unix.O_DIRECT
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return 0, err
	}

	total := int64(r.PayloadMiB) * mib
	start := time.Now()
	var written int64
	for written < total {
		n, err := f.Write(block)
		written += int64(n)
		if err != nil {
			f.Close()
			return 0, err
		}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return 0, err
	}
	elapsed := time.Since(start)
	if err := f.Close(); err != nil {
		return 0, err
	}
	return throughputMBs(written, elapsed), nil
}

func (r *Runner) timedRead(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, r.BlockMiB*mib)
	start := time.Now()
	var read int64
	for {
		n, err := f.Read(buf)
		read += int64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	return throughputMBs(read, time.Since(start)), nil
}

func throughputMBs(bytes int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(bytes) / elapsed.Seconds() / float64(mib)
}
