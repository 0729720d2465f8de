// Package bench implements the filesystem benchmark pipeline: configuration
// cycles (format/mount/measure/unmount) against a single block device,
// append-only result persistence, and weighted ranking of the outcomes.
package bench

// Weights of the composite ranking score.
const (
	DirectWriteWeight   = 0.5
	BufferedWriteWeight = 0.3
	ReadWeight          = 0.2
)

// BenchmarkRecord is one measured (filesystem, mount options) configuration.
// The three speeds are populated atomically: a cycle either produces three
// valid non-negative values or all three are zeroed.
type BenchmarkRecord struct {
	Filesystem       string
	MountOptions     string
	DirectWriteMBs   float64
	BufferedWriteMBs float64
	ReadMBs          float64
}

// Zeroed returns a copy of the record with all three speeds set to the
// failure sentinel 0.
func (r BenchmarkRecord) Zeroed() BenchmarkRecord {
	r.DirectWriteMBs = 0
	r.BufferedWriteMBs = 0
	r.ReadMBs = 0
	return r
}

// WeightedRecord pairs a BenchmarkRecord with its composite score. Derived
// on demand by the ranking analyzer, never persisted.
type WeightedRecord struct {
	BenchmarkRecord
	Score float64
}

// WeightedScore computes the composite ranking score
// 0.5*direct + 0.3*buffered + 0.2*read at full float64 precision.
func WeightedScore(r BenchmarkRecord) float64 {
	return DirectWriteWeight*r.DirectWriteMBs +
		BufferedWriteWeight*r.BufferedWriteMBs +
		ReadWeight*r.ReadMBs
}
