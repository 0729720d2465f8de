package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(fs string, direct, buffered, read float64) BenchmarkRecord {
	return BenchmarkRecord{
		Filesystem:       fs,
		MountOptions:     "defaults",
		DirectWriteMBs:   direct,
		BufferedWriteMBs: buffered,
		ReadMBs:          read,
	}
}

func TestRank_ByDirectWrite_Descending(t *testing.T) {
	// GIVEN three records with distinct direct write speeds
	records := []BenchmarkRecord{
		record("xfs", 5, 4, 3),
		record("ext4", 9, 1, 1),
		record("btrfs", 2, 8, 8),
	}

	// WHEN ranked
	ranking := Rank(records, DefaultTopN)

	// THEN direct write view is ext4, xfs, btrfs
	require.Len(t, ranking.ByDirectWrite, 3)
	assert.Equal(t, "ext4", ranking.ByDirectWrite[0].Filesystem)
	assert.Equal(t, "xfs", ranking.ByDirectWrite[1].Filesystem)
	assert.Equal(t, "btrfs", ranking.ByDirectWrite[2].Filesystem)

	// THEN the other metric views sort by their own metric
	assert.Equal(t, "btrfs", ranking.ByBufferedWrite[0].Filesystem)
	assert.Equal(t, "btrfs", ranking.ByRead[0].Filesystem)
}

func TestWeightedScore_KnownValues(t *testing.T) {
	assert.InDelta(t, 10.00, WeightedScore(record("ext4", 10, 10, 10)), 1e-9)
	assert.InDelta(t, 5.00, WeightedScore(record("ext4", 10, 0, 0)), 1e-9)
}

func TestRank_WeightedView_SortedByScore(t *testing.T) {
	records := []BenchmarkRecord{
		record("xfs", 5, 4, 3),   // 2.5 + 1.2 + 0.6 = 4.3
		record("ext4", 9, 1, 1),  // 4.5 + 0.3 + 0.2 = 5.0
		record("btrfs", 2, 8, 8), // 1.0 + 2.4 + 1.6 = 5.0
	}

	ranking := Rank(records, DefaultTopN)

	require.Len(t, ranking.ByWeighted, 3)
	// ext4 and btrfs tie at 5.0; ext4 was inserted first and wins the tie
	assert.Equal(t, "ext4", ranking.ByWeighted[0].Filesystem)
	assert.Equal(t, "btrfs", ranking.ByWeighted[1].Filesystem)
	assert.Equal(t, "xfs", ranking.ByWeighted[2].Filesystem)
	assert.InDelta(t, 5.0, ranking.ByWeighted[0].Score, 1e-9)
}

func TestRank_TieBreak_InsertionOrderStable(t *testing.T) {
	records := []BenchmarkRecord{
		record("first", 7, 0, 0),
		record("second", 7, 0, 0),
		record("third", 7, 0, 0),
	}

	ranking := Rank(records, DefaultTopN)

	require.Len(t, ranking.ByDirectWrite, 3)
	assert.Equal(t, "first", ranking.ByDirectWrite[0].Filesystem)
	assert.Equal(t, "second", ranking.ByDirectWrite[1].Filesystem)
	assert.Equal(t, "third", ranking.ByDirectWrite[2].Filesystem)
}

func TestRank_TruncatesToTopN(t *testing.T) {
	var records []BenchmarkRecord
	for i := 0; i < 8; i++ {
		records = append(records, record("ext4", float64(i), 0, 0))
	}

	ranking := Rank(records, DefaultTopN)

	assert.Len(t, ranking.ByDirectWrite, DefaultTopN)
	assert.Len(t, ranking.ByWeighted, DefaultTopN)
	assert.Equal(t, 7.0, ranking.ByDirectWrite[0].DirectWriteMBs)
}

func TestRank_EmptyRecords_ReportsNoData(t *testing.T) {
	ranking := Rank(nil, DefaultTopN)

	assert.True(t, ranking.Empty())
	_, ok := ranking.Best()
	assert.False(t, ok)
}

func TestRank_Best_HighestWeighted(t *testing.T) {
	ranking := Rank([]BenchmarkRecord{
		record("xfs", 5, 4, 3),
		record("ext4", 9, 1, 1),
	}, DefaultTopN)

	best, ok := ranking.Best()
	require.True(t, ok)
	assert.Equal(t, "ext4", best.Filesystem)
}
