package bench

import "sort"

// DefaultTopN is how many entries each ranking view shows.
const DefaultTopN = 5

// Ranking holds the four ranked views over one record set: one per measured
// metric plus the weighted composite.
type Ranking struct {
	ByDirectWrite   []BenchmarkRecord
	ByBufferedWrite []BenchmarkRecord
	ByRead          []BenchmarkRecord
	ByWeighted      []WeightedRecord
}

// Empty reports whether there was no data to rank. Callers should print an
// explicit "no data" message instead of empty tables.
func (r *Ranking) Empty() bool { return len(r.ByWeighted) == 0 }

// Rank produces the top-n views over records, each sorted descending by its
// metric. Sorting is stable, so ties keep insertion order: the first
// configuration measured wins.
func Rank(records []BenchmarkRecord, n int) *Ranking {
	ranking := &Ranking{}
	if len(records) == 0 {
		return ranking
	}

	ranking.ByDirectWrite = topBy(records, n, func(r BenchmarkRecord) float64 { return r.DirectWriteMBs })
	ranking.ByBufferedWrite = topBy(records, n, func(r BenchmarkRecord) float64 { return r.BufferedWriteMBs })
	ranking.ByRead = topBy(records, n, func(r BenchmarkRecord) float64 { return r.ReadMBs })

	weighted := make([]WeightedRecord, 0, len(records))
	for _, rec := range records {
		weighted = append(weighted, WeightedRecord{BenchmarkRecord: rec, Score: WeightedScore(rec)})
	}
	sort.SliceStable(weighted, func(i, j int) bool { return weighted[i].Score > weighted[j].Score })
	if len(weighted) > n {
		weighted = weighted[:n]
	}
	ranking.ByWeighted = weighted
	return ranking
}

// Best returns the highest weighted-score record, or false when empty.
func (r *Ranking) Best() (WeightedRecord, bool) {
	if r.Empty() {
		return WeightedRecord{}, false
	}
	return r.ByWeighted[0], true
}

func topBy(records []BenchmarkRecord, n int, metric func(BenchmarkRecord) float64) []BenchmarkRecord {
	sorted := append([]BenchmarkRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return metric(sorted[i]) > metric(sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
