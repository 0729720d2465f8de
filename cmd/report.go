package cmd

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/fstune/fstune/bench"
)

// printRankings renders the four ranked views. Speeds and scores display
// with two decimals; the underlying values keep full precision.
func printRankings(r *bench.Ranking) {
	if r.Empty() {
		color.Yellow("no data: run `fstune all-tests` or `fstune test` first")
		return
	}

	printView("Top by direct write", r.ByDirectWrite, func(rec bench.BenchmarkRecord) float64 { return rec.DirectWriteMBs })
	printView("Top by buffered write", r.ByBufferedWrite, func(rec bench.BenchmarkRecord) float64 { return rec.BufferedWriteMBs })
	printView("Top by read", r.ByRead, func(rec bench.BenchmarkRecord) float64 { return rec.ReadMBs })

	color.Cyan("Top by weighted score (0.5 direct + 0.3 buffered + 0.2 read)")
	for i, w := range r.ByWeighted {
		fmt.Printf("  %d. %-6s %-28s %8.2f\n", i+1, w.Filesystem, w.MountOptions, w.Score)
	}
	if best, ok := r.Best(); ok {
		color.Green("recommended: %s with options %q (score %.2f)", best.Filesystem, best.MountOptions, best.Score)
	}
}

func printView(title string, records []bench.BenchmarkRecord, metric func(bench.BenchmarkRecord) float64) {
	color.Cyan("%s (MB/s)", title)
	for i, rec := range records {
		fmt.Printf("  %d. %-6s %-28s %8.2f\n", i+1, rec.Filesystem, rec.MountOptions, metric(rec))
	}
}
