package stats

import (
	"time"

	"github.com/gigalog/gigalog/pkg/eventlog"
)

// GroupStat is one equal-width batch-size bucket's aggregate.
type GroupStat struct {
	Group int
	Low   float64
	High  float64
	Value float64
	Count int
}

// batchSizeBounds returns the min and max batch size over the log.
func batchSizeBounds(events []eventlog.Event) (float64, float64, bool) {
	if len(events) == 0 {
		return 0, 0, false
	}
	min := float64(events[0].BatchSize)
	max := min
	for _, e := range events[1:] {
		v := float64(e.BatchSize)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, true
}

// StageDurationByBatchGroup buckets cases into bins equal-width batch-size
// groups and returns the mean duration of the named stage per group, in
// minutes. Durations are consecutive-timestamp diffs within each case.
func StageDurationByBatchGroup(events []eventlog.Event, stage string, bins int) []GroupStat {
	min, max, ok := batchSizeBounds(events)
	if !ok {
		return nil
	}

	sums := make([]float64, bins)
	counts := make([]int, bins)

	for _, trace := range traces(events) {
		prev := time.Time{}
		for i, e := range trace {
			var d time.Duration
			if i > 0 {
				d = e.Timestamp.Sub(prev)
			}
			prev = e.Timestamp
			if e.Activity != stage {
				continue
			}
			g := CutIndex(float64(e.BatchSize), min, max, bins)
			sums[g] += d.Minutes()
			counts[g]++
		}
	}

	return buildGroups(min, max, bins, func(g int) (float64, int) {
		if counts[g] == 0 {
			return 0, 0
		}
		return sums[g] / float64(counts[g]), counts[g]
	})
}

// ReworkRateByBatchGroup returns, per equal-width batch-size group, the
// rework rows per distinct case in that group as a percentage.
func ReworkRateByBatchGroup(events []eventlog.Event, bins int) []GroupStat {
	min, max, ok := batchSizeBounds(events)
	if !ok {
		return nil
	}

	reworkRows := make([]int, bins)
	caseSets := make([]map[string]bool, bins)
	for i := range caseSets {
		caseSets[i] = make(map[string]bool)
	}

	for _, e := range events {
		g := CutIndex(float64(e.BatchSize), min, max, bins)
		caseSets[g][e.CaseID] = true
		if e.IsRework() {
			reworkRows[g]++
		}
	}

	return buildGroups(min, max, bins, func(g int) (float64, int) {
		n := len(caseSets[g])
		if n == 0 {
			return 0, 0
		}
		return float64(reworkRows[g]) / float64(n) * 100, n
	})
}

func buildGroups(min, max float64, bins int, value func(int) (float64, int)) []GroupStat {
	width := (max - min) / float64(bins)
	out := make([]GroupStat, 0, bins)
	for g := 0; g < bins; g++ {
		v, n := value(g)
		out = append(out, GroupStat{
			Group: g,
			Low:   min + float64(g)*width,
			High:  min + float64(g+1)*width,
			Value: v,
			Count: n,
		})
	}
	return out
}
