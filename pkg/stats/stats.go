// Package stats computes descriptive statistics over event logs:
// activity frequencies, stage durations, rework rates, and batch-size
// group analyses.
package stats

import (
	"sort"
	"time"

	"github.com/gigalog/gigalog/pkg/eventlog"
)

// ActivityCount pairs an activity name with an occurrence count.
type ActivityCount struct {
	Activity string
	Count    int
}

// ActivityFrequencies returns per-activity row counts, most frequent
// first. Ties break alphabetically so output is stable.
func ActivityFrequencies(events []eventlog.Event) []ActivityCount {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Activity]++
	}
	return sortedCounts(counts)
}

// StartActivities counts each case's first activity by timestamp.
func StartActivities(events []eventlog.Event) []ActivityCount {
	return boundaryActivities(events, true)
}

// EndActivities counts each case's last activity by timestamp.
func EndActivities(events []eventlog.Event) []ActivityCount {
	return boundaryActivities(events, false)
}

func boundaryActivities(events []eventlog.Event, first bool) []ActivityCount {
	counts := make(map[string]int)
	for _, trace := range traces(events) {
		if len(trace) == 0 {
			continue
		}
		if first {
			counts[trace[0].Activity]++
		} else {
			counts[trace[len(trace)-1].Activity]++
		}
	}
	return sortedCounts(counts)
}

// DurationStats summarizes one activity's observed durations.
type DurationStats struct {
	Activity string
	Mean     time.Duration
	Median   time.Duration
	Std      time.Duration
	Count    int
}

// ActivityDurations derives per-activity duration statistics from the
// difference between consecutive timestamps within a case. By convention
// the first activity of a case has duration 0. Rework rows still consume
// clock time but are excluded from the returned table. Results are sorted
// by mean duration, longest first.
func ActivityDurations(events []eventlog.Event) []DurationStats {
	samples := make(map[string][]float64)

	for _, trace := range traces(events) {
		prev := time.Time{}
		for i, e := range trace {
			var d time.Duration
			if i > 0 {
				d = e.Timestamp.Sub(prev)
				if d < 0 {
					d = -d
				}
			}
			prev = e.Timestamp
			if !e.IsRework() {
				samples[e.Activity] = append(samples[e.Activity], d.Seconds())
			}
		}
	}

	out := make([]DurationStats, 0, len(samples))
	for activity, xs := range samples {
		out = append(out, DurationStats{
			Activity: activity,
			Mean:     secondsToDuration(Mean(xs)),
			Median:   secondsToDuration(Median(xs)),
			Std:      secondsToDuration(Std(xs)),
			Count:    len(xs),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Activity < out[j].Activity
	})
	return out
}

// ReworkAnalysis summarizes rework-marked rows in a log.
type ReworkAnalysis struct {
	// Counts holds per-rework-activity row counts.
	Counts []ActivityCount
	// Rate is rework rows / total rows.
	Rate float64
	// CaseRate is the fraction of cases with at least one rework row.
	CaseRate float64
}

// Rework computes rework counts and rates over the whole log.
func Rework(events []eventlog.Event) ReworkAnalysis {
	counts := make(map[string]int)
	casesWith := make(map[string]bool)
	total := 0
	reworkRows := 0

	for _, e := range events {
		total++
		if e.IsRework() {
			reworkRows++
			counts[e.Activity]++
			casesWith[e.CaseID] = true
		}
	}

	analysis := ReworkAnalysis{Counts: sortedCounts(counts)}
	if total > 0 {
		analysis.Rate = float64(reworkRows) / float64(total)
	}
	if n := caseCount(events); n > 0 {
		analysis.CaseRate = float64(len(casesWith)) / float64(n)
	}
	return analysis
}

// CaseSummary aggregates one case's rows.
type CaseSummary struct {
	CaseID    string
	Start     time.Time
	End       time.Time
	Duration  time.Duration
	BatchSize int
	Events    int
	Reworks   int
}

// Cases returns per-case summaries sorted by case id. Duration is the
// span between the first and last timestamp of the case.
func Cases(events []eventlog.Event) []CaseSummary {
	var out []CaseSummary
	for _, trace := range traces(events) {
		if len(trace) == 0 {
			continue
		}
		s := CaseSummary{
			CaseID:    trace[0].CaseID,
			Start:     trace[0].Timestamp,
			End:       trace[len(trace)-1].Timestamp,
			BatchSize: trace[0].BatchSize,
			Events:    len(trace),
		}
		s.Duration = s.End.Sub(s.Start)
		for _, e := range trace {
			if e.IsRework() {
				s.Reworks++
			}
		}
		out = append(out, s)
	}
	return out
}

// BatchSizeCorrelation computes the Pearson correlation between batch
// size and total case duration in minutes.
func BatchSizeCorrelation(events []eventlog.Event) (float64, error) {
	cases := Cases(events)
	xs := make([]float64, 0, len(cases))
	ys := make([]float64, 0, len(cases))
	for _, c := range cases {
		xs = append(xs, float64(c.BatchSize))
		ys = append(ys, c.Duration.Minutes())
	}
	return Pearson(xs, ys)
}

// traces returns per-case rows in chronological order, case ids sorted.
func traces(events []eventlog.Event) [][]eventlog.Event {
	sorted := make([]eventlog.Event, len(events))
	copy(sorted, events)
	eventlog.Sort(sorted)

	var out [][]eventlog.Event
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || sorted[i].CaseID != sorted[start].CaseID {
			out = append(out, sorted[start:i])
			start = i
		}
	}
	return out
}

func caseCount(events []eventlog.Event) int {
	ids := make(map[string]bool)
	for _, e := range events {
		ids[e.CaseID] = true
	}
	return len(ids)
}

func sortedCounts(counts map[string]int) []ActivityCount {
	out := make([]ActivityCount, 0, len(counts))
	for a, n := range counts {
		out = append(out, ActivityCount{Activity: a, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Activity < out[j].Activity
	})
	return out
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
