// Package eventlog defines the flat event-row model shared by the
// generator and the analyzer, plus its CSV encoding.
package eventlog

import (
	"sort"
	"strings"
	"time"
)

// ReworkPrefix marks corrective-loop events: REWORK_<original activity>.
const ReworkPrefix = "REWORK_"

// Event is one row of the event log. One case is the set of rows sharing
// a CaseID, ordered by Timestamp.
type Event struct {
	CaseID    string
	Activity  string
	Timestamp time.Time
	Resource  string
	BatchSize int
}

// IsRework reports whether the activity carries the rework marker.
func (e Event) IsRework() bool {
	return strings.HasPrefix(e.Activity, ReworkPrefix)
}

// ReworkBase returns the original activity name behind the rework marker,
// or the activity itself for non-rework events.
func (e Event) ReworkBase() string {
	return strings.TrimPrefix(e.Activity, ReworkPrefix)
}

// Sort orders events by case id, then timestamp. Downstream analysis
// assumes intra-case chronological order.
func Sort(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].CaseID != events[j].CaseID {
			return events[i].CaseID < events[j].CaseID
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}

// ByCase groups events by case id, preserving input order within a case.
// Case ids are returned in sorted order alongside the groups.
func ByCase(events []Event) ([]string, map[string][]Event) {
	groups := make(map[string][]Event)
	for _, e := range events {
		groups[e.CaseID] = append(groups[e.CaseID], e)
	}
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, groups
}
