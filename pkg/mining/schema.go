// Package mining is the boundary to the process-mining collaborator. It
// owns the schema adaptation from tabular logs onto the canonical
// case/activity/timestamp fields, a directly-follows baseline miner, and
// model rendering with graceful degradation when graphviz is missing.
package mining

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	gerrors "github.com/gigalog/gigalog/pkg/errors"
	"github.com/gigalog/gigalog/pkg/eventlog"
)

// Canonical field names expected by process-mining tooling.
const (
	FieldCaseID    = "case:concept:name"
	FieldActivity  = "concept:name"
	FieldTimestamp = "time:timestamp"
)

// ColumnMapping names the input columns that map onto the canonical
// fields.
type ColumnMapping struct {
	CaseID    string
	Activity  string
	Timestamp string
}

// DefaultMapping matches the event-log CSV schema.
var DefaultMapping = ColumnMapping{
	CaseID:    eventlog.ColCaseID,
	Activity:  eventlog.ColActivity,
	Timestamp: eventlog.ColTimestamp,
}

// Trace is one case's activity sequence in chronological order.
type Trace struct {
	CaseID     string
	Activities []string
}

// Log is the canonical event log handed to a Miner.
type Log struct {
	Traces []Trace
}

// AdaptTable maps a generic header+rows table onto the canonical log
// shape: the mapped columns are renamed to the canonical fields before
// grouping into traces. Missing mapped columns fail fast with the missing
// names; rows with unparseable timestamps are skipped and counted.
func AdaptTable(header []string, rows [][]string, m ColumnMapping) (*Log, int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	fields := map[string]string{
		FieldCaseID:    m.CaseID,
		FieldActivity:  m.Activity,
		FieldTimestamp: m.Timestamp,
	}
	canon := make(map[string]int, len(fields))
	var missing []string
	for field, col := range fields {
		i, ok := idx[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		canon[field] = i
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, 0, gerrors.MissingColumns(missing, header)
	}

	caseIdx := canon[FieldCaseID]
	actIdx := canon[FieldActivity]
	tsIdx := canon[FieldTimestamp]

	type stamped struct {
		activity string
		ts       time.Time
	}
	byCase := make(map[string][]stamped)
	skipped := 0

	for _, row := range rows {
		if caseIdx >= len(row) || actIdx >= len(row) || tsIdx >= len(row) {
			skipped++
			continue
		}
		ts, err := parseAnyTimestamp(row[tsIdx])
		if err != nil {
			skipped++
			continue
		}
		byCase[row[caseIdx]] = append(byCase[row[caseIdx]], stamped{activity: row[actIdx], ts: ts})
	}

	ids := make([]string, 0, len(byCase))
	for id := range byCase {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	l := &Log{}
	for _, id := range ids {
		events := byCase[id]
		sort.SliceStable(events, func(i, j int) bool { return events[i].ts.Before(events[j].ts) })
		t := Trace{CaseID: id}
		for _, e := range events {
			t.Activities = append(t.Activities, e.activity)
		}
		l.Traces = append(l.Traces, t)
	}
	return l, skipped, nil
}

// LoadCSV reads a tabular CSV log and adapts it onto the canonical
// schema. The skipped count covers both unreadable rows and rows
// AdaptTable rejects.
func LoadCSV(r io.Reader, m ColumnMapping) (*Log, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err == io.EOF {
		return nil, 0, gerrors.New(gerrors.CodeParseFailed, "input is empty, expected a header row")
	}
	if err != nil {
		return nil, 0, gerrors.Wrap(err, gerrors.CodeParseFailed, "failed to read header")
	}

	var rows [][]string
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	l, adaptSkipped, err := AdaptTable(head, rows, m)
	if err != nil {
		return nil, 0, err
	}
	return l, skipped + adaptSkipped, nil
}

// LoadFile reads a CSV log file and adapts it onto the canonical schema.
func LoadFile(path string, m ColumnMapping) (*Log, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, gerrors.Wrapf(err, gerrors.CodeFileNotFound, "failed to open %s", path)
	}
	defer f.Close()
	return LoadCSV(f, m)
}

var tableTimestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseAnyTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range tableTimestampLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
