package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	gerrors "github.com/gigalog/gigalog/pkg/errors"
)

// CSV column names, in file order.
const (
	ColCaseID    = "case_id"
	ColActivity  = "activity"
	ColTimestamp = "timestamp"
	ColResource  = "resource"
	ColBatchSize = "batch_size"
)

var header = []string{ColCaseID, ColActivity, ColTimestamp, ColResource, ColBatchSize}

// Accepted timestamp layouts, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// WriteCSV writes events as CSV with a header row. Events are sorted by
// case id then timestamp first; an empty log writes just the header.
func WriteCSV(w io.Writer, events []Event) error {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	Sort(sorted)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return gerrors.Wrap(err, gerrors.CodeWriteFailed, "failed to write header")
	}

	row := make([]string, len(header))
	for _, e := range sorted {
		row[0] = e.CaseID
		row[1] = e.Activity
		row[2] = e.Timestamp.UTC().Format(time.RFC3339)
		row[3] = e.Resource
		row[4] = strconv.Itoa(e.BatchSize)
		if err := cw.Write(row); err != nil {
			return gerrors.Wrap(err, gerrors.CodeWriteFailed, "failed to write event row")
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes events to a CSV file.
func WriteFile(path string, events []Event) error {
	f, err := os.Create(path)
	if err != nil {
		return gerrors.Wrapf(err, gerrors.CodeWriteFailed, "failed to create %s", path)
	}
	defer f.Close()
	return WriteCSV(f, events)
}

// ReadResult is a loaded event log plus the count of rows that were
// skipped because they could not be parsed.
type ReadResult struct {
	Events  []Event
	Skipped int
}

// ReadCSV loads an event log. A header row is required; missing required
// columns (case_id, activity, timestamp) fail fast with the missing names.
// Malformed rows are skipped and counted rather than failing the run.
func ReadCSV(r io.Reader) (*ReadResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err == io.EOF {
		return nil, gerrors.New(gerrors.CodeParseFailed, "input is empty, expected a header row")
	}
	if err != nil {
		return nil, gerrors.Wrap(err, gerrors.CodeParseFailed, "failed to read header")
	}

	idx := resolveColumns(head)

	var missing []string
	for _, col := range []string{ColCaseID, ColActivity, ColTimestamp} {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, gerrors.MissingColumns(missing, head)
	}

	res := &ReadResult{}
	width := len(head)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}
		if len(record) != width {
			res.Skipped++
			continue
		}

		ts, err := parseTimestamp(record[idx[ColTimestamp]])
		if err != nil {
			res.Skipped++
			continue
		}

		e := Event{
			CaseID:    record[idx[ColCaseID]],
			Activity:  record[idx[ColActivity]],
			Timestamp: ts,
		}
		if i, ok := idx[ColResource]; ok {
			e.Resource = record[i]
		}
		if i, ok := idx[ColBatchSize]; ok {
			size, err := strconv.Atoi(strings.TrimSpace(record[i]))
			if err != nil {
				res.Skipped++
				continue
			}
			e.BatchSize = size
		}

		res.Events = append(res.Events, e)
	}

	Sort(res.Events)
	return res, nil
}

// ReadFile loads an event log from a CSV file.
func ReadFile(path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gerrors.Wrapf(err, gerrors.CodeFileNotFound, "failed to open %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

func resolveColumns(head []string) map[string]int {
	idx := make(map[string]int, len(head))
	for i, name := range head {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
