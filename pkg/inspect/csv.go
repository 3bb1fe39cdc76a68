package inspect

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	gerrors "github.com/gigalog/gigalog/pkg/errors"
)

// Inspection CSV column names, in file order.
const (
	ColShift       = "shift"
	ColProcessStep = "process_step"
	ColSubcategory = "subcategory"
	ColCaseID      = "case_id"
	ColLocation    = "location"
	ColResource    = "resource"
	ColQCData      = "qc_data"
	ColAmbientTemp = "ambient_temp_c"
	ColOperatorLog = "operator_log"
)

var header = []string{
	ColShift, ColProcessStep, ColSubcategory, ColCaseID, ColLocation,
	ColResource, ColQCData, ColAmbientTemp, ColOperatorLog,
}

// WriteCSV writes inspection records with the qc_data column as a JSON
// object literal.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return gerrors.Wrap(err, gerrors.CodeWriteFailed, "failed to write header")
	}

	for _, r := range records {
		qc, err := json.Marshal(r.QC)
		if err != nil {
			return gerrors.Wrap(err, gerrors.CodeWriteFailed, "failed to encode qc_data")
		}
		row := []string{
			r.Shift,
			strconv.Itoa(r.ProcessStep),
			r.Subcategory,
			r.CaseID,
			r.Location,
			r.Resource,
			string(qc),
			strconv.FormatFloat(r.AmbientTempC, 'f', 2, 64),
			r.OperatorLog,
		}
		if err := cw.Write(row); err != nil {
			return gerrors.Wrap(err, gerrors.CodeWriteFailed, "failed to write record")
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes inspection records to a CSV file.
func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return gerrors.Wrapf(err, gerrors.CodeWriteFailed, "failed to create %s", path)
	}
	defer f.Close()
	return WriteCSV(f, records)
}

// ReadResult is a loaded inspection dataset plus the count of rows that
// were skipped because they could not be parsed.
type ReadResult struct {
	Records []Record
	Skipped int
}

// ReadCSV loads an inspection dataset. Missing required columns fail fast
// with the missing names; rows with malformed qc_data JSON or numerics
// are skipped and counted.
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

	idx := make(map[string]int, len(head))
	for i, name := range head {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range header {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, gerrors.MissingColumns(missing, head)
	}

	res := &ReadResult{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(row) != len(head) {
			res.Skipped++
			continue
		}

		step, err := strconv.Atoi(strings.TrimSpace(row[idx[ColProcessStep]]))
		if err != nil {
			res.Skipped++
			continue
		}
		temp, err := strconv.ParseFloat(strings.TrimSpace(row[idx[ColAmbientTemp]]), 64)
		if err != nil {
			res.Skipped++
			continue
		}
		var qc QCData
		if err := json.Unmarshal([]byte(row[idx[ColQCData]]), &qc); err != nil {
			res.Skipped++
			continue
		}

		res.Records = append(res.Records, Record{
			Shift:        row[idx[ColShift]],
			ProcessStep:  step,
			Subcategory:  row[idx[ColSubcategory]],
			CaseID:       row[idx[ColCaseID]],
			Location:     row[idx[ColLocation]],
			Resource:     row[idx[ColResource]],
			QC:           qc,
			AmbientTempC: temp,
			OperatorLog:  row[idx[ColOperatorLog]],
		})
	}

	return res, nil
}

// ReadFile loads an inspection dataset from a CSV file.
func ReadFile(path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gerrors.Wrapf(err, gerrors.CodeFileNotFound, "failed to open %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}
