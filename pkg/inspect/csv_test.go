package inspect

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/gigalog/gigalog/pkg/errors"
)

func sampleRecord() Record {
	return Record{
		Shift:        "Monday_AM",
		ProcessStep:  2,
		Subcategory:  "Coating & Drying",
		CaseID:       "BATCH-1A2B3C4D",
		Location:     "Coating_Room",
		Resource:     "Amelia Patel (QA Inspector)",
		QC:           QCData{MetricName: "Electrode Thickness", Value: 135.42, Unit: "microns", Status: StatusInSpec},
		AmbientTempC: 21.73,
		OperatorLog:  "Process nominal",
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	want := sampleRecord()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Record{want}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out,
		"shift,process_step,subcategory,case_id,location,resource,qc_data,ambient_temp_c,operator_log"))
	assert.Contains(t, out, `""metric_name"":""Electrode Thickness""`)

	res, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, res.Records, 1)
	assert.Equal(t, want, res.Records[0])
}

func TestReadCSVMissingColumns(t *testing.T) {
	in := "shift,case_id\nMonday_AM,BATCH-1\n"
	_, err := ReadCSV(strings.NewReader(in))
	require.Error(t, err)
	assert.True(t, gerrors.IsCode(err, gerrors.CodeMissingColumn))
	assert.Contains(t, err.Error(), "qc_data")
}

func TestReadCSVSkipsMalformedRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Record{sampleRecord()}))
	buf.WriteString("Monday_AM,not-a-step,Sub,BATCH-2,Loc,Res,{},21.5,ok\n")
	buf.WriteString("Monday_AM,3,Sub,BATCH-3,Loc,Res,not json,21.5,ok\n")
	buf.WriteString("Monday_AM,3,Sub,BATCH-4,Loc,Res,{},hot,ok\n")

	res, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Skipped)
	assert.Len(t, res.Records, 1)
}

func TestWriteFileAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inspections.csv")
	records := NewDesigner(1).Generate(25)
	require.NoError(t, WriteFile(path, records))

	res, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, records, res.Records)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, gerrors.IsCode(err, gerrors.CodeFileNotFound))
}
