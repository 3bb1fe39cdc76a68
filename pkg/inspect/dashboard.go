package inspect

import (
	"github.com/xuri/excelize/v2"

	gerrors "github.com/gigalog/gigalog/pkg/errors"
)

// WriteDashboard writes the analyzer's aggregate tables as an XLSX
// workbook, one sheet per analysis. Failures here are warnings for the
// caller, never fatal to the run.
func WriteDashboard(a *Analyzer, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeShiftSheet(f, a); err != nil {
		return err
	}
	if err := writeTemperatureSheet(f, a); err != nil {
		return err
	}
	if err := writeThroughputSheet(f, a); err != nil {
		return err
	}
	if err := writeQualitySheet(f, a); err != nil {
		return err
	}
	if err := writeBatchSheet(f, a); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return gerrors.Wrap(err, gerrors.CodeWriteFailed, "failed to drop default sheet")
	}
	if err := f.SaveAs(path); err != nil {
		return gerrors.Wrapf(err, gerrors.CodeWriteFailed, "failed to save %s", path)
	}
	return nil
}

func writeShiftSheet(f *excelize.File, a *Analyzer) error {
	rows := [][]interface{}{{"Shift", "Batches", "Inspections", "Mean Temp (C)", "Mean Metric Value"}}
	for _, s := range a.ShiftActivity() {
		rows = append(rows, []interface{}{s.Shift, s.Batches, s.Count, s.MeanTemp, s.MeanVal})
	}
	return writeSheet(f, "Shift Performance", rows)
}

func writeTemperatureSheet(f *excelize.File, a *Analyzer) error {
	rows := [][]interface{}{{"Location", "Mean (C)", "Min (C)", "Max (C)", "Std (C)", "Samples"}}
	for _, t := range a.TemperatureByLocation() {
		rows = append(rows, []interface{}{t.Location, t.Mean, t.Min, t.Max, t.Std, t.Count})
	}
	return writeSheet(f, "Temperature", rows)
}

func writeThroughputSheet(f *excelize.File, a *Analyzer) error {
	rows := [][]interface{}{{"Location", "Batches", "Inspections"}}
	for _, l := range a.LocationThroughput() {
		rows = append(rows, []interface{}{l.Location, l.Batches, l.Inspections})
	}
	return writeSheet(f, "Throughput", rows)
}

func writeQualitySheet(f *excelize.File, a *Analyzer) error {
	rows := [][]interface{}{{"Process Step", "Metric", "Unit", "Mean", "Std", "Min", "Max", "CV %", "Samples"}}
	for _, q := range a.QualityBySubcategory() {
		rows = append(rows, []interface{}{q.Subcategory, q.Metric, q.Unit, q.Mean, q.Std, q.Min, q.Max, q.CV, q.N})
	}
	return writeSheet(f, "Quality", rows)
}

func writeBatchSheet(f *excelize.File, a *Analyzer) error {
	s := a.BatchCounts()
	rows := [][]interface{}{
		{"Total Batches", s.Total},
		{"Avg Inspections", s.Avg},
		{"Min Inspections", s.Min},
		{"Max Inspections", s.Max},
	}
	for _, t := range s.Top {
		rows = append(rows, []interface{}{t.CaseID, t.Count})
	}
	return writeSheet(f, "Batches", rows)
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return gerrors.Wrapf(err, gerrors.CodeWriteFailed, "failed to create sheet %s", name)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return gerrors.Wrap(err, gerrors.CodeWriteFailed, "bad cell coordinates")
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return gerrors.Wrapf(err, gerrors.CodeWriteFailed, "failed to write row %d of %s", i+1, name)
		}
	}
	return nil
}
