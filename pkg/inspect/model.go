// Package inspect generates and analyzes QC inspection snapshot datasets.
// Unlike the event log, rows here are independent snapshots with no
// temporal ordering inside a case.
package inspect

// Quality statuses, roughly 90/8/2 distributed by the generator.
const (
	StatusInSpec   = "In Spec"
	StatusWarning  = "Tolerance Warning"
	StatusCritical = "Critical Fail"
)

// QCData is the nested quality measurement persisted as a JSON literal in
// the qc_data CSV column.
type QCData struct {
	MetricName string  `json:"metric_name"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Status     string  `json:"status"`
}

// Record is one inspection snapshot.
type Record struct {
	Shift        string
	ProcessStep  int
	Subcategory  string
	CaseID       string
	Location     string
	Resource     string
	QC           QCData
	AmbientTempC float64
	OperatorLog  string
}
