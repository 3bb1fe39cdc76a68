package inspect

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// AnomalyShift and AnomalyLocation identify the injected HVAC signal:
// rows matching both get elevated ambient temperature.
const (
	AnomalyShift    = "Friday_PM"
	AnomalyLocation = "Coating_Room"
	AnomalyTempLift = 5.0
)

// metricDef describes the scientifically appropriate measurement for one
// process step, with its in-spec target range.
type metricDef struct {
	name string
	unit string
	low  float64
	high float64
}

// stepDef is one subcategory in the production flow.
type stepDef struct {
	subcategory string
	area        string
	location    string
	metric      metricDef
}

// Production flow: three areas, three steps each. Step index is the
// 1-based position in this list.
var steps = []stepDef{
	{"Slurry Mixing", "Electrode Manufacturing", "Mixing_Hall", metricDef{"Slurry Viscosity", "Pa.s", 3000, 5000}},
	{"Coating & Drying", "Electrode Manufacturing", "Coating_Room", metricDef{"Electrode Thickness", "microns", 120, 150}},
	{"Calendering", "Electrode Manufacturing", "Coating_Room", metricDef{"Electrode Density", "g/cm3", 2.5, 3.0}},
	{"Winding/Stacking", "Cell Assembly", "Assembly_Line_1", metricDef{"Alignment Precision", "mm", 0.1, 0.5}},
	{"Electrolyte Filling", "Cell Assembly", "Assembly_Line_1", metricDef{"Electrolyte Weight", "g", 42, 58}},
	{"Cap Welding", "Cell Assembly", "Assembly_Line_1", metricDef{"Weld Depth", "mm", 0.8, 1.5}},
	{"Initial Charging", "Formation & Aging", "Formation_Bay", metricDef{"OCV Voltage", "V", 3.2, 3.8}},
	{"High-Temp Aging", "Formation & Aging", "Formation_Bay", metricDef{"Capacity Fade", "%", 0.5, 2.0}},
	{"Final Grading", "Formation & Aging", "Formation_Bay", metricDef{"Internal Resistance", "mOhm", 1.5, 3.0}},
}

var shifts = []string{
	"Monday_AM", "Monday_PM",
	"Tuesday_AM", "Tuesday_PM",
	"Wednesday_AM", "Wednesday_PM",
	"Thursday_AM", "Thursday_PM",
	"Friday_AM", "Friday_PM",
}

var (
	firstNames  = []string{"Oliver", "Amelia", "Harry", "Isla", "George", "Freya", "Arthur", "Poppy", "Muhammad", "Grace", "Leo", "Charlotte"}
	lastNames   = []string{"Smith", "Jones", "Taylor", "Brown", "Williams", "Wilson", "Johnson", "Davies", "Patel", "Robinson", "Wright", "Khan"}
	occupations = []string{"Process Technician", "QA Inspector", "Line Operator", "Shift Supervisor", "Maintenance Engineer", "Calibration Specialist"}
)

var rootCauses = []string{
	"pump pressure fluctuation",
	"oven temp drift",
	"debris on sensor",
	"feed rate instability",
	"roller gap misalignment",
}

// Designer generates inspection snapshot datasets with injected
// statistical correlations.
type Designer struct {
	rng       *rand.Rand
	batchPool []string
}

// NewDesigner creates a designer with a seeded RNG. Case ids come from a
// shared batch pool so batches repeat across process steps.
func NewDesigner(seed int64) *Designer {
	return &Designer{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces n inspection records. The batch pool holds roughly
// n/5 ids so each batch is inspected at several steps.
func (d *Designer) Generate(n int) []Record {
	poolSize := n / 5
	if poolSize < 1 {
		poolSize = 1
	}
	d.batchPool = make([]string, poolSize)
	for i := range d.batchPool {
		d.batchPool[i] = newBatchID()
	}

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, d.generateRecord())
	}
	return records
}

func (d *Designer) generateRecord() Record {
	stepIdx := d.rng.Intn(len(steps))
	step := steps[stepIdx]
	shift := shifts[d.rng.Intn(len(shifts))]

	qc := d.sampleMeasurement(step.metric)
	temp := d.sampleTemperature(shift, step.location)

	return Record{
		Shift:        shift,
		ProcessStep:  stepIdx + 1,
		Subcategory:  step.subcategory,
		CaseID:       d.batchPool[d.rng.Intn(len(d.batchPool))],
		Location:     step.location,
		Resource:     d.sampleResource(),
		QC:           qc,
		AmbientTempC: temp,
		OperatorLog:  d.operatorLog(shift, step.location, qc),
	}
}

// sampleMeasurement draws a value for the step's metric: ~90% in spec,
// ~8% just outside the range, ~2% far outside.
func (d *Designer) sampleMeasurement(m metricDef) QCData {
	span := m.high - m.low
	roll := d.rng.Float64()

	qc := QCData{MetricName: m.name, Unit: m.unit}
	switch {
	case roll < 0.90:
		qc.Status = StatusInSpec
		qc.Value = m.low + d.rng.Float64()*span
	case roll < 0.98:
		qc.Status = StatusWarning
		qc.Value = d.outOfSpec(m, 0.01, 0.10)
	default:
		qc.Status = StatusCritical
		qc.Value = d.outOfSpec(m, 0.10, 0.30)
	}

	qc.Value = round2(qc.Value)
	return qc
}

// outOfSpec pushes a value outside the target range by a relative margin
// in [lo, hi), on a random side. The margin never drops below the 0.01
// rounding resolution, so the value stays out of spec after round2.
func (d *Designer) outOfSpec(m metricDef, lo, hi float64) float64 {
	span := m.high - m.low
	margin := span * (lo + d.rng.Float64()*(hi-lo))
	if margin < 0.01 {
		margin = 0.01
	}
	if d.rng.Float64() < 0.5 {
		return m.low - margin
	}
	return m.high + margin
}

func (d *Designer) sampleTemperature(shift, location string) float64 {
	temp := d.rng.NormFloat64()*1.2 + 21.5
	if shift == AnomalyShift && location == AnomalyLocation {
		temp += AnomalyTempLift
	}
	return round2(temp)
}

func (d *Designer) sampleResource() string {
	return fmt.Sprintf("%s %s (%s)",
		firstNames[d.rng.Intn(len(firstNames))],
		lastNames[d.rng.Intn(len(lastNames))],
		occupations[d.rng.Intn(len(occupations))])
}

func (d *Designer) operatorLog(shift, location string, qc QCData) string {
	if qc.Status == StatusInSpec {
		return "Process nominal"
	}
	cause := rootCauses[d.rng.Intn(len(rootCauses))]
	if shift == AnomalyShift && location == AnomalyLocation {
		cause = "HVAC drift on Friday PM shift"
	}
	return fmt.Sprintf("Flagged %s at %.2f %s; suspect %s", qc.MetricName, qc.Value, qc.Unit, cause)
}

func newBatchID() string {
	id := strings.ToUpper(uuid.New().String())
	return "BATCH-" + strings.ReplaceAll(id, "-", "")[:8]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
