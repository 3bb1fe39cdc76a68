package inspect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigalog/gigalog/pkg/stats"
)

func TestGenerateStatusDistribution(t *testing.T) {
	records := NewDesigner(42).Generate(2000)
	require.Len(t, records, 2000)

	inSpec := 0
	for _, r := range records {
		switch r.QC.Status {
		case StatusInSpec:
			inSpec++
		case StatusWarning, StatusCritical:
		default:
			t.Fatalf("unexpected status %q", r.QC.Status)
		}
	}
	share := float64(inSpec) / float64(len(records))
	assert.InDelta(t, 0.90, share, 0.05)
}

func TestGenerateMeasurementMatchesStatus(t *testing.T) {
	records := NewDesigner(7).Generate(1000)
	defs := make(map[string]metricDef)
	for _, s := range steps {
		defs[s.subcategory] = s.metric
	}

	for _, r := range records {
		m, ok := defs[r.Subcategory]
		require.True(t, ok, "unknown subcategory %q", r.Subcategory)
		assert.Equal(t, m.name, r.QC.MetricName)
		assert.Equal(t, m.unit, r.QC.Unit)

		if r.QC.Status == StatusInSpec {
			assert.True(t, r.QC.Value >= m.low && r.QC.Value <= m.high,
				"%s: %v flagged in spec but outside [%v, %v]",
				r.Subcategory, r.QC.Value, m.low, m.high)
		} else {
			assert.False(t, r.QC.Value >= m.low && r.QC.Value <= m.high,
				"%s: %v flagged %s but inside [%v, %v]",
				r.Subcategory, r.QC.Value, r.QC.Status, m.low, m.high)
		}
	}
}

func TestOutOfSpecSurvivesRounding(t *testing.T) {
	// The narrowest metric range is the worst case: a 1% relative margin
	// is smaller than the 0.01 rounding step.
	d := NewDesigner(5)
	m := metricDef{"Alignment Precision", "mm", 0.1, 0.5}

	for i := 0; i < 2000; i++ {
		v := round2(d.outOfSpec(m, 0.01, 0.10))
		assert.True(t, v < m.low || v > m.high,
			"rounded value %v landed inside [%v, %v]", v, m.low, m.high)
	}
}

func TestGenerateBatchesRepeatAcrossSteps(t *testing.T) {
	records := NewDesigner(11).Generate(500)

	batches := make(map[string]int)
	for _, r := range records {
		require.True(t, strings.HasPrefix(r.CaseID, "BATCH-"), "case id %q", r.CaseID)
		batches[r.CaseID]++
	}
	// Pool of ~n/5 ids means each batch appears ~5 times.
	assert.LessOrEqual(t, len(batches), 100)

	repeated := 0
	for _, n := range batches {
		if n > 1 {
			repeated++
		}
	}
	assert.Greater(t, repeated, len(batches)/2)
}

func TestGenerateInjectsHVACAnomaly(t *testing.T) {
	records := NewDesigner(42).Generate(5000)

	var pair, rest []float64
	for _, r := range records {
		if r.Location != AnomalyLocation {
			continue
		}
		if r.Shift == AnomalyShift {
			pair = append(pair, r.AmbientTempC)
		} else {
			rest = append(rest, r.AmbientTempC)
		}
	}

	require.Greater(t, len(pair), 20)
	require.Greater(t, len(rest), 100)
	lift := stats.Mean(pair) - stats.Mean(rest)
	assert.Greater(t, lift, 3.0, "expected a clear temperature lift, got %.2f", lift)
}

func TestGenerateAnomalyRootCause(t *testing.T) {
	records := NewDesigner(3).Generate(5000)

	sawFlagged := false
	for _, r := range records {
		if r.Shift != AnomalyShift || r.Location != AnomalyLocation {
			continue
		}
		if r.QC.Status == StatusInSpec {
			assert.Equal(t, "Process nominal", r.OperatorLog)
			continue
		}
		sawFlagged = true
		assert.Contains(t, r.OperatorLog, "HVAC")
	}
	assert.True(t, sawFlagged, "expected at least one flagged anomaly-pair record")
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	// Batch ids are uuid-backed and not covered by the seed; everything
	// drawn from the seeded RNG must repeat.
	a := NewDesigner(99).Generate(50)
	b := NewDesigner(99).Generate(50)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Shift, b[i].Shift)
		assert.Equal(t, a[i].Subcategory, b[i].Subcategory)
		assert.Equal(t, a[i].QC, b[i].QC)
		assert.Equal(t, a[i].AmbientTempC, b[i].AmbientTempC)
		assert.Equal(t, a[i].Resource, b[i].Resource)
	}
}
