package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(shift, sub, caseID, loc, res string, temp, val float64) Record {
	return Record{
		Shift:        shift,
		Subcategory:  sub,
		CaseID:       caseID,
		Location:     loc,
		Resource:     res,
		QC:           QCData{MetricName: "m", Value: val, Unit: "u", Status: StatusInSpec},
		AmbientTempC: temp,
	}
}

func TestShiftActivityOrdersByBatchCount(t *testing.T) {
	a := NewAnalyzer([]Record{
		rec("Monday_AM", "s", "B1", "L1", "r1", 21, 1),
		rec("Monday_AM", "s", "B2", "L1", "r1", 23, 1),
		rec("Tuesday_PM", "s", "B1", "L1", "r2", 22, 1),
	})

	shifts := a.ShiftActivity()
	require.Len(t, shifts, 2)
	assert.Equal(t, "Monday_AM", shifts[0].Shift)
	assert.Equal(t, 2, shifts[0].Batches)
	assert.InDelta(t, 22.0, shifts[0].MeanTemp, 1e-9)
	assert.Equal(t, 1, shifts[1].Batches)
}

func TestPeriodTemps(t *testing.T) {
	a := NewAnalyzer([]Record{
		rec("Monday_AM", "s", "B1", "L1", "r", 20, 1),
		rec("Friday_AM", "s", "B2", "L1", "r", 22, 1),
		rec("Monday_PM", "s", "B3", "L1", "r", 25, 1),
	})

	am, pm := a.PeriodTemps()
	assert.InDelta(t, 21.0, am, 1e-9)
	assert.InDelta(t, 25.0, pm, 1e-9)
}

func TestHotspots(t *testing.T) {
	a := NewAnalyzer([]Record{
		rec("Monday_AM", "s", "B1", "Cold_Room", "r", 18, 1),
		rec("Monday_AM", "s", "B2", "Warm_Room", "r", 26, 1),
	})

	hot := a.Hotspots()
	require.Len(t, hot, 1)
	assert.Equal(t, "Warm_Room", hot[0].Location)
}

func TestTempMetricCorrelationFlagsStrongRelations(t *testing.T) {
	var records []Record
	for i := 0; i < 10; i++ {
		temp := 20.0 + float64(i)
		// metric tracks temperature exactly: correlation 1
		records = append(records, rec("Monday_AM", "Tracked", "B1", "L1", "r", temp, temp*2))
		// metric independent of temperature: alternating constant pair
		records = append(records, rec("Monday_AM", "Flat", "B1", "L1", "r", temp, float64(i%2)))
	}

	corrs := NewAnalyzer(records).TempMetricCorrelation()
	byName := make(map[string]SubcatCorr)
	for _, c := range corrs {
		byName[c.Subcategory] = c
	}

	tracked := byName["Tracked"]
	require.True(t, tracked.OK)
	assert.True(t, tracked.Strong)
	assert.InDelta(t, 1.0, tracked.Corr, 1e-9)

	flat := byName["Flat"]
	require.True(t, flat.OK)
	assert.False(t, flat.Strong)
}

func TestTempMetricCorrelationNeedsSamples(t *testing.T) {
	corrs := NewAnalyzer([]Record{
		rec("Monday_AM", "Tiny", "B1", "L1", "r", 20, 1),
		rec("Monday_AM", "Tiny", "B1", "L1", "r", 21, 2),
	}).TempMetricCorrelation()

	require.Len(t, corrs, 1)
	assert.False(t, corrs[0].OK)
	assert.Equal(t, 2, corrs[0].N)
}

func TestLocationThroughputAndImbalance(t *testing.T) {
	a := NewAnalyzer([]Record{
		rec("Monday_AM", "s", "B1", "Busy", "r", 21, 1),
		rec("Monday_AM", "s", "B2", "Busy", "r", 21, 1),
		rec("Monday_AM", "s", "B1", "Busy", "r", 21, 1),
		rec("Monday_AM", "s", "B3", "Quiet", "r", 21, 1),
	})

	loads := a.LocationThroughput()
	require.Len(t, loads, 2)
	assert.Equal(t, LocationLoad{Location: "Busy", Batches: 2, Inspections: 3}, loads[0])
	assert.Equal(t, LocationLoad{Location: "Quiet", Batches: 1, Inspections: 1}, loads[1])
	assert.InDelta(t, 3.0, a.ImbalanceRatio(), 1e-9)
}

func TestResourceDiversity(t *testing.T) {
	a := NewAnalyzer([]Record{
		rec("Monday_AM", "s", "B1", "L1", "alice", 21, 1),
		rec("Monday_AM", "s", "B2", "L1", "bob", 21, 1),
		rec("Monday_PM", "s", "B3", "L1", "alice", 21, 1),
	})

	unique, am, pm := a.ResourceDiversity()
	assert.Equal(t, 2, unique)
	assert.Equal(t, 2, am)
	assert.Equal(t, 1, pm)
}

func TestResourcesByLocation(t *testing.T) {
	a := NewAnalyzer([]Record{
		rec("Monday_AM", "s", "B1", "L1", "alice", 21, 1),
		rec("Monday_AM", "s", "B2", "L1", "bob", 21, 1),
		rec("Monday_AM", "s", "B3", "L1", "alice", 21, 1),
		rec("Monday_PM", "s", "B4", "L2", "alice", 21, 1),
	})

	locs := a.ResourcesByLocation()
	require.Len(t, locs, 2)
	assert.Equal(t, LocationResources{Location: "L1", Unique: 2}, locs[0])
	assert.Equal(t, LocationResources{Location: "L2", Unique: 1}, locs[1])
}

func TestHVACCheckFlagsElevatedPair(t *testing.T) {
	var records []Record
	for i := 0; i < 20; i++ {
		records = append(records, rec("Monday_AM", "s", "B1", AnomalyLocation, "r", 21.5, 1))
	}
	for i := 0; i < 5; i++ {
		records = append(records, rec(AnomalyShift, "s", "B2", AnomalyLocation, "r", 26.5, 1))
	}

	res := NewAnalyzer(records).HVACCheck()
	require.NotNil(t, res)
	assert.Equal(t, 5, res.Records)
	assert.InDelta(t, 26.5, res.Mean, 1e-9)
	assert.Greater(t, res.Deviation, 1.0)
	assert.True(t, res.Flagged)
}

func TestHVACCheckNilWithoutPairRecords(t *testing.T) {
	res := NewAnalyzer([]Record{
		rec("Monday_AM", "s", "B1", AnomalyLocation, "r", 21.5, 1),
	}).HVACCheck()
	assert.Nil(t, res)
}

func TestBatchCounts(t *testing.T) {
	a := NewAnalyzer([]Record{
		rec("Monday_AM", "s", "B1", "L1", "r", 21, 1),
		rec("Monday_AM", "s", "B1", "L1", "r", 21, 1),
		rec("Monday_AM", "s", "B1", "L1", "r", 21, 1),
		rec("Monday_AM", "s", "B2", "L1", "r", 21, 1),
	})

	s := a.BatchCounts()
	assert.Equal(t, 2, s.Total)
	assert.InDelta(t, 2.0, s.Avg, 1e-9)
	assert.Equal(t, 1, s.Min)
	assert.Equal(t, 3, s.Max)
	require.Len(t, s.Top, 2)
	assert.Equal(t, BatchCount{CaseID: "B1", Count: 3}, s.Top[0])
}

func TestQualityBySubcategory(t *testing.T) {
	a := NewAnalyzer([]Record{
		rec("Monday_AM", "Coating", "B1", "L1", "r", 21, 100),
		rec("Monday_AM", "Coating", "B2", "L1", "r", 21, 110),
		rec("Monday_AM", "Coating", "B3", "L1", "r", 21, 90),
	})

	qs := a.QualityBySubcategory()
	require.Len(t, qs, 1)
	q := qs[0]
	assert.Equal(t, "Coating", q.Subcategory)
	assert.InDelta(t, 100.0, q.Mean, 1e-9)
	assert.InDelta(t, 90.0, q.Min, 1e-9)
	assert.InDelta(t, 110.0, q.Max, 1e-9)
	assert.InDelta(t, 10.0, q.CV, 1e-6)
	assert.Equal(t, 3, q.N)
}
