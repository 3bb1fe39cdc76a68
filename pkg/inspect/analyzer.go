package inspect

import (
	"sort"
	"strings"

	"github.com/gigalog/gigalog/pkg/stats"
)

// ShiftStat aggregates one shift's inspections.
type ShiftStat struct {
	Shift    string
	Batches  int
	MeanTemp float64
	MeanVal  float64
	Count    int
}

// LocationTemp is one location's ambient temperature profile.
type LocationTemp struct {
	Location string
	Mean     float64
	Min      float64
	Max      float64
	Std      float64
	Count    int
}

// LocationLoad is one location's throughput.
type LocationLoad struct {
	Location    string
	Batches     int
	Inspections int
}

// SubcatCorr is the temperature-vs-metric correlation for one step.
type SubcatCorr struct {
	Subcategory string
	Corr        float64
	N           int
	Strong      bool
	OK          bool
}

// QualityStat summarizes one step's quality metric distribution.
type QualityStat struct {
	Subcategory string
	Metric      string
	Unit        string
	Mean        float64
	Std         float64
	Min         float64
	Max         float64
	CV          float64
	N           int
}

// HVACResult is the anomaly check for the flagged shift/location pair.
type HVACResult struct {
	Records      int
	Mean         float64
	Min          float64
	Max          float64
	LocationMean float64
	Deviation    float64
	Flagged      bool
}

// BatchSummary aggregates per-batch inspection counts.
type BatchSummary struct {
	Total int
	Avg   float64
	Min   int
	Max   int
	Top   []BatchCount
}

// BatchCount pairs a batch id with its inspection count.
type BatchCount struct {
	CaseID string
	Count  int
}

// Analyzer computes operational analytics over inspection records.
type Analyzer struct {
	records []Record
}

// NewAnalyzer wraps a loaded dataset.
func NewAnalyzer(records []Record) *Analyzer {
	return &Analyzer{records: records}
}

// ShiftActivity returns per-shift aggregates, busiest shift first.
func (a *Analyzer) ShiftActivity() []ShiftStat {
	type agg struct {
		batches map[string]bool
		temps   []float64
		vals    []float64
	}
	byShift := make(map[string]*agg)
	for _, r := range a.records {
		s, ok := byShift[r.Shift]
		if !ok {
			s = &agg{batches: make(map[string]bool)}
			byShift[r.Shift] = s
		}
		s.batches[r.CaseID] = true
		s.temps = append(s.temps, r.AmbientTempC)
		s.vals = append(s.vals, r.QC.Value)
	}

	out := make([]ShiftStat, 0, len(byShift))
	for shift, s := range byShift {
		out = append(out, ShiftStat{
			Shift:    shift,
			Batches:  len(s.batches),
			MeanTemp: stats.Mean(s.temps),
			MeanVal:  stats.Mean(s.vals),
			Count:    len(s.temps),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Batches != out[j].Batches {
			return out[i].Batches > out[j].Batches
		}
		return out[i].Shift < out[j].Shift
	})
	return out
}

// PeriodTemps returns mean ambient temperature for AM and PM shifts.
func (a *Analyzer) PeriodTemps() (am, pm float64) {
	var ams, pms []float64
	for _, r := range a.records {
		if strings.HasSuffix(r.Shift, "_AM") {
			ams = append(ams, r.AmbientTempC)
		} else if strings.HasSuffix(r.Shift, "_PM") {
			pms = append(pms, r.AmbientTempC)
		}
	}
	return stats.Mean(ams), stats.Mean(pms)
}

// TemperatureByLocation returns each location's temperature profile,
// sorted by location name.
func (a *Analyzer) TemperatureByLocation() []LocationTemp {
	byLoc := make(map[string][]float64)
	for _, r := range a.records {
		byLoc[r.Location] = append(byLoc[r.Location], r.AmbientTempC)
	}

	out := make([]LocationTemp, 0, len(byLoc))
	for loc, temps := range byLoc {
		lt := LocationTemp{
			Location: loc,
			Mean:     stats.Mean(temps),
			Std:      stats.Std(temps),
			Count:    len(temps),
		}
		lt.Min, lt.Max = temps[0], temps[0]
		for _, t := range temps[1:] {
			if t < lt.Min {
				lt.Min = t
			}
			if t > lt.Max {
				lt.Max = t
			}
		}
		out = append(out, lt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// Hotspots returns locations whose mean temperature exceeds the average
// of all location means.
func (a *Analyzer) Hotspots() []LocationTemp {
	profile := a.TemperatureByLocation()
	if len(profile) == 0 {
		return nil
	}
	means := make([]float64, len(profile))
	for i, p := range profile {
		means[i] = p.Mean
	}
	avg := stats.Mean(means)

	var out []LocationTemp
	for _, p := range profile {
		if p.Mean > avg {
			out = append(out, p)
		}
	}
	return out
}

// minCorrSamples is the minimum sample size for a per-step correlation.
const minCorrSamples = 5

// TempMetricCorrelation computes the Pearson correlation between ambient
// temperature and the metric value per process step. Steps with too few
// samples or degenerate variance report OK=false.
func (a *Analyzer) TempMetricCorrelation() []SubcatCorr {
	type pair struct{ temps, vals []float64 }
	bySub := make(map[string]*pair)
	for _, r := range a.records {
		p, ok := bySub[r.Subcategory]
		if !ok {
			p = &pair{}
			bySub[r.Subcategory] = p
		}
		p.temps = append(p.temps, r.AmbientTempC)
		p.vals = append(p.vals, r.QC.Value)
	}

	subs := make([]string, 0, len(bySub))
	for s := range bySub {
		subs = append(subs, s)
	}
	sort.Strings(subs)

	out := make([]SubcatCorr, 0, len(subs))
	for _, s := range subs {
		p := bySub[s]
		sc := SubcatCorr{Subcategory: s, N: len(p.temps)}
		if len(p.temps) > minCorrSamples {
			if corr, err := stats.Pearson(p.temps, p.vals); err == nil {
				sc.Corr = corr
				sc.OK = true
				sc.Strong = corr > 0.5 || corr < -0.5
			}
		}
		out = append(out, sc)
	}
	return out
}

// LocationThroughput returns per-location batch and inspection counts,
// sorted by location name.
func (a *Analyzer) LocationThroughput() []LocationLoad {
	batches := make(map[string]map[string]bool)
	counts := make(map[string]int)
	for _, r := range a.records {
		if batches[r.Location] == nil {
			batches[r.Location] = make(map[string]bool)
		}
		batches[r.Location][r.CaseID] = true
		counts[r.Location]++
	}

	out := make([]LocationLoad, 0, len(counts))
	for loc, n := range counts {
		out = append(out, LocationLoad{Location: loc, Batches: len(batches[loc]), Inspections: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// ImbalanceRatio is max inspections per location / min, or 0 when the
// dataset has fewer than two locations.
func (a *Analyzer) ImbalanceRatio() float64 {
	loads := a.LocationThroughput()
	if len(loads) < 2 {
		return 0
	}
	min, max := loads[0].Inspections, loads[0].Inspections
	for _, l := range loads[1:] {
		if l.Inspections < min {
			min = l.Inspections
		}
		if l.Inspections > max {
			max = l.Inspections
		}
	}
	if min == 0 {
		return 0
	}
	return float64(max) / float64(min)
}

// LocationResources pairs a location with its distinct resource count.
type LocationResources struct {
	Location string
	Unique   int
}

// ResourcesByLocation returns distinct resource counts per location,
// sorted by location name.
func (a *Analyzer) ResourcesByLocation() []LocationResources {
	byLoc := make(map[string]map[string]bool)
	for _, r := range a.records {
		if byLoc[r.Location] == nil {
			byLoc[r.Location] = make(map[string]bool)
		}
		byLoc[r.Location][r.Resource] = true
	}

	out := make([]LocationResources, 0, len(byLoc))
	for loc, set := range byLoc {
		out = append(out, LocationResources{Location: loc, Unique: len(set)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// ResourceDiversity returns the number of unique resources, overall and
// per shift period.
func (a *Analyzer) ResourceDiversity() (unique int, amUnique int, pmUnique int) {
	all := make(map[string]bool)
	am := make(map[string]bool)
	pm := make(map[string]bool)
	for _, r := range a.records {
		all[r.Resource] = true
		if strings.HasSuffix(r.Shift, "_AM") {
			am[r.Resource] = true
		} else if strings.HasSuffix(r.Shift, "_PM") {
			pm[r.Resource] = true
		}
	}
	return len(all), len(am), len(pm)
}

// QualityBySubcategory summarizes each step's metric distribution,
// including the coefficient of variation as a stability indicator.
func (a *Analyzer) QualityBySubcategory() []QualityStat {
	type agg struct {
		metric, unit string
		vals         []float64
	}
	bySub := make(map[string]*agg)
	for _, r := range a.records {
		s, ok := bySub[r.Subcategory]
		if !ok {
			s = &agg{metric: r.QC.MetricName, unit: r.QC.Unit}
			bySub[r.Subcategory] = s
		}
		s.vals = append(s.vals, r.QC.Value)
	}

	subs := make([]string, 0, len(bySub))
	for s := range bySub {
		subs = append(subs, s)
	}
	sort.Strings(subs)

	out := make([]QualityStat, 0, len(subs))
	for _, sub := range subs {
		s := bySub[sub]
		q := QualityStat{
			Subcategory: sub,
			Metric:      s.metric,
			Unit:        s.unit,
			Mean:        stats.Mean(s.vals),
			Std:         stats.Std(s.vals),
			CV:          stats.CV(s.vals),
			N:           len(s.vals),
		}
		q.Min, q.Max = s.vals[0], s.vals[0]
		for _, v := range s.vals[1:] {
			if v < q.Min {
				q.Min = v
			}
			if v > q.Max {
				q.Max = v
			}
		}
		out = append(out, q)
	}
	return out
}

// hvacFlagThreshold is the deviation (degC) above the location average
// that flags a potential HVAC issue.
const hvacFlagThreshold = 1.0

// HVACCheck compares the anomaly shift/location pair against the
// location's overall average temperature. Returns nil when the dataset
// has no matching rows.
func (a *Analyzer) HVACCheck() *HVACResult {
	var pairTemps, locTemps []float64
	for _, r := range a.records {
		if r.Location == AnomalyLocation {
			locTemps = append(locTemps, r.AmbientTempC)
			if r.Shift == AnomalyShift {
				pairTemps = append(pairTemps, r.AmbientTempC)
			}
		}
	}
	if len(pairTemps) == 0 {
		return nil
	}

	res := &HVACResult{
		Records:      len(pairTemps),
		Mean:         stats.Mean(pairTemps),
		LocationMean: stats.Mean(locTemps),
	}
	res.Min, res.Max = pairTemps[0], pairTemps[0]
	for _, t := range pairTemps[1:] {
		if t < res.Min {
			res.Min = t
		}
		if t > res.Max {
			res.Max = t
		}
	}
	res.Deviation = res.Mean - res.LocationMean
	res.Flagged = res.Deviation > hvacFlagThreshold
	return res
}

// BatchCounts aggregates inspections per batch, top 3 included.
func (a *Analyzer) BatchCounts() BatchSummary {
	counts := make(map[string]int)
	for _, r := range a.records {
		counts[r.CaseID]++
	}
	if len(counts) == 0 {
		return BatchSummary{}
	}

	all := make([]BatchCount, 0, len(counts))
	total := 0
	for id, n := range counts {
		all = append(all, BatchCount{CaseID: id, Count: n})
		total += n
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].CaseID < all[j].CaseID
	})

	s := BatchSummary{
		Total: len(all),
		Avg:   float64(total) / float64(len(all)),
		Min:   all[len(all)-1].Count,
		Max:   all[0].Count,
	}
	top := 3
	if len(all) < top {
		top = len(all)
	}
	s.Top = all[:top]
	return s
}
