package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gigalog/gigalog/pkg/chart"
	"github.com/gigalog/gigalog/pkg/inspect"
)

var (
	inspectInput     string
	inspectPlot      bool
	inspectDashboard string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Run operational analytics over an inspection dataset",
	Long: `Analyze a QC inspection dataset: shift performance, environmental
impact, location efficiency, resource utilization, and per-step quality
stability.

With --plot an XLSX dashboard workbook is written in addition to the
textual report. A failure to write the workbook is a warning, not an
error.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectInput, "input", "i", "gigafactory_synthetic_data.csv", "Input inspection CSV")
	inspectCmd.Flags().BoolVar(&inspectPlot, "plot", false, "Also write the dashboard workbook")
	inspectCmd.Flags().StringVar(&inspectDashboard, "dashboard-out", "gigafactory_operational_dashboard.xlsx", "Dashboard workbook path")
}

func runInspect(cmd *cobra.Command, args []string) error {
	res, err := inspect.ReadFile(inspectInput)
	if err != nil {
		return fmt.Errorf("failed to load inspection dataset: %w", err)
	}

	g := chart.NewGenerator()
	a := inspect.NewAnalyzer(res.Records)

	fmt.Printf("Loaded %d inspection records from %s\n", len(res.Records), inspectInput)
	if len(res.Records) == 0 {
		fmt.Print(g.Warning("dataset is empty, nothing to analyze"))
		return nil
	}

	printShifts(g, a)
	printEnvironment(g, a)
	printLocations(g, a)
	printResources(g, a)
	printQuality(g, a)
	printHVAC(g, a)
	printBatches(g, a)

	if res.Skipped > 0 {
		fmt.Print(g.Warning(fmt.Sprintf("%d malformed rows were skipped during load", res.Skipped)))
	}

	if inspectPlot {
		if err := inspect.WriteDashboard(a, inspectDashboard); err != nil {
			fmt.Print(g.Warning(fmt.Sprintf("failed to write dashboard: %v", err)))
		} else {
			fmt.Print(g.Success("dashboard written to " + inspectDashboard))
		}
	}

	return nil
}

func printShifts(g *chart.Generator, a *inspect.Analyzer) {
	fmt.Print(g.Section("1. Shift Performance"))
	shifts := a.ShiftActivity()
	top := shifts
	if len(top) > 5 {
		top = top[:5]
	}
	bars := make([]chart.Bar, 0, len(top))
	for _, s := range top {
		bars = append(bars, chart.Bar{Label: s.Shift, Value: float64(s.Batches)})
	}
	fmt.Println("  Shift activity levels (by batch count):")
	fmt.Print(g.BarChart(bars, " batches"))

	am, pm := a.PeriodTemps()
	fmt.Printf("  AM shifts avg temperature: %.2f°C\n", am)
	fmt.Printf("  PM shifts avg temperature: %.2f°C\n", pm)
	diff := am - pm
	if diff < 0 {
		diff = -diff
	}
	fmt.Printf("  Temperature difference: %.2f°C\n", diff)
}

func printEnvironment(g *chart.Generator, a *inspect.Analyzer) {
	fmt.Print(g.Section("2. Environmental Impact (Temperature)"))

	rows := [][]string{}
	for _, t := range a.TemperatureByLocation() {
		rows = append(rows, []string{
			t.Location,
			fmt.Sprintf("%.2f", t.Mean),
			fmt.Sprintf("%.2f", t.Min),
			fmt.Sprintf("%.2f", t.Max),
			fmt.Sprintf("%.2f", t.Std),
		})
	}
	fmt.Print(g.Table([]string{"Location", "Mean °C", "Min", "Max", "Std"}, rows))

	if hotspots := a.Hotspots(); len(hotspots) > 0 {
		fmt.Println("\n  Locations with above-average temperatures:")
		for _, h := range hotspots {
			fmt.Printf("    - %s: %.2f°C (max %.2f°C)\n", h.Location, h.Mean, h.Max)
		}
	}

	fmt.Println("\n  Temperature impact by process step:")
	for _, c := range a.TempMetricCorrelation() {
		if !c.OK {
			fmt.Printf("    %s: insufficient samples (n=%d)\n", c.Subcategory, c.N)
			continue
		}
		line := fmt.Sprintf("    %s: correlation = %.3f", c.Subcategory, c.Corr)
		if c.Strong {
			line += "  " + "STRONG"
		}
		fmt.Println(line)
	}
}

func printLocations(g *chart.Generator, a *inspect.Analyzer) {
	fmt.Print(g.Section("3. Location Efficiency"))
	rows := [][]string{}
	for _, l := range a.LocationThroughput() {
		rows = append(rows, []string{l.Location, fmt.Sprintf("%d", l.Batches), fmt.Sprintf("%d", l.Inspections)})
	}
	fmt.Print(g.Table([]string{"Location", "Batches", "Inspections"}, rows))
	if ratio := a.ImbalanceRatio(); ratio > 0 {
		fmt.Printf("  Utilization imbalance: %.1fx difference\n", ratio)
	}
}

func printResources(g *chart.Generator, a *inspect.Analyzer) {
	fmt.Print(g.Section("4. Resource Utilization"))
	unique, am, pm := a.ResourceDiversity()
	fmt.Printf("  Unique operators/resources: %d\n", unique)
	fmt.Printf("  AM shifts: %d unique resources\n", am)
	fmt.Printf("  PM shifts: %d unique resources\n", pm)
	fmt.Println("  Resource distribution by location:")
	for _, l := range a.ResourcesByLocation() {
		fmt.Printf("    %s: %d unique resources\n", l.Location, l.Unique)
	}
}

func printQuality(g *chart.Generator, a *inspect.Analyzer) {
	fmt.Print(g.Section("5. Process Step Quality Metrics"))
	for _, q := range a.QualityBySubcategory() {
		fmt.Printf("\n  %s (%s [%s]):\n", q.Subcategory, q.Metric, q.Unit)
		fmt.Printf("    Mean: %.2f %s, Std: %.2f\n", q.Mean, q.Unit, q.Std)
		fmt.Printf("    Range: %.2f - %.2f %s\n", q.Min, q.Max, q.Unit)
		fmt.Printf("    Coefficient of Variation: %.1f%%\n", q.CV)
		fmt.Printf("    Sample size: %d\n", q.N)
	}
}

func printHVAC(g *chart.Generator, a *inspect.Analyzer) {
	fmt.Print(g.Section(fmt.Sprintf("6. HVAC Check (%s + %s)", inspect.AnomalyShift, inspect.AnomalyLocation)))
	res := a.HVACCheck()
	if res == nil {
		fmt.Print(g.Success(fmt.Sprintf("no %s %s records in this dataset", inspect.AnomalyShift, inspect.AnomalyLocation)))
		return
	}
	fmt.Printf("  Records: %d\n", res.Records)
	fmt.Printf("  Avg temperature: %.2f°C (range %.2f - %.2f)\n", res.Mean, res.Min, res.Max)
	fmt.Printf("  Deviation from %s average: %+.2f°C\n", inspect.AnomalyLocation, res.Deviation)
	if res.Flagged {
		fmt.Print(g.Warning("elevated temperature detected, potential HVAC issue on this shift"))
	}
}

func printBatches(g *chart.Generator, a *inspect.Analyzer) {
	fmt.Print(g.Section("7. Batch-Level Insights"))
	s := a.BatchCounts()
	fmt.Printf("  Total batches: %d\n", s.Total)
	fmt.Printf("  Avg inspections per batch: %.1f (min %d, max %d)\n", s.Avg, s.Min, s.Max)
	if len(s.Top) > 0 {
		fmt.Println("  Most inspected batches:")
		for _, t := range s.Top {
			fmt.Printf("    %s: %d inspections\n", t.CaseID, t.Count)
		}
	}
}
