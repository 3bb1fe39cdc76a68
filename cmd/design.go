package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gigalog/gigalog/pkg/inspect"
)

var (
	designOutput  string
	designRecords int
	designSeed    int64
)

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Generate a QC inspection snapshot dataset",
	Long: `Generate a timestamp-free QC inspection dataset with injected
statistical correlations: elevated ambient temperature on the Friday PM
shift in the coating room, and batch ids repeating across process steps
for traceability.`,
	RunE: runDesign,
}

func init() {
	designCmd.Flags().StringVarP(&designOutput, "out", "o", "gigafactory_synthetic_data.csv", "Output CSV path")
	designCmd.Flags().IntVarP(&designRecords, "records", "n", 100, "Number of inspection records")
	designCmd.Flags().Int64Var(&designSeed, "seed", 42, "Random seed")
}

func runDesign(cmd *cobra.Command, args []string) error {
	designer := inspect.NewDesigner(designSeed)
	records := designer.Generate(designRecords)

	if err := inspect.WriteFile(designOutput, records); err != nil {
		return fmt.Errorf("failed to write inspection dataset: %w", err)
	}

	batches := make(map[string]bool)
	inSpec := 0
	for _, r := range records {
		batches[r.CaseID] = true
		if r.QC.Status == inspect.StatusInSpec {
			inSpec++
		}
	}

	fmt.Printf("Inspection dataset created: %s\n", designOutput)
	fmt.Printf("  - Records: %d\n", len(records))
	fmt.Printf("  - Batches: %d (ids repeat across process steps)\n", len(batches))
	if len(records) > 0 {
		fmt.Printf("  - In Spec: %.0f%%\n", float64(inSpec)/float64(len(records))*100)
	}
	fmt.Printf("  - Injected signal: +%.0f°C on %s at %s\n",
		inspect.AnomalyTempLift, inspect.AnomalyShift, inspect.AnomalyLocation)

	return nil
}
