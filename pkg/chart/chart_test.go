package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSection(t *testing.T) {
	out := NewGenerator().Section("1. Activity Frequency")
	assert.Contains(t, out, "1. Activity Frequency")
	assert.Contains(t, out, strings.Repeat("=", 80))
}

func TestBarChartScalesToLargestValue(t *testing.T) {
	out := NewGenerator().BarChart([]Bar{
		{Label: "Assembly", Value: 100},
		{Label: "Shipment", Value: 50},
	}, " events")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 40, strings.Count(lines[0], "█"))
	assert.Equal(t, 20, strings.Count(lines[1], "█"))
	assert.Contains(t, lines[0], "100 events")
	assert.Contains(t, lines[1], "50 events")
}

func TestBarChartEmpty(t *testing.T) {
	out := NewGenerator().BarChart(nil, "")
	assert.Contains(t, out, "No data to display")
}

func TestBarChartZeroValues(t *testing.T) {
	out := NewGenerator().BarChart([]Bar{{Label: "Idle", Value: 0}}, "")
	assert.NotContains(t, out, "█")
	assert.Contains(t, out, "Idle")
}

func TestTablePadsColumns(t *testing.T) {
	out := NewGenerator().Table(
		[]string{"Activity", "Count"},
		[][]string{
			{"Final Quality Check", "12"},
			{"Shipment", "7"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Activity")
	assert.Contains(t, lines[0], "Count")
	// Count values line up under the widest cell in each column.
	assert.Equal(t, strings.Index(lines[1], "12"), strings.Index(lines[2], "7"))
}

func TestStatusLines(t *testing.T) {
	g := NewGenerator()
	assert.Contains(t, g.Warning("dot not found"), "dot not found")
	assert.Contains(t, g.Success("written"), "written")
	assert.Contains(t, g.Muted("detail"), "detail")
}

func TestTrimFloat(t *testing.T) {
	assert.Equal(t, "100", trimFloat(100))
	assert.Equal(t, "3.5", trimFloat(3.5))
	assert.Equal(t, "0.25", trimFloat(0.25))
}
