// Package chart renders the analyzer's report: section headers, ASCII bar
// charts, and padded tables, styled with lipgloss.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	chartWidth = 80
	barWidth   = 40
)

// Styles shared by the report output.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8800")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CC66")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFCC00")).Bold(true)
)

// Bar is one labeled value in a bar chart.
type Bar struct {
	Label string
	Value float64
}

// Generator renders report fragments.
type Generator struct {
	width int
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{width: chartWidth}
}

// Section renders a numbered section header with a rule underneath.
func (g *Generator) Section(title string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(strings.Repeat("=", g.width)))
	sb.WriteString("\n")
	return sb.String()
}

// BarChart renders horizontal bars scaled to the largest value. The unit
// is appended to each printed value.
func (g *Generator) BarChart(bars []Bar, unit string) string {
	if len(bars) == 0 {
		return mutedStyle.Render("No data to display") + "\n"
	}

	labelWidth := 0
	max := 0.0
	for _, b := range bars {
		if len(b.Label) > labelWidth {
			labelWidth = len(b.Label)
		}
		if b.Value > max {
			max = b.Value
		}
	}

	var sb strings.Builder
	for _, b := range bars {
		filled := 0
		if max > 0 {
			filled = int(b.Value / max * barWidth)
		}
		sb.WriteString(fmt.Sprintf("  %-*s |%s%s %s\n",
			labelWidth, b.Label,
			strings.Repeat("█", filled),
			strings.Repeat(" ", barWidth-filled),
			accentStyle.Render(trimFloat(b.Value)+unit)))
	}
	return sb.String()
}

// Table renders rows as padded columns under a header row.
func (g *Generator) Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("  ")
	for i, h := range headers {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s", widths[i]+2, h)))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString("  ")
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(fmt.Sprintf("%-*s", widths[i]+2, cell))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Warning renders a warning line.
func (g *Generator) Warning(msg string) string {
	return warnStyle.Render("⚠ "+msg) + "\n"
}

// Success renders a success line.
func (g *Generator) Success(msg string) string {
	return successStyle.Render("✓ "+msg) + "\n"
}

// Muted renders a secondary detail line.
func (g *Generator) Muted(msg string) string {
	return mutedStyle.Render("  "+msg) + "\n"
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
