package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/propintel/underwrite/underwriting"
)

type summary struct {
	label lipgloss.Style
	value lipgloss.Style
	risk  map[underwriting.Risk]lipgloss.Style
}

// newSummary styles output for w, plain text when noColor is set
func newSummary(w io.Writer, noColor bool) summary {
	renderer := lipgloss.NewRenderer(w)
	if noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return summary{
		label: renderer.NewStyle().Foreground(lipgloss.Color("8")).Width(10),
		value: renderer.NewStyle().Bold(true),
		risk: map[underwriting.Risk]lipgloss.Style{
			underwriting.LowRisk:    renderer.NewStyle().Foreground(lipgloss.Color("10")),
			underwriting.MediumRisk: renderer.NewStyle().Foreground(lipgloss.Color("11")),
			underwriting.HighRisk:   renderer.NewStyle().Foreground(lipgloss.Color("9")),
		},
	}
}

func (s summary) Render(record underwriting.Record, output string, size int) string {
	risk := record.Risk()
	rows := [][2]string{
		{"Address", s.value.Render(record.Address)},
		{"Value", underwriting.Currency(record.Value)},
		{"DSCR", underwriting.Decimal(record.DSCR)},
		{"Risk", s.risk[risk].Render(risk.String())},
		{"Report", fmt.Sprintf("%s (%d bytes)", output, size)},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, s.label.Render(row[0])+row[1])
	}
	return strings.Join(lines, "\n")
}
