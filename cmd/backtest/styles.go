package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// titleStyle for section headers.
	titleStyle = lipgloss.NewStyle().Bold(true)

	// labelStyle for metric names.
	labelStyle = lipgloss.NewStyle().Faint(true).Width(22)

	// gainStyle for favorable numbers.
	gainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// lossStyle for unfavorable numbers.
	lossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// formatPercent renders a fraction as a signed percentage, colored by sign.
func formatPercent(v float64) string {
	s := fmt.Sprintf("%.2f%%", v*100)

	switch {
	case v > 0:
		return gainStyle.Render(s)
	case v < 0:
		return lossStyle.Render(s)
	default:
		return s
	}
}

// formatMoney renders a currency amount with two decimals.
func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func row(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}
