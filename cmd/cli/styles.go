package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dvloznov/keep2notion/internal/expense"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spendStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	gainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func formatAmount(rec *expense.Record) string {
	if !rec.Amount.Valid {
		return mutedStyle.Render("-")
	}
	s := rec.Amount.Decimal.StringFixed(2)
	if rec.Type == expense.TypeGain {
		return gainStyle.Render("+" + s)
	}
	return spendStyle.Render(s)
}

func formatDate(rec *expense.Record) string {
	if rec.Date == nil {
		return mutedStyle.Render("no date")
	}
	return rec.Date.String()
}

func printWarnings(w io.Writer, warnings []expense.Warning) {
	for _, warning := range warnings {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("line %d skipped: %s", warning.LineNumber, warning.Line)))
	}
}

func printErrors(w io.Writer, errs []string) {
	for _, e := range errs {
		fmt.Fprintln(w, errorStyle.Render("✗ ")+e)
	}
}
