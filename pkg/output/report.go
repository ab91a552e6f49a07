// Package output renders apply reports for the terminal. Styles use
// adaptive colors so they stay readable on light and dark themes.
package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/keywarden/keywarden/pkg/reconcile"
)

var (
	appliedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"})
	removedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})
	failedStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "196"})
	unchangedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "245"})
	summaryStyle = lipgloss.NewStyle().Bold(true)

	// ErrorStyle is used by the CLI entry point for fatal errors.
	ErrorStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "196"})
)

// RenderReport formats a full apply report: one line per catalog entry in
// catalog order, then a summary line.
func RenderReport(report *reconcile.Report) string {
	var b strings.Builder

	for _, res := range report.Results {
		b.WriteString(renderResult(res, report.DryRun))
		b.WriteByte('\n')
	}

	summary := report.Summary()
	if report.DryRun {
		summary += " (dry run)"
	}
	b.WriteString(summaryStyle.Render(summary))
	b.WriteByte('\n')
	return b.String()
}

func renderResult(res reconcile.Result, dryRun bool) string {
	target := fmt.Sprintf(`%s\%s`, res.Setting.Key, res.Setting.Name)

	switch res.Status {
	case reconcile.StatusApplied:
		verb := "applied"
		if dryRun {
			verb = "would apply"
		}
		return appliedStyle.Render("✓ "+verb) + " " + target
	case reconcile.StatusRemoved:
		verb := "removed"
		if dryRun {
			verb = "would remove"
		}
		return removedStyle.Render("- "+verb) + " " + target
	case reconcile.StatusFailed:
		return failedStyle.Render("✗ failed") + " " + target + ": " + res.Err.Error()
	default:
		return unchangedStyle.Render("· unchanged " + target)
	}
}
