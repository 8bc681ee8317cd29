package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"artimentor/internal/mentor"
)

// Color palette, lime accents on dark blue.
var (
	accentColor  = lipgloss.Color("#8BC34A")
	primaryColor = lipgloss.Color("#2196F3")
	errorColor   = lipgloss.Color("#e53935")
	warnColor    = lipgloss.Color("#FFC107")
	mutedColor   = lipgloss.Color("#8a93a5")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor)

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	successStyle = lipgloss.NewStyle().Foreground(accentColor)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	warnStyle    = lipgloss.NewStyle().Foreground(warnColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)

	deltaUpStyle   = lipgloss.NewStyle().Foreground(accentColor)
	deltaDownStyle = lipgloss.NewStyle().Foreground(errorColor)
)

// renderMarkdown renders AI output as terminal markdown; on renderer
// failure the raw text still gets shown.
func renderMarkdown(text string) string {
	style := glamour.WithAutoStyle()
	if userConfig != nil && userConfig.GetTheme() == "light" {
		style = glamour.WithStandardStyle("light")
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

func formatStat(v *float64, percent bool) string {
	if v == nil {
		return "-"
	}
	if percent {
		return fmt.Sprintf("%.1f%%", *v)
	}
	return fmt.Sprintf("%.0f", *v)
}

func formatDelta(v *float64, percent bool) string {
	if v == nil {
		return "-"
	}
	s := formatStat(v, percent)
	if *v > 0 {
		return deltaUpStyle.Render("+" + s)
	}
	if *v < 0 {
		return deltaDownStyle.Render(s)
	}
	return mutedStyle.Render(s)
}

// renderStatTable prints current/target/delta rows, plus benchmark
// columns when present.
func renderStatTable(rows []mentor.StatRow) string {
	hasBenchmark := false
	for _, row := range rows {
		if row.Benchmark != nil {
			hasBenchmark = true
			break
		}
	}

	var b strings.Builder
	if hasBenchmark {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %10s %10s %10s %10s %10s", "Stat", "Current", "Target", "Delta", "Top Avg", "Gap")))
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %10s %10s %10s", "Stat", "Current", "Target", "Delta")))
	}
	b.WriteString("\n")

	for _, row := range rows {
		if hasBenchmark {
			fmt.Fprintf(&b, "%-5s %10s %10s %10s %10s %10s\n",
				row.Label,
				formatStat(row.Current, row.Percent),
				formatStat(row.Target, row.Percent),
				formatDelta(row.Delta, row.Percent),
				formatStat(row.Benchmark, row.Percent),
				formatDelta(row.Gap, row.Percent))
		} else {
			fmt.Fprintf(&b, "%-5s %10s %10s %10s\n",
				row.Label,
				formatStat(row.Current, row.Percent),
				formatStat(row.Target, row.Percent),
				formatDelta(row.Delta, row.Percent))
		}
	}
	return b.String()
}

// renderSwapPlan prints swap steps as a numbered list.
func renderSwapPlan(plan []mentor.SwapStep) string {
	if len(plan) == 0 {
		return successStyle.Render("No swaps needed, the equipped build already matches the recommendation.")
	}
	var b strings.Builder
	for i, step := range plan {
		fmt.Fprintf(&b, "%d. %s\n", i+1, headerStyle.Render(step.Slot))
		fmt.Fprintf(&b, "   from: %s\n", step.From)
		fmt.Fprintf(&b, "   to:   %s\n", successStyle.Render(step.To))
		fmt.Fprintf(&b, "   %s\n", mutedStyle.Render(step.Reason))
	}
	return b.String()
}
