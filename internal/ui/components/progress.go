package components

import (
	"fmt"
	"image/color"
	"time"

	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbit/internal/ui/theme"
)

// warnBelow is the fraction of time left at which the countdown turns amber.
const warnBelow = 0.25

// ProgressBar displays a labelled horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Color       color.Color
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Color:       theme.Secondary,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := p.Width - lipgloss.Width(result) - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}
	bar := progress.New(
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
		progress.WithColors(fill),
	)
	bar.EmptyColor = theme.Border

	result += bar.ViewAs(clamp(p.Percent))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(clamp(p.Percent)*100)))
	}
	return result
}

// CountdownBar renders the time left on a question as a draining bar
// followed by the remaining whole seconds.
func CountdownBar(remaining, limit time.Duration, width int) string {
	frac := 0.0
	if limit > 0 {
		frac = float64(remaining) / float64(limit)
	}

	var fill color.Color = theme.Secondary
	if frac <= warnBelow {
		fill = theme.Warning
	}

	secs := int((remaining + time.Second - 1) / time.Second)
	bar := ProgressBar{
		Label:   fmt.Sprintf("⏱ %2ds", secs),
		Percent: frac,
		Width:   width,
		Color:   fill,
	}
	return bar.View()
}

func clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
