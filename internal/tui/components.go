package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/sietch/internal/state"
)

// renderHeader returns a consistently styled header with an optional muted subtitle.
func (s Styles) renderHeader(title, subtitle string, width int) string {
	rows := []string{s.Header.Render(truncateEnd(title, width-2))}
	if subtitle != "" {
		rows = append(rows, s.MutedText.Render(truncateEnd(subtitle, width-2)))
	}
	return lipgloss.JoinVertical(lipgloss.Top, rows...)
}

// renderInputFrame draws a rounded bordered container around a rendered input view.
func (s Styles) renderInputFrame(inputView string, focused bool, contentWidth int) string {
	borderColor := s.Muted
	if focused {
		borderColor = s.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(contentWidth + 4).
		Render(inputView)
}

func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// RenderChart draws one horizontal bar per name, scaled so the most
// frequent name fills barWidth cells.
func (s Styles) RenderChart(counts []state.NameCount, barWidth int) string {
	if len(counts) == 0 {
		return s.MutedText.Render("no names to chart")
	}
	if barWidth < 1 {
		barWidth = 1
	}

	labelWidth := 0
	for _, c := range counts {
		labelWidth = max(labelWidth, lipgloss.Width(truncateEnd(c.Name, 16)))
	}
	peak := counts[0].Count

	rows := make([]string, 0, len(counts))
	for _, c := range counts {
		n := max(1, c.Count*barWidth/peak)
		label := padRight(truncateEnd(c.Name, 16), labelWidth)
		rows = append(rows, fmt.Sprintf("%s %s %s",
			s.BarLabel.Render(label),
			s.Bar.Render(strings.Repeat("█", n)),
			s.MutedText.Render(fmt.Sprint(c.Count)),
		))
	}
	return strings.Join(rows, "\n")
}

// renderModal centers a titled prompt box on screen.
func (s Styles) renderModal(width, height int, title string, titleStyle lipgloss.Style, body ...string) string {
	modalWidth := max(20, min(60, width*4/5))
	rows := []string{titleStyle.Render(title), ""}
	for _, b := range body {
		rows = append(rows, lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Center).Render(b))
	}
	return renderCentered(width, height, lipgloss.JoinVertical(lipgloss.Center, rows...))
}
