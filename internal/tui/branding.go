package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "sietch"

// LogoLines is the block-letter wordmark.
var LogoLines = []string{
	"▄▀▀▀ ▀█▀ █▀▀▀ ▀█▀ ▄▀▀▀ █  █",
	" ▀▀▄  █  █▀▀   █  █    █▀▀█",
	"▄▄▄▀ ▄█▄ █▄▄▄  █  ▀▄▄▄ █  █",
}

const CompactLogo = `sietch ›`

// Banner gradient colors: dusk over the dunes.
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#E9A23B"),
	lipgloss.Color("#D9822B"),
	lipgloss.Color("#C2B280"),
	lipgloss.Color("#4FA3D1"),
}

// GetCompactBanner renders the logo above a hint line.
func (s Styles) GetCompactBanner(message string) string {
	coloredLines := make([]string, 0, len(LogoLines))
	for i, line := range LogoLines {
		style := lipgloss.NewStyle().Foreground(BannerColors[i%len(BannerColors)]).Bold(true)
		coloredLines = append(coloredLines, style.Render(line))
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, coloredLines...),
		"",
		s.Help.Render(message),
	)
}

// ShowBanner prints the framed logo and version tagline to w.
func ShowBanner(w io.Writer, version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)

	tagline := "Harvester Swarm Client"
	if version != "" && version != "dev" {
		if version[0] != 'v' && version[0] != 'V' {
			version = "v" + version
		}
		tagline = fmt.Sprintf("%s %s", tagline, version)
	}
	lines = append(lines, tagline)

	coloredLines := make([]string, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(i < len(LogoLines))
		coloredLines = append(coloredLines, style.Render(line))
	}

	border := lipgloss.Border{
		Top:         "═",
		Bottom:      "═",
		Left:        "║",
		Right:       "║",
		TopLeft:     "╔",
		TopRight:    "╗",
		BottomLeft:  "╚",
		BottomRight: "╝",
	}

	framed := lipgloss.NewStyle().
		Border(border).
		BorderForeground(BannerColors[len(BannerColors)-1]).
		Padding(1, 3).
		MarginTop(1).
		Render(lipgloss.JoinVertical(lipgloss.Center, coloredLines...))

	centered := lipgloss.NewStyle().Width(60).Align(lipgloss.Center)
	fmt.Fprintln(w, centered.Render(framed))
	fmt.Fprintln(w, centered.MarginBottom(1).Render(
		lipgloss.NewStyle().Foreground(BannerColors[0]).Render("∿ ∿ ∿ ∿ ∿"),
	))
}
