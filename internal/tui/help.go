package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// helpMarkdown documents the active key bindings.
func (kh *KeyHandler) helpMarkdown() string {
	b := kh.bindings
	rows := [][2]string{
		{kh.chord(b.Breed), "breed a new harvester"},
		{kh.chord(b.Rename), "rename the selected harvester"},
		{kh.chord(b.Recycle), "recycle the selected harvester"},
		{kh.chord(b.Search), "filter the current page by name"},
		{kh.chord(b.Refresh), "refetch the current page"},
		{kh.chord(b.Theme), "toggle dark and light palettes"},
		{b.PrevPage + " / " + b.NextPage, "previous / next page"},
		{"home / end", "first / last page"},
		{b.Back, "close a prompt, clear the filter, or quit"},
		{b.Quit, "quit"},
	}

	var sb strings.Builder
	sb.WriteString("# sietch\n\n")
	sb.WriteString("Every change is sent to the swarm service, then the page is fetched again. ")
	sb.WriteString("Search only looks at the page on screen.\n\n")
	sb.WriteString("## Keys\n\n| key | action |\n|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", r[0], r[1])
	}
	sb.WriteString("\n## Status line\n\n")
	sb.WriteString("- **BLESS THE MAKER**: the service accepted the change\n")
	sb.WriteString("- **WARNING**: the input was rejected before sending\n")
	sb.WriteString("- **FAILURE**: the service or the network refused\n")
	return sb.String()
}

// getRenderer caches a glamour renderer for the current width and theme.
func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := min(100, max(20, a.width*9/10))
	dark := a.state.DarkTheme

	if a.glamourRenderer == nil || a.rendererWidth != wordWrapWidth || a.rendererDark != dark {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(themeName(dark)),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
		a.rendererDark = dark
	}
	return a.glamourRenderer, nil
}
