package tui

import "github.com/charmbracelet/lipgloss"

// truncateEnd shortens s to at most limit runes, ending in an ellipsis when
// anything was cut.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}

// shortID keeps both ends of a service id, which is where ids differ.
func shortID(id string, limit int) string {
	r := []rune(id)
	if limit <= 0 || len(r) <= limit {
		return id
	}
	if limit < 3 {
		return string(r[:limit])
	}
	left := (limit - 1) / 2
	right := limit - 1 - left
	return string(r[:left]) + "…" + string(r[len(r)-right:])
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	b := make([]byte, width-w)
	for i := range b {
		b[i] = ' '
	}
	return s + string(b)
}
