package tui

import (
	"fmt"

	"github.com/pders01/sietch/internal/state"
)

const (
	MsgNoHarvesters = "The desert is empty. Breed a harvester to begin."
	MsgNoMatches    = "No harvester on this page matches"
)

func MsgPageSummary(page, totalPages, totalCount int) string {
	if totalPages < 1 {
		totalPages = 1
	}
	noun := "harvesters"
	if totalCount == 1 {
		noun = "harvester"
	}
	return fmt.Sprintf("page %d of %d • %d %s", page, totalPages, totalCount, noun)
}

// RenderStatus colors a status line by its classification.
func (s Styles) RenderStatus(text string) string {
	if text == "" {
		return ""
	}
	switch state.Classify(text) {
	case state.StatusSuccess:
		return s.StatusOK.Render("✓ " + text)
	case state.StatusWarn:
		return s.StatusWarn.Render("! " + text)
	case state.StatusError:
		return s.StatusError.Render("✗ " + text)
	default:
		return s.StatusInfo.Render(text)
	}
}
