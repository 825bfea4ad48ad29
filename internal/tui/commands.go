package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/sietch/internal/state"
)

// runEffect performs eff off the event loop; its outcome comes back as an
// actionMsg.
func (a *App) runEffect(eff state.Effect) tea.Cmd {
	exec, ctx := a.exec, a.ctx
	return func() tea.Msg {
		return actionMsg{action: exec.Run(ctx, eff)}
	}
}

// dispatch reduces act into the app state and schedules the effect, if any.
func (a *App) dispatch(act state.Action) tea.Cmd {
	wasDark := a.state.DarkTheme
	next, eff := state.Reduce(a.state, act)
	a.state = next

	if next.DarkTheme != wasDark {
		a.applyTheme()
	}
	a.syncList()

	if eff == nil {
		return nil
	}
	return tea.Batch(a.runEffect(eff), a.spinner.Tick)
}

func (a *App) renderHelp() tea.Cmd {
	markdown := a.keyHandler.helpMarkdown()
	r, err := a.getRenderer()
	return func() tea.Msg {
		if err != nil {
			return helpRenderedMsg{content: markdown}
		}
		out, err := r.Render(markdown)
		if err != nil {
			return helpRenderedMsg{content: markdown}
		}
		return helpRenderedMsg{content: out}
	}
}
