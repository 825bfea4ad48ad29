package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/sietch/internal/config"
	"github.com/pders01/sietch/internal/state"
	"github.com/pders01/sietch/internal/swarm"
)

const maxSearchLength = 64

type KeyHandler struct {
	app         *App
	bindings    config.KeyBindings
	modifierKey string
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifierKey := ""
	if cfg.Keys.Modifier != "" {
		modifierKey = cfg.Keys.Modifier + "+"
	}
	return &KeyHandler{app: app, bindings: cfg.Keys.Bindings, modifierKey: modifierKey}
}

// chord is a binding that needs the modifier, e.g. ctrl+n.
func (kh *KeyHandler) chord(binding string) string {
	return kh.modifierKey + binding
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return kh.app, tea.Quit
	}

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	switch kh.app.view {
	case ViewRecycleConfirm:
		return kh.handleRecycleConfirmKeys(key)
	case ViewHelp:
		return kh.handleHelpKeys(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(key); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.view {
	case ViewBreed, ViewRename:
		return kh.app.textInput.Focused()
	case ViewSearch:
		return kh.app.searchInput.Focused()
	default:
		return false
	}
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case kh.bindings.Back:
		return kh.navigateBack()
	case "enter":
		return kh.handleTextInputEnter()
	default:
		return kh.delegateToTextInput(msg)
	}
}

func (kh *KeyHandler) handleTextInputEnter() (tea.Model, tea.Cmd) {
	a := kh.app
	switch a.view {
	case ViewBreed:
		a.view = ViewSwarm
		a.textInput.Blur()
		return a, a.dispatch(state.BreedSubmitted{Name: a.textInput.Value()})

	case ViewRename:
		target := a.renameTarget
		a.view = ViewSwarm
		a.renameTarget = nil
		a.textInput.Blur()
		if target == nil {
			return a, nil
		}
		return a, a.dispatch(state.RenameSubmitted{
			ID:       target.ID,
			Current:  target.Name,
			NewName:  a.textInput.Value(),
			Accepted: true,
		})

	case ViewSearch:
		// Keep the filter and return to the list.
		a.view = ViewSwarm
		a.searchInput.Blur()
		return a, nil
	}
	return a, nil
}

// delegateToTextInput passes the key to the focused input and mirrors the
// value into state where state owns it.
func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch a.view {
	case ViewBreed:
		var cmd tea.Cmd
		a.textInput, cmd = a.textInput.Update(msg)
		if v := a.textInput.Value(); v != a.state.Draft {
			return a, tea.Batch(cmd, a.dispatch(state.DraftChanged{Text: v}))
		}
		return a, cmd

	case ViewRename:
		var cmd tea.Cmd
		a.textInput, cmd = a.textInput.Update(msg)
		return a, cmd

	case ViewSearch:
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		if term := sanitizeSearchInput(a.searchInput.Value()); term != a.state.SearchTerm {
			return a, tea.Batch(cmd, a.dispatch(state.SearchChanged{Term: term}))
		}
		return a, cmd
	}
	return a, nil
}

// handleCustomKeys handles the swarm view's action keys.
func (kh *KeyHandler) handleCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	b := kh.bindings

	switch key {
	case b.Quit:
		return a, tea.Quit, true
	case b.Back:
		model, cmd := kh.navigateBack()
		return model, cmd, true
	case b.Help:
		a.previousView = a.view
		a.view = ViewHelp
		return a, a.renderHelp(), true
	case b.NextPage:
		return a, a.dispatch(state.NextPage{}), true
	case b.PrevPage:
		return a, a.dispatch(state.PrevPage{}), true
	case "home":
		return a, a.dispatch(state.FirstPage{}), true
	case "end":
		return a, a.dispatch(state.LastPage{}), true
	case kh.chord(b.Refresh):
		return a, a.dispatch(state.Refresh{}), true
	case kh.chord(b.Theme):
		return a, a.dispatch(state.ThemeToggled{}), true
	case kh.chord(b.Search):
		model, cmd := kh.enterSearchMode()
		return model, cmd, true
	case kh.chord(b.Breed):
		a.view = ViewBreed
		a.textInput.Placeholder = "Name your harvester..."
		a.textInput.SetValue(a.state.Draft)
		a.textInput.CursorEnd()
		return a, a.textInput.Focus(), true
	case kh.chord(b.Rename):
		if rec, ok := a.selectedRecord(); ok {
			a.renameTarget = &rec
			a.view = ViewRename
			a.textInput.Placeholder = "New name..."
			a.textInput.SetValue(rec.Name)
			a.textInput.CursorEnd()
			return a, a.textInput.Focus(), true
		}
		return a, nil, true
	case kh.chord(b.Recycle):
		if rec, ok := a.selectedRecord(); ok {
			a.recycleTarget = &rec
			a.view = ViewRecycleConfirm
		}
		return a, nil, true
	}
	return a, nil, false
}

// delegateToCharm lets the list handle cursor movement.
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	kh.app.recordList, cmd = kh.app.recordList.Update(msg)
	return kh.app, cmd
}

func (kh *KeyHandler) handleRecycleConfirmKeys(key string) (tea.Model, tea.Cmd) {
	a := kh.app
	var confirmed bool
	switch key {
	case "enter", "y", "Y":
		confirmed = true
	case kh.bindings.Back, "n", "N", kh.bindings.Quit:
		confirmed = false
	default:
		return a, nil
	}

	target := a.recycleTarget
	a.recycleTarget = nil
	a.view = ViewSwarm
	if target == nil {
		return a, nil
	}
	return a, a.dispatch(state.RecycleSubmitted{ID: target.ID, Confirmed: confirmed})
}

func (kh *KeyHandler) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case kh.bindings.Back, kh.bindings.Help, kh.bindings.Quit:
		kh.app.view = kh.app.previousView
		return kh.app, nil
	}
	var cmd tea.Cmd
	kh.app.viewport, cmd = kh.app.viewport.Update(msg)
	return kh.app, cmd
}

// navigateBack leaves the current view. Backing out of a prompt answers it
// negatively; in the swarm view it clears the filter first, then quits.
func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	a := kh.app
	switch a.view {
	case ViewBreed:
		// The draft stays in state for the next visit.
		a.view = ViewSwarm
		a.textInput.Blur()
		return a, nil

	case ViewRename:
		target := a.renameTarget
		a.view = ViewSwarm
		a.renameTarget = nil
		a.textInput.Blur()
		if target == nil {
			return a, nil
		}
		return a, a.dispatch(state.RenameSubmitted{ID: target.ID, Current: target.Name, Accepted: false})

	case ViewSearch:
		a.view = ViewSwarm
		a.searchInput.Reset()
		a.searchInput.Blur()
		return a, a.dispatch(state.SearchChanged{Term: ""})

	case ViewSwarm:
		if a.state.SearchTerm != "" {
			a.searchInput.Reset()
			return a, a.dispatch(state.SearchChanged{Term: ""})
		}
		return a, tea.Quit

	default:
		a.view = ViewSwarm
		return a, nil
	}
}

func (kh *KeyHandler) enterSearchMode() (tea.Model, tea.Cmd) {
	a := kh.app
	a.previousView = a.view
	a.view = ViewSearch
	a.searchInput.SetValue(a.state.SearchTerm)
	a.searchInput.CursorEnd()
	return a, a.searchInput.Focus()
}

// sanitizeSearchInput collapses whitespace and bounds the term length.
func sanitizeSearchInput(input string) string {
	input = strings.Join(strings.Fields(input), " ")
	if r := []rune(input); len(r) > maxSearchLength {
		input = string(r[:maxSearchLength])
	}
	return input
}

// GetHelpForCurrentView returns the key hints shown in the status bar.
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	b := kh.bindings
	switch kh.app.view {
	case ViewSwarm:
		help := []string{kh.chord(b.Breed) + ": breed", kh.chord(b.Search) + ": search"}
		if len(kh.app.state.Visible()) > 0 {
			help = append(help, kh.chord(b.Rename)+": rename", kh.chord(b.Recycle)+": recycle")
		}
		help = append(help,
			b.PrevPage+"/"+b.NextPage+": page",
			kh.chord(b.Theme)+": theme",
			b.Help+": help",
			b.Quit+": quit",
		)
		return help
	case ViewBreed:
		return []string{"enter: summon", b.Back + ": cancel"}
	case ViewSearch:
		return []string{"enter: keep filter", b.Back + ": clear"}
	case ViewRename:
		return []string{"enter: rename", b.Back + ": cancel"}
	case ViewRecycleConfirm:
		return []string{"enter/y: confirm", b.Back + "/n: cancel"}
	case ViewHelp:
		return []string{"↑/↓: scroll", b.Back + ": back"}
	default:
		return []string{}
	}
}

// selectedRecord is the record under the list cursor.
func (a *App) selectedRecord() (swarm.Record, bool) {
	if i, ok := a.recordList.SelectedItem().(recordItem); ok {
		return i.record, true
	}
	return swarm.Record{}, false
}
