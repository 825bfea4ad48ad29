package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/sietch/internal/config"
	"github.com/pders01/sietch/internal/session"
	"github.com/pders01/sietch/internal/state"
	"github.com/pders01/sietch/internal/swarm"
)

type stubRemote struct {
	records []swarm.Record
	calls   []string
	fail    error
}

func (r *stubRemote) ListPage(_ context.Context, page, limit int) (*swarm.Page, error) {
	r.calls = append(r.calls, fmt.Sprintf("list %d", page))
	start := min((page-1)*limit, len(r.records))
	end := min(start+limit, len(r.records))
	return &swarm.Page{
		Number:     page,
		Items:      append([]swarm.Record{}, r.records[start:end]...),
		TotalPages: (len(r.records) + limit - 1) / limit,
		TotalCount: len(r.records),
	}, nil
}

func (r *stubRemote) Breed(_ context.Context, req swarm.BreedRequest) error {
	r.calls = append(r.calls, "breed "+req.Name)
	if r.fail != nil {
		return r.fail
	}
	r.records = append(r.records, swarm.Record{ID: fmt.Sprintf("w%d", len(r.records)+1), Name: req.Name})
	return nil
}

func (r *stubRemote) Rename(_ context.Context, id, name string) error {
	r.calls = append(r.calls, "rename "+id+" "+name)
	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].Name = name
		}
	}
	return r.fail
}

func (r *stubRemote) Recycle(_ context.Context, id string) error {
	r.calls = append(r.calls, "recycle "+id)
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			break
		}
	}
	return r.fail
}

func newStubRemote(names ...string) *stubRemote {
	r := &stubRemote{}
	for i, n := range names {
		r.records = append(r.records, swarm.Record{ID: fmt.Sprintf("w%d", i+1), Name: n})
	}
	return r
}

// drain runs cmd and feeds action outcomes back into the app until
// nothing is left to do. Other messages (ticks, screen control) are dropped.
func drain(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(app, c)
		}
	case actionMsg, helpRenderedMsg:
		_, next := app.Update(msg)
		drain(app, next)
	}
}

func newTestApp(t *testing.T, remote *stubRemote) *App {
	t.Helper()
	return newTestAppWithConfig(t, remote, config.TestConfig())
}

func newTestAppWithConfig(t *testing.T, remote *stubRemote, cfg *config.Config) *App {
	t.Helper()
	app := NewApp(context.Background(), session.NewExecutor(remote), cfg, nil)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	drain(app, app.Init())
	remote.calls = nil
	return app
}

func press(app *App, msgs ...tea.KeyMsg) {
	for _, m := range msgs {
		_, cmd := app.Update(m)
		drain(app, cmd)
	}
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestInitLoadsFirstPage(t *testing.T) {
	remote := newStubRemote("Shai-Hulud", "Maker", "Shai-Hulud")
	app := NewApp(context.Background(), session.NewExecutor(remote), config.TestConfig(), nil)

	drain(app, app.Init())

	assert.Equal(t, []string{"list 1"}, remote.calls)
	assert.Len(t, app.State().Items, 3)
	assert.Len(t, app.recordList.Items(), 3)
	assert.False(t, app.State().Loading)
}

func TestInitLeavesScreenModeToTheProgram(t *testing.T) {
	app := NewApp(context.Background(), session.NewExecutor(newStubRemote()), config.TestConfig(), nil)

	var kinds []string
	var collect func(tea.Cmd)
	collect = func(cmd tea.Cmd) {
		if cmd == nil {
			return
		}
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				collect(c)
			}
			return
		}
		kinds = append(kinds, fmt.Sprintf("%T", msg))
	}
	collect(app.Init())

	require.NotEmpty(t, kinds)
	for _, k := range kinds {
		assert.NotContains(t, strings.ToLower(k), "altscreen")
	}
}

func TestViewStateTransitions(t *testing.T) {
	tests := []struct {
		name         string
		initialView  View
		msg          tea.KeyMsg
		expectedView View
	}{
		{"swarm to breed on ctrl+n", ViewSwarm, tea.KeyMsg{Type: tea.KeyCtrlN}, ViewBreed},
		{"breed to swarm on esc", ViewBreed, keyEsc, ViewSwarm},
		{"swarm to search on ctrl+s", ViewSwarm, tea.KeyMsg{Type: tea.KeyCtrlS}, ViewSearch},
		{"search to swarm on esc", ViewSearch, keyEsc, ViewSwarm},
		{"swarm to rename on ctrl+e", ViewSwarm, tea.KeyMsg{Type: tea.KeyCtrlE}, ViewRename},
		{"swarm to recycle confirm on ctrl+x", ViewSwarm, tea.KeyMsg{Type: tea.KeyCtrlX}, ViewRecycleConfirm},
		{"recycle confirm to swarm on esc", ViewRecycleConfirm, keyEsc, ViewSwarm},
		{"swarm to help on ?", ViewSwarm, typeText("?"), ViewHelp},
		{"help to swarm on esc", ViewHelp, keyEsc, ViewSwarm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, newStubRemote("Shai-Hulud"))
			app.view = tt.initialView
			if tt.initialView == ViewBreed {
				app.textInput.Focus()
			}
			if tt.initialView == ViewSearch {
				app.searchInput.Focus()
			}

			press(app, tt.msg)

			assert.Equal(t, tt.expectedView, app.view)
		})
	}
}

func TestBreedFlow(t *testing.T) {
	remote := newStubRemote("Maker")
	app := newTestApp(t, remote)

	press(app, tea.KeyMsg{Type: tea.KeyCtrlN}, typeText("Shai-Hulud"))
	assert.Equal(t, "Shai-Hulud", app.State().Draft, "typing mirrors the draft into state")

	press(app, keyEnter)

	assert.Equal(t, []string{"breed Shai-Hulud", "list 1"}, remote.calls)
	assert.Equal(t, ViewSwarm, app.view)
	st := app.State()
	assert.Empty(t, st.Draft)
	assert.Equal(t, state.MsgBred, st.Status)
	assert.Len(t, st.Items, 2)
	assert.False(t, st.Loading)
}

func TestBreedRejectsEmptyName(t *testing.T) {
	remote := newStubRemote()
	app := newTestApp(t, remote)

	press(app, tea.KeyMsg{Type: tea.KeyCtrlN}, typeText("   "), keyEnter)

	assert.Empty(t, remote.calls)
	assert.Equal(t, state.StatusWarn, app.State().Kind())
}

func TestBreedFailureKeepsDraft(t *testing.T) {
	remote := newStubRemote("Maker")
	remote.fail = &swarm.RemoteError{StatusCode: 500, Message: "sandstorm"}
	app := newTestApp(t, remote)

	press(app, tea.KeyMsg{Type: tea.KeyCtrlN}, typeText("Shai-Hulud"), keyEnter)

	assert.Equal(t, []string{"breed Shai-Hulud"}, remote.calls)
	assert.Equal(t, "Shai-Hulud", app.State().Draft)
	assert.Equal(t, "FAILURE: sandstorm", app.State().Status)

	press(app, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, "Shai-Hulud", app.textInput.Value(), "reopening breed restores the draft")
}

func TestRenameFlow(t *testing.T) {
	t.Run("enter renames and refetches", func(t *testing.T) {
		remote := newStubRemote("Shai-Hulud")
		app := newTestApp(t, remote)

		press(app, tea.KeyMsg{Type: tea.KeyCtrlE})
		assert.Equal(t, "Shai-Hulud", app.textInput.Value(), "prompt is seeded with the current name")

		press(app, typeText(" II"), keyEnter)

		assert.Equal(t, []string{"rename w1 Shai-Hulud II", "list 1"}, remote.calls)
		assert.Equal(t, "Shai-Hulud II", app.State().Items[0].Name)
	})

	t.Run("esc cancels", func(t *testing.T) {
		remote := newStubRemote("Shai-Hulud")
		app := newTestApp(t, remote)

		press(app, tea.KeyMsg{Type: tea.KeyCtrlE}, typeText(" II"), keyEsc)

		assert.Empty(t, remote.calls)
		assert.Equal(t, ViewSwarm, app.view)
	})

	t.Run("unchanged name is a no-op", func(t *testing.T) {
		remote := newStubRemote("Shai-Hulud")
		app := newTestApp(t, remote)

		press(app, tea.KeyMsg{Type: tea.KeyCtrlE}, keyEnter)

		assert.Empty(t, remote.calls)
	})
}

func TestRecycleConfirm(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		remote := newStubRemote("Shai-Hulud", "Maker")
		app := newTestApp(t, remote)

		press(app, tea.KeyMsg{Type: tea.KeyCtrlX}, typeText("y"))

		assert.Equal(t, []string{"recycle w1", "list 1"}, remote.calls)
		assert.Len(t, app.State().Items, 1)
		assert.Equal(t, state.MsgRecycled, app.State().Status)
	})

	t.Run("declined", func(t *testing.T) {
		remote := newStubRemote("Shai-Hulud")
		app := newTestApp(t, remote)

		press(app, tea.KeyMsg{Type: tea.KeyCtrlX}, typeText("n"))

		assert.Empty(t, remote.calls)
		assert.Nil(t, app.recycleTarget)
		assert.Equal(t, ViewSwarm, app.view)
	})

	t.Run("other keys keep the prompt open", func(t *testing.T) {
		app := newTestApp(t, newStubRemote("Shai-Hulud"))

		press(app, tea.KeyMsg{Type: tea.KeyCtrlX}, typeText("z"))

		assert.Equal(t, ViewRecycleConfirm, app.view)
	})
}

func TestSearchFiltersLoadedPage(t *testing.T) {
	remote := newStubRemote("Shai-Hulud", "Maker", "Old Man")
	app := newTestApp(t, remote)

	press(app, tea.KeyMsg{Type: tea.KeyCtrlS}, typeText("MAK"))

	assert.Equal(t, "MAK", app.State().SearchTerm)
	require.Len(t, app.recordList.Items(), 1)
	assert.Equal(t, "Maker", app.recordList.Items()[0].(recordItem).record.Name)
	assert.Empty(t, remote.calls, "search never reaches the service")

	press(app, keyEnter)
	assert.Equal(t, ViewSwarm, app.view)
	assert.Equal(t, "MAK", app.State().SearchTerm, "enter keeps the filter")

	press(app, keyEsc)
	assert.Empty(t, app.State().SearchTerm, "esc in the list clears the filter")
	assert.Len(t, app.recordList.Items(), 3)
}

func TestPagingKeys(t *testing.T) {
	names := make([]string, 12)
	for i := range names {
		names[i] = fmt.Sprintf("worm-%d", i)
	}
	remote := newStubRemote(names...)
	app := newTestApp(t, remote)

	press(app, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Empty(t, remote.calls, "no page before the first")

	press(app, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, app.State().PageNumber)
	assert.Equal(t, 1, app.pager.Page)

	press(app, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 3, app.State().PageNumber)
	assert.Len(t, app.State().Items, 2)

	press(app, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, []string{"list 2", "list 3", "list 1"}, remote.calls)
}

func TestThemeToggle(t *testing.T) {
	app := newTestApp(t, newStubRemote("Shai-Hulud"))
	require.True(t, app.State().DarkTheme)
	dark := app.styles

	press(app, tea.KeyMsg{Type: tea.KeyCtrlT})

	assert.False(t, app.State().DarkTheme)
	assert.NotEqual(t, dark.Accent, app.styles.Accent)
}

func TestHelpRendersBindings(t *testing.T) {
	app := newTestApp(t, newStubRemote("Shai-Hulud"))

	press(app, typeText("?"))

	require.Equal(t, ViewHelp, app.view)
	assert.NotEmpty(t, strings.TrimSpace(app.viewport.View()))
}

func TestViewRendersListChartAndStatus(t *testing.T) {
	app := newTestApp(t, newStubRemote("Shai-Hulud", "Maker", "Shai-Hulud"))
	app.state.Status = state.MsgBred

	out := app.View()

	assert.Contains(t, out, "Shai-Hulud")
	assert.Contains(t, out, "Top names")
	assert.Contains(t, out, "page 1 of 1")
	assert.Contains(t, out, "BLESS THE MAKER")
	assert.Contains(t, out, "█")
}

func TestViewEmptySwarmShowsBanner(t *testing.T) {
	app := newTestApp(t, newStubRemote())

	assert.Contains(t, app.View(), "breed your first harvester")
}
