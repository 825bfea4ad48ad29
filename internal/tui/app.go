package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/sietch/internal/config"
	"github.com/pders01/sietch/internal/session"
	"github.com/pders01/sietch/internal/state"
	"github.com/pders01/sietch/internal/swarm"
)

// chromeHeight is the space taken by header, pager, separator, status
// and key hints.
const chromeHeight = 7

type App struct {
	ctx        context.Context
	config     *config.Config
	exec       *session.Executor
	keyHandler *KeyHandler
	palettes   map[string]Palette
	styles     Styles

	state state.State

	recordList  list.Model
	textInput   textinput.Model
	searchInput textinput.Model
	viewport    viewport.Model
	spinner     spinner.Model
	pager       paginator.Model

	view          View
	previousView  View
	renameTarget  *swarm.Record
	recycleTarget *swarm.Record

	width  int
	height int

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
	rendererDark    bool
}

// NewApp builds the TUI around exec. palettes may be nil, in which case the
// built-in ones are used.
func NewApp(ctx context.Context, exec *session.Executor, cfg *config.Config, palettes map[string]Palette) *App {
	if palettes == nil {
		palettes, _ = LoadPalettes("")
	}

	recordList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	recordList.Title = "› the swarm"
	recordList.SetShowStatusBar(false)
	recordList.SetFilteringEnabled(false)
	recordList.SetShowHelp(false)
	recordList.SetShowPagination(false)

	ti := textinput.New()
	ti.CharLimit = 0 // unlimited; the service judges names

	si := textinput.New()
	si.Placeholder = "Search this page..."
	si.CharLimit = maxSearchLength

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.TotalPages = 1

	app := &App{
		ctx:          ctx,
		config:       cfg,
		exec:         exec,
		palettes:     palettes,
		state:        state.New(cfg.API.PageSize, cfg.IsDarkTheme()),
		recordList:   recordList,
		textInput:    ti,
		searchInput:  si,
		viewport:     viewport.New(0, 0),
		spinner:      spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		pager:        pager,
		view:         ViewSwarm,
		previousView: ViewSwarm,
	}

	app.keyHandler = NewKeyHandler(app, cfg)
	app.applyTheme()

	return app
}

// State exposes the current client state, mainly for tests.
func (a *App) State() state.State { return a.state }

func (a *App) applyTheme() {
	a.styles = NewStyles(PaletteFor(a.palettes, a.state.DarkTheme))
	a.spinner.Style = a.styles.Spinner
	a.pager.ActiveDot = lipgloss.NewStyle().Foreground(a.styles.Accent).Render("•")
	a.pager.InactiveDot = lipgloss.NewStyle().Foreground(a.styles.Muted).Render("•")
	a.recordList.Styles.Title = a.styles.Title
}

// syncList mirrors the visible records and page position into the widgets.
func (a *App) syncList() {
	visible := a.state.Visible()
	items := make([]list.Item, len(visible))
	for i, r := range visible {
		items[i] = recordItem{record: r}
	}
	a.recordList.SetItems(items)

	a.pager.TotalPages = max(1, a.state.TotalPages)
	a.pager.Page = a.state.PageNumber - 1
}

// Init starts the first fetch. The program owns the alt screen.
func (a *App) Init() tea.Cmd {
	return a.dispatch(state.Mounted{})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case actionMsg:
		if msg.action == nil {
			return a, nil
		}
		return a, a.dispatch(msg.action)

	case helpRenderedMsg:
		a.viewport.SetContent(msg.content)
		a.viewport.GotoTop()
		return a, nil

	case spinner.TickMsg:
		if !a.state.Loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) resize() {
	bodyHeight := max(3, a.height-chromeHeight)
	listWidth := a.width
	if a.showChartBeside() {
		listWidth = a.width - a.chartBoxWidth() - 1
	} else {
		bodyHeight = max(3, bodyHeight-(state.ChartSize+2))
	}
	a.recordList.SetSize(listWidth, bodyHeight)

	a.viewport.Width = a.width
	a.viewport.Height = max(3, a.height-3)

	inputWidth := a.width - 12
	if inputWidth < 20 {
		inputWidth = a.width
	}
	a.textInput.Width = min(inputWidth, 60)
	a.searchInput.Width = min(inputWidth, 60)
}

func (a *App) chartBarWidth() int {
	if a.config.UI.ChartWidth > 0 {
		return a.config.UI.ChartWidth
	}
	return 30
}

// chartBoxWidth is label + bar + count + border.
func (a *App) chartBoxWidth() int {
	return 16 + a.chartBarWidth() + 10
}

func (a *App) showChartBeside() bool {
	return a.width >= 2*a.chartBoxWidth()
}

func (a *App) View() string {
	contentHeight := max(3, a.height-3)
	var content string

	switch a.view {
	case ViewSwarm:
		content = a.swarmView()
	case ViewSearch:
		content = lipgloss.JoinVertical(lipgloss.Top,
			a.styles.renderHeader("› search this page", "matches are case-insensitive", a.width),
			a.styles.renderInputFrame(a.searchInput.View(), a.searchInput.Focused(), a.searchInput.Width),
			a.listOrEmpty(),
		)
	case ViewBreed:
		content = renderCentered(a.width, contentHeight, lipgloss.JoinVertical(
			lipgloss.Center,
			a.styles.Title.Render("› breed a harvester"),
			"",
			a.styles.renderInputFrame(a.textInput.View(), true, a.textInput.Width),
			"",
			a.styles.Help.Render("Press Enter to summon, Esc to cancel"),
		))
	case ViewRename:
		current := ""
		if a.renameTarget != nil {
			current = a.renameTarget.Name
		}
		content = a.styles.renderModal(a.width, contentHeight, "✎ Rename Harvester",
			a.styles.Header,
			a.styles.Text.Render("Enter a new name for"),
			lipgloss.NewStyle().Foreground(a.styles.Highlight).Bold(true).Render(truncateEnd(current, 48)),
			"",
			a.styles.renderInputFrame(a.textInput.View(), true, a.textInput.Width),
		)
	case ViewRecycleConfirm:
		name := ""
		if a.recycleTarget != nil {
			name = a.recycleTarget.Name
		}
		content = a.styles.renderModal(a.width, contentHeight, "⚠ Recycle Harvester",
			lipgloss.NewStyle().Foreground(a.styles.Error).Bold(true),
			a.styles.Text.Render("Return this harvester's water to the tribe?"),
			"",
			lipgloss.NewStyle().Foreground(a.styles.Highlight).Bold(true).Render(truncateEnd(name, 48)),
			"",
			a.styles.MutedText.Render("The service forgets it for good."),
		)
	case ViewHelp:
		content = a.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Top,
		lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(content),
		a.styles.Separator.Render(strings.Repeat("─", max(0, a.width))),
		a.statusLine(),
		a.hintLine(),
	)
}

func (a *App) swarmView() string {
	s := a.state

	if len(s.Items) == 0 && s.TotalCount == 0 && !s.Loading && s.Status == "" {
		return renderCentered(a.width, max(3, a.height-3),
			a.styles.GetCompactBanner("Press "+a.keyHandler.chord(a.config.Keys.Bindings.Breed)+" to breed your first harvester"))
	}

	subtitle := MsgPageSummary(s.PageNumber, s.TotalPages, s.TotalCount)
	if s.SearchTerm != "" {
		subtitle += " • filter: " + s.SearchTerm
	}

	chart := a.styles.Box.Render(lipgloss.JoinVertical(lipgloss.Top,
		a.styles.Header.Render("Top names"),
		a.styles.RenderChart(s.Chart(), a.chartBarWidth()),
	))

	var body string
	if a.showChartBeside() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.listOrEmpty(), " ", chart)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Top, a.listOrEmpty(), chart)
	}

	return lipgloss.JoinVertical(lipgloss.Top,
		a.styles.renderHeader(AppName+" ›", subtitle, a.width),
		body,
		lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.pager.View()),
	)
}

func (a *App) listOrEmpty() string {
	if len(a.state.Visible()) > 0 {
		return a.recordList.View()
	}
	msg := MsgNoHarvesters
	if a.state.SearchTerm != "" {
		msg = MsgNoMatches + " \"" + a.state.SearchTerm + "\""
	} else if a.state.TotalCount > 0 {
		msg = "Nothing on this page."
	}
	return a.styles.MutedText.Padding(1, 2).Render(msg)
}

func (a *App) statusLine() string {
	var parts []string
	if a.state.Loading {
		parts = append(parts, a.spinner.View())
	}
	if st := a.styles.RenderStatus(a.state.Status); st != "" {
		parts = append(parts, st)
	}
	return lipgloss.NewStyle().Width(a.width).Padding(0, 1).Render(strings.Join(parts, " "))
}

func (a *App) hintLine() string {
	return lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Foreground(a.styles.Muted).
		Render(strings.Join(a.keyHandler.GetHelpForCurrentView(), " • "))
}
