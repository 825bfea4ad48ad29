package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pders01/sietch/internal/search"
	"github.com/pders01/sietch/internal/state"
	"github.com/pders01/sietch/internal/storage"
	"github.com/pders01/sietch/internal/tui"
)

// printer renders command output with the configured theme.
type printer struct {
	w          io.Writer
	styles     tui.Styles
	chartWidth int
}

func newPrinter(w io.Writer, rt *runtime) *printer {
	return &printer{
		w:          w,
		styles:     tui.NewStyles(tui.PaletteFor(rt.palettes, rt.cfg.IsDarkTheme())),
		chartWidth: rt.cfg.UI.ChartWidth,
	}
}

func (p *printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) status(s string) {
	p.println(p.styles.RenderStatus(s))
}

func (p *printer) table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(p.styles.Muted)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.styles.Header.Padding(0, 1)
			}
			return p.styles.Text.Padding(0, 1)
		}).
		String()
}

func (p *printer) page(st state.State) {
	if st.Status != "" && st.Kind() == state.StatusError {
		p.status(st.Status)
	}

	visible := st.Visible()
	switch {
	case len(visible) > 0:
		rows := make([][]string, len(visible))
		for i, r := range visible {
			rows[i] = []string{r.ID, r.Name}
		}
		p.println(p.table([]string{"ID", "NAME"}, rows))
	case st.SearchTerm != "":
		p.println(p.styles.MutedText.Render(fmt.Sprintf("%s %q", tui.MsgNoMatches, st.SearchTerm)))
	case st.TotalCount == 0:
		p.println(p.styles.MutedText.Render(tui.MsgNoHarvesters))
	}

	summary := tui.MsgPageSummary(st.PageNumber, st.TotalPages, st.TotalCount)
	if st.SearchTerm != "" {
		summary += " • filter: " + st.SearchTerm
	}
	p.println(p.styles.Help.Render(summary))
}

func (p *printer) chart(counts []state.NameCount) {
	width := p.chartWidth
	if width <= 0 {
		width = 30
	}
	p.println(p.styles.Box.Render(lipgloss.JoinVertical(lipgloss.Top,
		p.styles.Header.Render("Top names"),
		p.styles.RenderChart(counts, width),
	)))
}

func (p *printer) entries(entries []*storage.Entry) {
	if len(entries) == 0 {
		p.println(p.styles.MutedText.Render("The journal is empty."))
		return
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = append([]string{e.ID}, entryRow(e)...)
	}
	p.println(p.table([]string{"ENTRY", "WHEN", "OP", "ID", "NAME", "OUTCOME"}, rows))
}

func (p *printer) results(query string, results []*search.Result) {
	if len(results) == 0 {
		p.println(p.styles.MutedText.Render(fmt.Sprintf("No journal entries match %q", query)))
		return
	}
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = append([]string{r.Entry.ID}, entryRow(r.Entry)...)
	}
	p.println(p.table([]string{"ENTRY", "WHEN", "OP", "ID", "NAME", "OUTCOME"}, rows))
}

func (p *printer) entry(e *storage.Entry) {
	rows := [][]string{
		{"id", e.ID},
		{"when", e.Timestamp.Local().Format("2006-01-02 15:04:05")},
		{"op", string(e.Op)},
		{"record", e.RecordID},
		{"name", e.Name},
		{"alignment", e.Alignment},
		{"outcome", e.Outcome()},
		{"message", e.Message},
	}
	p.println(p.table([]string{"FIELD", "VALUE"}, rows))
}

func (p *printer) journalStats(s journalStats) {
	if s.entries < 0 {
		return
	}
	line := fmt.Sprintf("%d entries in the journal", s.entries)
	if s.indexed >= 0 {
		line += fmt.Sprintf(" • %d indexed", s.indexed)
	}
	p.println(p.styles.Help.Render(line))
}

func entryRow(e *storage.Entry) []string {
	outcome := e.Outcome()
	if !e.OK && e.Message != "" {
		outcome += ": " + strings.TrimSpace(e.Message)
	}
	return []string{
		e.Timestamp.Local().Format("2006-01-02 15:04:05"),
		string(e.Op),
		e.RecordID,
		e.Name,
		outcome,
	}
}
