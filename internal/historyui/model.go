// Package historyui provides the Bubble Tea run history browser.
package historyui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sysyrt/internal/model"
	"github.com/verte-zerg/sysyrt/internal/stats"
	"github.com/verte-zerg/sysyrt/internal/store"
)

const (
	focusRuns = iota
	focusDetail
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	focusedPaneStyle = paneStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the history browser.
type Model struct {
	store  *store.Store
	cfg    model.HistoryConfig
	report stats.Report
	errMsg string

	width  int
	height int
	focus  int

	runs   table.Model
	detail viewport.Model
}

// NewModel loads the report for cfg and constructs the browser.
func NewModel(st *store.Store, cfg model.HistoryConfig) *Model {
	m := &Model{
		store:  st,
		cfg:    cfg,
		runs:   newRunsTable(),
		detail: viewport.New(0, 0),
	}
	m.refreshReport()
	return m
}

// NewModelFromReport constructs the browser over an already built report.
func NewModelFromReport(report stats.Report) *Model {
	m := &Model{
		runs:   newRunsTable(),
		detail: viewport.New(0, 0),
	}
	m.setReport(report)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.toggleFocus()
			return m, nil
		case "r":
			m.refreshReport()
			m.updateLayout()
			return m, nil
		}
		var cmd tea.Cmd
		if m.focus == focusDetail {
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		prev := m.runs.Cursor()
		m.runs, cmd = m.runs.Update(msg)
		if m.runs.Cursor() != prev {
			m.renderDetail()
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	title := titleStyle.Render(fmt.Sprintf("sysyrt history: %d runs", len(m.report.Runs)))
	runsPane, detailPane := paneStyle, paneStyle
	if m.focus == focusRuns {
		runsPane = focusedPaneStyle
	} else {
		detailPane = focusedPaneStyle
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		runsPane.Render(m.runs.View()),
		detailPane.Render(m.detail.View()),
	)
	footer := helpStyle.Render("up/down: select  tab: switch pane  r: reload  q: quit")
	if m.errMsg != "" {
		footer = errorStyle.Render(m.errMsg) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
}

// SelectedRun returns the run under the cursor.
func (m *Model) SelectedRun() (model.Run, bool) {
	runs := m.report.Runs
	if len(runs) == 0 {
		return model.Run{}, false
	}
	// Rows are listed newest first.
	idx := len(runs) - 1 - m.runs.Cursor()
	if idx < 0 || idx >= len(runs) {
		return model.Run{}, false
	}
	return runs[idx], true
}

func (m *Model) toggleFocus() {
	if m.focus == focusRuns {
		m.focus = focusDetail
		m.runs.Blur()
		return
	}
	m.focus = focusRuns
	m.runs.Focus()
}

func (m *Model) refreshReport() {
	if m.store == nil {
		return
	}
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load history: %v", err)
		return
	}
	m.errMsg = ""
	m.setReport(report)
}

func (m *Model) setReport(report stats.Report) {
	m.report = report
	rows := stats.RunRows(report.Runs)
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[len(rows)-1-i] = table.Row(row)
	}
	m.runs.SetRows(tableRows)
	m.runs.SetCursor(0)
	m.renderDetail()
}

func (m *Model) renderDetail() {
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, m.report.Runs); err != nil {
		m.errMsg = err.Error()
	}
	if run, ok := m.SelectedRun(); ok {
		if err := stats.RenderTimers(&buf, run, m.report.Timers[run.ID]); err != nil {
			m.errMsg = err.Error()
		}
	}
	m.detail.SetContent(strings.TrimRight(buf.String(), "\n"))
	m.detail.GotoTop()
}

func (m *Model) updateLayout() {
	// Title border, footer and pane borders.
	bodyHeight := max(3, m.height-3-1-2)
	tableWidth := max(20, m.width*3/5)
	m.runs.SetWidth(tableWidth)
	m.runs.SetHeight(bodyHeight)
	m.detail.Width = max(10, m.width-tableWidth-4)
	m.detail.Height = bodyHeight
}

func newRunsTable() table.Model {
	widths := []int{5, 19, 24, 4, 16, 16}
	columns := make([]table.Column, len(stats.RunHeaders))
	for i, title := range stats.RunHeaders {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#4A4A4A")).
		Bold(true)
	t.SetStyles(styles)
	return t
}
