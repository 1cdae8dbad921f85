// Package tui is an interactive terminal browser for a run snapshot: the
// summary, sortable author metrics, papers, communities and a GraphQL
// console.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-coauthor/pkg/graphql"
	"github.com/dd0wney/cluso-coauthor/pkg/report"
)

type view int

const (
	dashboardView view = iota
	authorsView
	papersView
	communitiesView
	queryView
	viewCount
)

var viewNames = []string{"Dashboard", "Authors", "Papers", "Communities", "Query"}

// Model is the bubbletea model of the browser
type Model struct {
	snap           *report.Snapshot
	executor       *graphql.Executor
	currentView    view
	authorTable    table.Model
	paperTable     table.Model
	communityTable table.Model
	queryInput     textinput.Model
	queryOutput    string
	sortBy         authorSort
	help           help.Model
	keys           keyMap
	width          int
	height         int
	message        string
	messageErr     bool
}

// New creates a browser over snap. Queries run through executor.
func New(snap *report.Snapshot, executor *graphql.Executor) Model {
	ti := textinput.New()
	ti.Placeholder = `{ authors(orderBy: {field: "betweenness"}, limit: 5) { name betweenness } }`
	ti.CharLimit = 500
	ti.Width = 80

	m := Model{
		snap:        snap,
		executor:    executor,
		currentView: dashboardView,
		queryInput:  ti,
		sortBy:      sortByBetweenness,
		help:        help.New(),
		keys:        keys,
	}

	m.authorTable = newTable(authorColumns, nil)
	m.paperTable = newTable(paperColumns, paperRows(snap.Papers))
	m.communityTable = newTable(communityColumns, communityRows(snap.Communities))
	m.refreshAuthors()
	m.focusCurrent()

	return m
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())
	return t
}

func (m *Model) refreshAuthors() {
	m.authorTable.SetRows(authorRows(m.snap.Authors, m.sortBy))
	m.authorTable.GotoTop()
}

// focusCurrent gives keyboard focus to the widget of the current view
func (m *Model) focusCurrent() {
	m.authorTable.Blur()
	m.paperTable.Blur()
	m.communityTable.Blur()
	m.queryInput.Blur()

	switch m.currentView {
	case authorsView:
		m.authorTable.Focus()
	case papersView:
		m.paperTable.Focus()
	case communitiesView:
		m.communityTable.Focus()
	case queryView:
		m.queryInput.Focus()
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h := max(5, msg.Height-14)
		m.authorTable.SetHeight(h)
		m.paperTable.SetHeight(h)
		m.communityTable.SetHeight(h)

	case tea.KeyMsg:
		typing := m.currentView == queryView

		switch {
		case msg.String() == "ctrl+c", !typing && key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount
			m.focusCurrent()
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.currentView = (m.currentView + viewCount - 1) % viewCount
			m.focusCurrent()
			return m, nil

		case !typing && key.Matches(msg, m.keys.Jump):
			m.currentView = view(msg.Runes[0] - '1')
			m.focusCurrent()
			return m, nil

		case m.currentView == authorsView && key.Matches(msg, m.keys.Sort):
			m.sortBy = (m.sortBy + 1) % sortCount
			m.refreshAuthors()
			m.message = "Authors sorted by " + m.sortBy.String()
			m.messageErr = false
			return m, nil

		case typing && key.Matches(msg, m.keys.Enter):
			m.executeQuery()
			return m, nil
		}
	}

	switch m.currentView {
	case authorsView:
		m.authorTable, cmd = m.authorTable.Update(msg)
		cmds = append(cmds, cmd)
	case papersView:
		m.paperTable, cmd = m.paperTable.Update(msg)
		cmds = append(cmds, cmd)
	case communitiesView:
		m.communityTable, cmd = m.communityTable.Update(msg)
		cmds = append(cmds, cmd)
	case queryView:
		m.queryInput, cmd = m.queryInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) executeQuery() {
	queryStr := m.queryInput.Value()
	if queryStr == "" {
		m.message = "Query cannot be empty"
		m.messageErr = true
		return
	}
	if m.executor == nil {
		m.message = "Queries are not available"
		m.messageErr = true
		return
	}

	start := time.Now()
	result := m.executor.Execute(context.Background(), queryStr, nil)
	elapsed := time.Since(start)

	if result.HasErrors() {
		m.message = fmt.Sprintf("Query error: %s", result.Errors[0].Message)
		m.messageErr = true
		m.queryOutput = ""
		return
	}

	out, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		m.message = fmt.Sprintf("Failed to format result: %v", err)
		m.messageErr = true
		return
	}
	m.queryOutput = string(out)
	m.message = fmt.Sprintf("Query executed in %s", elapsed.Round(time.Microsecond))
	m.messageErr = false
}
