package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-coauthor/pkg/algorithms"
	"github.com/dd0wney/cluso-coauthor/pkg/report"
	"github.com/dd0wney/cluso-coauthor/pkg/visualization"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	title := "Co-authorship Browser"
	if m.snap.Report != nil && m.snap.Report.Topic != "" {
		title += " - " + m.snap.Report.Topic
	}
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case dashboardView:
		s.WriteString(m.renderDashboard())
	case authorsView:
		s.WriteString(m.renderTable("Authors by "+m.sortBy.String(), m.authorTable.View()))
	case papersView:
		s.WriteString(m.renderTable("Papers by citations", m.paperTable.View()))
	case communitiesView:
		s.WriteString(m.renderTable("Communities", m.communityTable.View()))
	case queryView:
		s.WriteString(m.renderQuery())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m Model) renderTabs() string {
	var renderedTabs []string

	for i, tab := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, tab)
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(label))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(label))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m Model) renderDashboard() string {
	r := m.snap.Report
	if r == nil {
		return contentStyle.Render("Snapshot has no report")
	}
	sum := r.Summary

	statsContent := fmt.Sprintf(`Dataset
───────────────
Source:         %s
Articles:       %d
Invalid values: %d

Graph
───────────────
Authors:        %d
Collaborations: %d
Components:     %d (largest %d)
Communities:    %d
Modularity:     %.4f
Triangles:      %d
Avg clustering: %.4f`,
		sum.Source,
		sum.Articles,
		sum.InvalidValues,
		sum.Authors,
		sum.Collaborations,
		sum.Components,
		sum.LargestComponent,
		sum.Communities,
		sum.Modularity,
		sum.Triangles,
		sum.AverageClustering,
	)

	var top strings.Builder
	writeRanked(&top, "Top betweenness", r.TopBetweenness)
	top.WriteString("\n")
	writeRanked(&top, "Top closeness", r.TopCloseness)
	top.WriteString("\n")
	top.WriteString("Most cited\n───────────────\n")
	for i, c := range r.TopCited {
		fmt.Fprintf(&top, "%d. %s (%d)\n", i+1, visualization.Truncate(c.Title, 40), c.Cites)
	}

	return contentStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Top,
			statsBoxStyle.Render(statsContent),
			statsBoxStyle.Render(strings.TrimRight(top.String(), "\n"))),
	)
}

func writeRanked(b *strings.Builder, title string, nodes []algorithms.RankedNode) {
	b.WriteString(title + "\n───────────────\n")
	if len(nodes) == 0 {
		b.WriteString("(none)\n")
	}
	for i, n := range nodes {
		fmt.Fprintf(b, "%d. %-24s %s\n", i+1, n.Name, report.FormatScore(n.Score))
	}
}

func (m Model) renderTable(title, body string) string {
	var s strings.Builder

	s.WriteString(headerStyle.Render(title))
	s.WriteString("\n\n")
	s.WriteString(body)
	s.WriteString("\n\n")
	if m.currentView == authorsView {
		s.WriteString(helpStyle.Render("Navigate with ↑/↓ • Press 's' to change the sort"))
	} else {
		s.WriteString(helpStyle.Render("Navigate with ↑/↓"))
	}

	return contentStyle.Render(s.String())
}

func (m Model) renderQuery() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("GraphQL Console"))
	s.WriteString("\n\n")

	s.WriteString("Enter a query:\n\n")
	s.WriteString(m.queryInput.View())

	if m.queryOutput != "" {
		s.WriteString("\n\n")
		out := m.queryOutput
		if m.height > 0 {
			out = clipLines(out, max(5, m.height-16))
		}
		s.WriteString(resultBoxStyle.Render(out))
		return contentStyle.Render(s.String())
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Examples:\n"))
	s.WriteString(helpStyle.Render("  { summary { authors collaborations modularity } }\n"))
	s.WriteString(helpStyle.Render(`  { author(name: "...") { degree coauthors { name } } }` + "\n"))
	s.WriteString(helpStyle.Render("  { communities(limit: 3) { id size memberNames } }\n"))

	return contentStyle.Render(s.String())
}

// clipLines keeps the first n lines of s
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + fmt.Sprintf("\n… %d more lines", len(lines)-n)
}
