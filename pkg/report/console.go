package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-coauthor/pkg/algorithms"
)

// Styles
var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// Printer writes a report as plain lines, styled when color is on
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a console printer
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) heading(text string) {
	fmt.Fprintln(p.w, p.style(headingStyle, text))
}

func (p *Printer) entry(name, value string) {
	fmt.Fprintf(p.w, "%s: %s\n", p.style(nameStyle, name), p.style(valueStyle, value))
}

// FormatScore renders a centrality value with four decimals
func FormatScore(score float64) string {
	return fmt.Sprintf("%.4f", score)
}

func (p *Printer) ranked(title string, nodes []algorithms.RankedNode) {
	p.heading(title)
	if len(nodes) == 0 {
		fmt.Fprintln(p.w, p.style(mutedStyle, "(none)"))
	}
	for _, node := range nodes {
		p.entry(node.Name, FormatScore(node.Score))
	}
	fmt.Fprintln(p.w)
}

// Print writes the summary block and the four top lists
func (p *Printer) Print(r *Report) {
	if r.Topic != "" {
		p.heading(r.Topic)
		fmt.Fprintln(p.w, p.style(mutedStyle, strings.Repeat("=", len(r.Topic))))
	}
	s := r.Summary
	fmt.Fprintln(p.w, p.style(mutedStyle, fmt.Sprintf(
		"%d articles, %d authors, %d collaborations, %d communities (modularity %.4f)",
		s.Articles, s.Authors, s.Collaborations, s.Communities, s.Modularity)))
	fmt.Fprintln(p.w)

	p.ranked(fmt.Sprintf("Top %d authors by betweenness centrality:", r.TopN), r.TopBetweenness)
	p.ranked(fmt.Sprintf("Top %d authors by closeness centrality:", r.TopN), r.TopCloseness)

	p.heading(fmt.Sprintf("Top %d authors by number of articles:", r.TopN))
	for _, a := range r.TopAuthors {
		p.entry(a.Name, fmt.Sprintf("%d", a.Articles))
	}
	fmt.Fprintln(p.w)

	p.heading(fmt.Sprintf("Top %d most cited papers:", r.TopN))
	for _, c := range r.TopCited {
		p.entry(c.Title, fmt.Sprintf("%d", c.Cites))
	}
}
