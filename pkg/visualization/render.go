package visualization

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ChartConfig describes one output image. The file format follows the
// extension of Path (png, svg or pdf).
type ChartConfig struct {
	Path   string
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

// Bar is one labelled bar of a bar chart
type Bar struct {
	Label string
	Value float64
}

// HistogramBin is one bin of a pre-computed histogram
type HistogramBin struct {
	Min   float64
	Max   float64
	Count int
}

func fade(c color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

func newPlot(config ChartConfig) *plot.Plot {
	p := plot.New()
	p.Title.Text = config.Title
	p.X.Label.Text = config.XLabel
	p.Y.Label.Text = config.YLabel
	return p
}

func save(p *plot.Plot, config ChartConfig) error {
	if err := p.Save(config.Width, config.Height, config.Path); err != nil {
		return fmt.Errorf("failed to save %s: %w", config.Path, err)
	}
	return nil
}

// RenderNetwork draws the selected edges, every node sized by degree and
// colored by community, and the labels of important nodes.
func RenderNetwork(view *NetworkView, config ChartConfig) error {
	p := newPlot(config)
	p.HideAxes()

	if len(view.Nodes) == 0 {
		return save(p, config)
	}

	positions := make(map[string]Position, len(view.Nodes))
	for _, node := range view.Nodes {
		positions[node.Name] = node.Position
	}

	for _, edge := range view.Edges {
		from, to := positions[edge.From], positions[edge.To]
		line, err := plotter.NewLine(plotter.XYs{{X: from.X, Y: from.Y}, {X: to.X, Y: to.Y}})
		if err != nil {
			return fmt.Errorf("edge %s-%s: %w", edge.From, edge.To, err)
		}
		line.LineStyle.Color = fade(edge.Color, 0x80)
		line.LineStyle.Width = vg.Points(0.8)
		p.Add(line)
	}

	xys := make(plotter.XYs, len(view.Nodes))
	for i, node := range view.Nodes {
		xys[i].X = node.Position.X
		xys[i].Y = node.Position.Y
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("nodes: %w", err)
	}
	// Sizes are marker areas in points squared
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		node := view.Nodes[i]
		return draw.GlyphStyle{
			Color:  fade(node.Color, 0xcc),
			Radius: vg.Points(math.Sqrt(node.Size) / 2),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(scatter)

	if len(view.Labels) > 0 {
		labelXYs := make(plotter.XYs, len(view.Labels))
		for i, name := range view.Labels {
			labelXYs[i].X = positions[name].X
			labelXYs[i].Y = positions[name].Y
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: view.Labels})
		if err != nil {
			return fmt.Errorf("labels: %w", err)
		}
		p.Add(labels)
	}

	return save(p, config)
}

// RenderBarChart draws one bar per entry. Horizontal charts list the
// first bar at the top.
func RenderBarChart(bars []Bar, horizontal bool, config ChartConfig) error {
	p := newPlot(config)
	if len(bars) == 0 {
		return save(p, config)
	}

	values := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, bar := range bars {
		at := i
		if horizontal {
			at = len(bars) - 1 - i
		}
		values[at] = bar.Value
		labels[at] = bar.Label
	}

	chart, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	chart.Color = Palette[0]
	chart.LineStyle.Width = 0
	chart.Horizontal = horizontal
	p.Add(chart)

	if horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
	}

	return save(p, config)
}

// RenderHistogram draws pre-computed bins as adjoining bordered bars
func RenderHistogram(bins []HistogramBin, config ChartConfig) error {
	p := newPlot(config)
	if len(bins) == 0 {
		return save(p, config)
	}

	hbins := make([]plotter.HistogramBin, len(bins))
	for i, b := range bins {
		hbins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(b.Count)}
	}

	lineStyle := plotter.DefaultLineStyle
	lineStyle.Color = color.Black
	hist := &plotter.Histogram{
		Bins:      hbins,
		Width:     bins[0].Max - bins[0].Min,
		FillColor: Palette[0],
		LineStyle: lineStyle,
	}
	p.Add(hist)

	return save(p, config)
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
