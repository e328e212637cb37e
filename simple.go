package scatter

import (
	"image/color"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Simple is a static scatter plot whose axes both start at zero. Its fields are fixed and it has no transitions or tooltips.
type Simple struct {
	Layout
	data   Dataset
	x      XField
	y      YField
	xScale Scale
	yScale Scale
}

// NewSimple returns a static scatter plot of the given fields.
func NewSimple(data Dataset, layout Layout, x XField, y YField) (*Simple, error) {
	xScale, err := NewZeroScale(data.XValues(x), 0.0, layout.ChartWidth())
	if err != nil {
		return nil, err
	}
	yScale, err := NewZeroScale(data.YValues(y), layout.ChartHeight(), 0.0)
	if err != nil {
		return nil, err
	}
	return &Simple{
		Layout: layout,
		data:   data,
		x:      x,
		y:      y,
		xScale: xScale,
		yScale: yScale,
	}, nil
}

// XScale returns the scale of the horizontal axis.
func (s *Simple) XScale() Scale {
	return s.xScale
}

// YScale returns the scale of the vertical axis.
func (s *Simple) YScale() Scale {
	return s.yScale
}

func (s *Simple) chart() *Chart {
	return &Chart{
		Layout: s.Layout,
		data:   s.data,
		x:      s.x,
		y:      s.y,
		xScale: s.xScale,
		yScale: s.yScale,
	}
}

// Draw draws the plot using the canvas renderer. Only the labels of the plotted fields are drawn.
func (s *Simple) Draw(r canvas.Renderer, style Style) {
	c := s.chart()
	d := newDrawer(c, r, style)
	d.static = true
	d.draw(c.Markers(), s.xScale, s.yScale)
}

func (s *Simple) points() (plotter.XYs, []string) {
	xys := plotter.XYs{}
	abbrs := []string{}
	for _, r := range s.data {
		x, y := s.x.Value(r), s.y.Value(r)
		if !finite(x) || !finite(y) {
			continue
		}
		xys = append(xys, plotter.XY{X: x, Y: y})
		abbrs = append(abbrs, r.Abbr)
	}
	return xys, abbrs
}

// GonumPlot returns the plot as a gonum plot.
func (s *Simple) GonumPlot(style Style) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = s.x.Label()
	p.Y.Label.Text = s.y.Label()

	xys, abbrs := s.points()
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = style.MarkerColor
	scatter.GlyphStyle.Radius = vg.Length(style.Radius)
	p.Add(scatter)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: abbrs})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = color.Black
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(labels)

	p.X.Min, p.X.Max = s.xScale.Domain[0], s.xScale.Domain[1]
	p.Y.Min, p.Y.Max = s.yScale.Domain[0], s.yScale.Domain[1]
	return p, nil
}

// DrawGonumPlot draws the plot through gonum's plotting package onto a canvas of the layout's size.
func (s *Simple) DrawGonumPlot(style Style) (*canvas.Canvas, error) {
	p, err := s.GonumPlot(style)
	if err != nil {
		return nil, err
	}
	c := canvas.New(s.Width, s.Height)
	ctx := canvas.NewContext(c)
	ctx.SetFillColor(style.Background)
	ctx.DrawPath(0.0, 0.0, canvas.Rectangle(s.Width, s.Height))
	p.Draw(renderers.NewGonumPlot(c))
	return c, nil
}

// GoChart returns the plot as a go-chart chart.
func (s *Simple) GoChart(style Style) chart.Chart {
	xys, _ := s.points()
	xs := make([]float64, len(xys))
	ys := make([]float64, len(xys))
	for i, xy := range xys {
		xs[i], ys[i] = xy.X, xy.Y
	}

	toColor := func(col color.RGBA) drawing.Color {
		return drawing.Color{R: col.R, G: col.G, B: col.B, A: col.A}
	}
	return chart.Chart{
		Width:  int(s.Width + 0.5),
		Height: int(s.Height + 0.5),
		Background: chart.Style{
			Padding: chart.Box{Top: int(s.Top), Right: int(s.Right), Bottom: int(s.Bottom), Left: int(s.Left)},
		},
		XAxis: chart.XAxis{
			Name:  s.x.Label(),
			Range: &chart.ContinuousRange{Min: s.xScale.Domain[0], Max: s.xScale.Domain[1]},
		},
		YAxis: chart.YAxis{
			Name:  s.y.Label(),
			Range: &chart.ContinuousRange{Min: s.yScale.Domain[0], Max: s.yScale.Domain[1]},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: s.y.Label(),
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    style.Radius,
					DotColor:    toColor(style.MarkerColor),
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
}

// RenderGoChart renders the plot through go-chart, using the canvas writer for output.
func (s *Simple) RenderGoChart(w io.Writer, writer canvas.Writer, style Style) error {
	graph := s.GoChart(style)
	return graph.Render(renderers.NewGoChart(writer), w)
}
