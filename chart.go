// Package scatter plots public-health survey data per state, with one selectable field on each axis. Charts are drawn with canvas and can move their markers when a field is selected.
package scatter

import (
	"strconv"

	"github.com/tdewolff/canvas"
)

// Margin is the space around the chart area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Layout defines the size of the drawing surface and the margins around the chart area. All lengths are in pixels.
type Layout struct {
	Width, Height float64
	Margin
}

// DefaultLayout is an 800x600 surface with margins of 75.
var DefaultLayout = Layout{
	Width:  800.0,
	Height: 600.0,
	Margin: Margin{75.0, 75.0, 75.0, 75.0},
}

// ChartWidth is the width of the chart area.
func (l Layout) ChartWidth() float64 {
	return l.Width - l.Left - l.Right
}

// ChartHeight is the height of the chart area.
func (l Layout) ChartHeight() float64 {
	return l.Height - l.Top - l.Bottom
}

// Marker is the position of a record on the chart, relative to the chart area with the y-axis pointing down.
type Marker struct {
	Index  int // index into the dataset
	Record Record
	canvas.Point
}

// LabelPos returns the anchor of the state abbreviation, three pixels below the centre.
func (m Marker) LabelPos() canvas.Point {
	return canvas.Point{X: m.X, Y: m.Y + 3.0}
}

// AxisLabel is a clickable label selecting the field of an axis.
type AxisLabel struct {
	Axis   Axis
	ID     string  // field name
	Text   string  // label text
	Offset float64 // baseline offset in em
	Active bool
}

// Class returns the state class of the label.
func (l AxisLabel) Class() string {
	if l.Active {
		return "active"
	}
	return "inactive"
}

// Chart is a scatter plot of a dataset with one field bound to each axis. It keeps track of the chosen fields and their scales.
type Chart struct {
	Layout
	data Dataset

	x      XField
	y      YField
	xScale Scale
	yScale Scale
}

// NewChart returns a chart plotting poverty against healthcare.
func NewChart(data Dataset, layout Layout) (*Chart, error) {
	return NewChartWith(data, layout, Poverty, Healthcare)
}

// NewChartWith returns a chart with the given initial fields.
func NewChartWith(data Dataset, layout Layout, x XField, y YField) (*Chart, error) {
	xScale, err := NewXScale(data, x, layout.ChartWidth())
	if err != nil {
		return nil, err
	}
	yScale, err := NewYScale(data, y, layout.ChartHeight())
	if err != nil {
		return nil, err
	}
	return &Chart{
		Layout: layout,
		data:   data,
		x:      x,
		y:      y,
		xScale: xScale,
		yScale: yScale,
	}, nil
}

// Data returns the dataset.
func (c *Chart) Data() Dataset {
	return c.data
}

// X returns the field bound to the horizontal axis.
func (c *Chart) X() XField {
	return c.x
}

// Y returns the field bound to the vertical axis.
func (c *Chart) Y() YField {
	return c.y
}

// XScale returns the scale of the horizontal axis.
func (c *Chart) XScale() Scale {
	return c.xScale
}

// YScale returns the scale of the vertical axis.
func (c *Chart) YScale() Scale {
	return c.yScale
}

// SelectX binds a field to the horizontal axis. Selecting the current field does nothing and returns false. Otherwise the scale is recomputed and the transition from the old to the new marker positions is returned. If the field has no finite values the chart is left unchanged and the error is returned.
func (c *Chart) SelectX(f XField) (*Transition, bool, error) {
	if f == c.x {
		return nil, false, nil
	}
	xScale, err := NewXScale(c.data, f, c.ChartWidth())
	if err != nil {
		return nil, false, err
	}

	from := c.Markers()
	fromScale := c.xScale
	c.x, c.xScale = f, xScale
	return newTransition(AxisX, from, c.Markers(), fromScale, xScale), true, nil
}

// SelectY binds a field to the vertical axis. Selecting the current field does nothing and returns false. Otherwise the scale is recomputed and the transition from the old to the new marker positions is returned. If the field has no finite values the chart is left unchanged and the error is returned.
func (c *Chart) SelectY(f YField) (*Transition, bool, error) {
	if f == c.y {
		return nil, false, nil
	}
	yScale, err := NewYScale(c.data, f, c.ChartHeight())
	if err != nil {
		return nil, false, err
	}

	from := c.Markers()
	fromScale := c.yScale
	c.y, c.yScale = f, yScale
	return newTransition(AxisY, from, c.Markers(), fromScale, yScale), true, nil
}

// Markers returns the positions of all records that have a value for both chosen fields.
func (c *Chart) Markers() []Marker {
	markers := make([]Marker, 0, len(c.data))
	for i, r := range c.data {
		x, y := c.x.Value(r), c.y.Value(r)
		if !finite(x) || !finite(y) {
			continue
		}
		markers = append(markers, Marker{
			Index:  i,
			Record: r,
			Point:  canvas.Point{X: c.xScale.Map(x), Y: c.yScale.Map(y)},
		})
	}
	return markers
}

// Tooltip returns the lines of the tooltip of a record: the state name followed by the values of the chosen fields.
func (c *Chart) Tooltip(r Record) []string {
	return []string{
		r.State,
		c.x.TooltipLabel() + " " + formatValue(c.x.Value(r)),
		c.y.TooltipLabel() + " " + formatValue(c.y.Value(r)),
	}
}

// Labels returns the labels of an axis in stacking order. Exactly one of them, the chosen field, is active.
func (c *Chart) Labels(axis Axis) []AxisLabel {
	labels := []AxisLabel{}
	if axis == AxisX {
		for _, f := range XFields {
			labels = append(labels, AxisLabel{AxisX, f.String(), f.Label(), f.LabelOffset(), f == c.x})
		}
	} else {
		for _, f := range YFields {
			labels = append(labels, AxisLabel{AxisY, f.String(), f.Label(), f.LabelOffset(), f == c.y})
		}
	}
	return labels
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
