package scatter

import (
	"image/color"
	"strconv"
	"time"

	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"github.com/tdewolff/canvas"
)

// One canvas unit (millimeter) is used as one pixel, font sizes are given in points.
const ptPerPx = 72.0 / 25.4

const (
	tickSize    = 6.0
	tickPadding = 3.0
)

// Style defines the appearance of the chart.
type Style struct {
	Font *canvas.FontFamily

	Background    color.RGBA
	Radius        float64
	MarkerColor   color.RGBA
	AbbrColor     color.RGBA
	AxisColor     color.RGBA
	ActiveColor   color.RGBA
	InactiveColor color.RGBA

	TickFontSize  float64 // in px
	LabelFontSize float64 // in px
	TickCount     int
}

// LoadFontFamily loads the embedded Latin Modern Sans font family in regular and bold.
func LoadFontFamily() (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily("Latin Modern Sans")
	if err := family.LoadFont(lmsans10regular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	if err := family.LoadFont(lmsans10bold.TTF, 0, canvas.FontBold); err != nil {
		return nil, err
	}
	return family, nil
}

// DefaultStyle returns light blue translucent markers of radius 10 with white state abbreviations.
func DefaultStyle() (Style, error) {
	family, err := LoadFontFamily()
	if err != nil {
		return Style{}, err
	}
	return Style{
		Font:          family,
		Background:    canvas.White,
		Radius:        10.0,
		MarkerColor:   canvas.RGBA(0x89, 0xbd, 0xd3, 0.4),
		AbbrColor:     canvas.White,
		AxisColor:     canvas.Black,
		ActiveColor:   canvas.Black,
		InactiveColor: canvas.Hex("#c9c9c9"),
		TickFontSize:  10.0,
		LabelFontSize: 16.0,
		TickCount:     10,
	}, nil
}

func (style Style) face(px float64, col color.Color, fontStyle canvas.FontStyle) *canvas.FontFace {
	return style.Font.Face(px*ptPerPx, col, fontStyle, canvas.FontNormal)
}

// classRenderer is implemented by renderers that can assign classes to drawn objects, such as the SVG renderer.
type classRenderer interface {
	SetClass(classes ...string)
}

type drawer struct {
	*Chart
	ctx     *canvas.Context
	classes classRenderer
	style   Style
	static  bool // only draw the labels of the chosen fields
}

func newDrawer(c *Chart, r canvas.Renderer, style Style) *drawer {
	classes, _ := r.(classRenderer)
	return &drawer{
		Chart:   c,
		ctx:     canvas.NewContext(r),
		classes: classes,
		style:   style,
	}
}

func (d *drawer) setClass(classes ...string) {
	if d.classes != nil {
		d.classes.SetClass(classes...)
	}
}

// pos converts chart area coordinates (y pointing down) to canvas coordinates (y pointing up).
func (d *drawer) pos(x, y float64) (float64, float64) {
	return d.Left + x, d.Height - (d.Top + y)
}

// Draw draws the chart in its current state.
func (c *Chart) Draw(r canvas.Renderer, style Style) {
	d := newDrawer(c, r, style)
	d.draw(c.Markers(), c.xScale, c.yScale)
}

// DrawFrame draws the chart during a transition, after the elapsed time. The chart must already be in the state the transition leads to.
func (c *Chart) DrawFrame(r canvas.Renderer, style Style, tr *Transition, elapsed time.Duration) {
	if tr == nil {
		c.Draw(r, style)
		return
	}

	markers := c.Markers()
	positions := tr.At(elapsed)
	for i, m := range markers {
		if p, ok := positions[m.Index]; ok {
			markers[i].Point = p
		}
	}
	xScale, yScale := c.xScale, c.yScale
	if tr.Axis == AxisX {
		xScale = tr.ScaleAt(elapsed)
	} else {
		yScale = tr.ScaleAt(elapsed)
	}

	d := newDrawer(c, r, style)
	d.draw(markers, xScale, yScale)
}

func (d *drawer) draw(markers []Marker, xScale, yScale Scale) {
	if d.style.Background.A != 0 {
		d.ctx.SetFillColor(d.style.Background)
		d.ctx.SetStrokeColor(canvas.Transparent)
		d.ctx.DrawPath(0.0, 0.0, canvas.Rectangle(d.Width, d.Height))
	}

	d.setClass("axis", "x-axis")
	d.drawBottomAxis(xScale)
	d.setClass("axis", "y-axis")
	d.drawLeftAxis(yScale)

	d.ctx.SetStrokeColor(canvas.Transparent)
	d.ctx.SetFillColor(d.style.MarkerColor)
	circle := canvas.Circle(d.style.Radius)
	for _, m := range markers {
		d.setClass("marker", rowClass(m.Index))
		x, y := d.pos(m.X, m.Y)
		d.ctx.DrawPath(x, y, circle)
	}

	face := d.style.face(d.style.Radius, d.style.AbbrColor, canvas.FontRegular)
	for _, m := range markers {
		d.setClass("abbr", rowClass(m.Index))
		p := m.LabelPos()
		x, y := d.pos(p.X, p.Y)
		d.ctx.DrawText(x, y, canvas.NewTextLine(face, m.Record.Abbr, canvas.Center))
	}

	d.drawLabels()
	d.setClass()
}

func (d *drawer) axisStroke() {
	d.ctx.SetFillColor(canvas.Transparent)
	d.ctx.SetStrokeColor(d.style.AxisColor)
	d.ctx.SetStrokeWidth(1.0)
}

// drawBottomAxis draws the horizontal axis along the bottom of the chart area, with ticks pointing down.
func (d *drawer) drawBottomAxis(s Scale) {
	y0 := d.ChartHeight()
	d.axisStroke()

	p := &canvas.Path{}
	x, y := d.pos(s.Range[0], y0+tickSize)
	p.MoveTo(x, y)
	x, y = d.pos(s.Range[0], y0)
	p.LineTo(x, y)
	x, y = d.pos(s.Range[1], y0)
	p.LineTo(x, y)
	x, y = d.pos(s.Range[1], y0+tickSize)
	p.LineTo(x, y)

	ticks := s.Ticks(d.style.TickCount)
	for _, tick := range ticks {
		x, y = d.pos(s.Map(tick), y0)
		p.MoveTo(x, y)
		x, y = d.pos(s.Map(tick), y0+tickSize)
		p.LineTo(x, y)
	}
	d.ctx.DrawPath(0.0, 0.0, p)

	format := s.TickFormat(d.style.TickCount)
	face := d.style.face(d.style.TickFontSize, d.style.AxisColor, canvas.FontRegular)
	baseline := y0 + tickSize + tickPadding + 0.71*d.style.TickFontSize
	for _, tick := range ticks {
		x, y = d.pos(s.Map(tick), baseline)
		d.ctx.DrawText(x, y, canvas.NewTextLine(face, format(tick), canvas.Center))
	}
}

// drawLeftAxis draws the vertical axis along the left of the chart area, with ticks pointing left.
func (d *drawer) drawLeftAxis(s Scale) {
	d.axisStroke()

	p := &canvas.Path{}
	x, y := d.pos(-tickSize, s.Range[0])
	p.MoveTo(x, y)
	x, y = d.pos(0.0, s.Range[0])
	p.LineTo(x, y)
	x, y = d.pos(0.0, s.Range[1])
	p.LineTo(x, y)
	x, y = d.pos(-tickSize, s.Range[1])
	p.LineTo(x, y)

	ticks := s.Ticks(d.style.TickCount)
	for _, tick := range ticks {
		x, y = d.pos(0.0, s.Map(tick))
		p.MoveTo(x, y)
		x, y = d.pos(-tickSize, s.Map(tick))
		p.LineTo(x, y)
	}
	d.ctx.DrawPath(0.0, 0.0, p)

	format := s.TickFormat(d.style.TickCount)
	face := d.style.face(d.style.TickFontSize, d.style.AxisColor, canvas.FontRegular)
	for _, tick := range ticks {
		x, y = d.pos(-tickSize-tickPadding, s.Map(tick)+0.32*d.style.TickFontSize)
		d.ctx.DrawText(x, y, canvas.NewTextLine(face, format(tick), canvas.Right))
	}
}

func (d *drawer) labelFace(l AxisLabel) *canvas.FontFace {
	if l.Active {
		return d.style.face(d.style.LabelFontSize, d.style.ActiveColor, canvas.FontBold)
	}
	return d.style.face(d.style.LabelFontSize, d.style.InactiveColor, canvas.FontRegular)
}

// drawLabels draws the stacked field labels of both axes. The x labels start at 2/5 of the chart width below the axis, the y labels are rotated and start at 3/5 of the chart height left of the axis.
func (d *drawer) drawLabels() {
	em := d.style.LabelFontSize
	for _, l := range d.Labels(AxisX) {
		if d.static && !l.Active {
			continue
		}
		d.setClass("axis-label", "x", l.ID, l.Class())
		x, y := d.pos(d.ChartWidth()/2.5, d.ChartHeight()+l.Offset*em)
		d.ctx.DrawText(x, y, canvas.NewTextLine(d.labelFace(l), l.Text, canvas.Left))
	}
	for _, l := range d.Labels(AxisY) {
		if d.static && !l.Active {
			continue
		}
		d.setClass("axis-label", "y", l.ID, l.Class())
		x, y := d.pos(-d.Left+l.Offset*em, 0.6*d.ChartHeight())
		d.ctx.Push()
		d.ctx.ComposeView(canvas.Identity.Translate(x, y).Rotate(90.0))
		d.ctx.DrawText(0.0, 0.0, canvas.NewTextLine(d.labelFace(l), l.Text, canvas.Left))
		d.ctx.Pop()
	}
}

func rowClass(index int) string {
	return "row-" + strconv.Itoa(index)
}

// RowIndex parses the record index from a row class, as assigned to markers and abbreviations.
func RowIndex(class string) (int, bool) {
	if len(class) <= 4 || class[:4] != "row-" {
		return 0, false
	}
	i, err := strconv.Atoi(class[4:])
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
