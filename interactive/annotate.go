package interactive

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/parse/v2"
	parseXML "github.com/tdewolff/parse/v2/xml"
	"github.com/tdewolff/scatter"
)

// annotator rewrites the SVG output of the canvas renderer. It relies on the classes assigned while drawing: markers and abbreviations receive a tooltip and an animation, inactive axis labels are wrapped in a link.
type annotator struct {
	chart    *scatter.Chart
	state    State
	offsets  map[int]canvas.Point
	duration time.Duration

	w       io.Writer
	err     error
	inLinks int
}

// element is a start tag whose attributes have been read but not yet written.
type element struct {
	name    string
	attrs   []string
	classes []string
}

func (e *element) hasClass(class string) bool {
	for _, c := range e.classes {
		if c == class {
			return true
		}
	}
	return false
}

func (e *element) row() (int, bool) {
	for _, c := range e.classes {
		if i, ok := scatter.RowIndex(c); ok {
			return i, true
		}
	}
	return 0, false
}

func unquote(b []byte) string {
	if 2 <= len(b) && (b[0] == '"' || b[0] == '\'') && b[len(b)-1] == b[0] {
		return string(b[1 : len(b)-1])
	}
	return string(b)
}

func (a *annotator) write(s string) {
	if a.err == nil {
		_, a.err = io.WriteString(a.w, s)
	}
}

func (a *annotator) annotate(w io.Writer, r io.Reader) error {
	a.w = w
	z := parse.NewInput(r)
	defer z.Restore()

	l := parseXML.NewLexer(z)
	var cur *element
	for {
		tt, data := l.Next()
		switch tt {
		case parseXML.ErrorToken:
			if l.Err() != io.EOF {
				return l.Err()
			}
			return a.err
		case parseXML.StartTagToken:
			cur = &element{name: string(data[1:])}
		case parseXML.AttributeToken:
			if cur == nil {
				a.write(string(data))
				break
			}
			name := string(l.Text())
			if val := l.AttrVal(); val != nil {
				cur.attrs = append(cur.attrs, name+"="+string(val))
				if name == "class" {
					cur.classes = strings.Fields(unquote(val))
				}
			} else {
				cur.attrs = append(cur.attrs, name)
			}
		case parseXML.StartTagCloseToken, parseXML.StartTagCloseVoidToken:
			if cur == nil {
				a.write(string(data))
				break
			}
			a.element(cur, tt == parseXML.StartTagCloseVoidToken)
			cur = nil
		case parseXML.EndTagToken:
			a.write(string(data))
			if 0 < a.inLinks && endTagName(data) == "text" {
				a.write("</a>")
				a.inLinks--
			}
		default:
			a.write(string(data))
		}
		if a.err != nil {
			return a.err
		}
	}
}

func endTagName(data []byte) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(string(data), "</"), ">"))
}

func (a *annotator) element(e *element, void bool) {
	link := ""
	if e.name == "text" && e.hasClass("axis-label") && e.hasClass("inactive") {
		link = a.href(e)
	}
	if link != "" {
		a.write(`<a href="` + link + `">`)
		a.inLinks++
	}

	a.write("<" + e.name)
	for _, attr := range e.attrs {
		if e.name == "svg" {
			attr = pixels(attr)
		}
		a.write(" " + attr)
	}

	index, isRow := e.row()
	if !isRow || !(e.name == "path" && e.hasClass("marker") || e.name == "text" && e.hasClass("abbr")) {
		if void {
			a.write("/>")
		} else {
			a.write(">")
		}
		return
	}

	a.write(">")
	a.tooltip(index)
	a.animation(index)
	if void {
		a.write("</" + e.name + ">")
	}
}

// href returns the link selecting the field of an inactive axis label.
func (a *annotator) href(e *element) string {
	axis := scatter.AxisY
	if e.hasClass("x") {
		axis = scatter.AxisX
	}
	for _, label := range a.chart.Labels(axis) {
		if !e.hasClass(label.ID) {
			continue
		}
		if next, ok := a.state.Select(label); ok {
			return "?" + xmlEscape(next.Query().Encode())
		}
	}
	return ""
}

func (a *annotator) tooltip(index int) {
	data := a.chart.Data()
	if index < 0 || len(data) <= index {
		return
	}
	a.write("<title>")
	a.write(xmlEscape(strings.Join(a.chart.Tooltip(data[index]), "\n")))
	a.write("</title>")
}

// animation moves the element from its old position, the offset is in chart coordinates which point down like SVG's.
func (a *annotator) animation(index int) {
	offset, ok := a.offsets[index]
	if !ok {
		return
	}
	spline := scatter.CubicInOutSpline
	a.write(fmt.Sprintf(`<animateTransform attributeName="transform" type="translate" from="%s %s" to="0 0" dur="%dms" calcMode="spline" keyTimes="0;1" keySplines="%s %s %s %s" additive="sum" fill="freeze"/>`,
		num(offset.X), num(offset.Y), a.duration.Milliseconds(),
		num(spline[0]), num(spline[1]), num(spline[2]), num(spline[3])))
}

// pixels replaces millimeters by pixels in the size of the root element, canvas units are drawn as pixels.
func pixels(attr string) string {
	if (strings.HasPrefix(attr, "width=") || strings.HasPrefix(attr, "height=")) && strings.HasSuffix(attr, `mm"`) {
		return attr[:len(attr)-3] + `"`
	}
	return attr
}

func num(f float64) string {
	f = math.Round(f*1000.0) / 1000.0
	if f == 0.0 {
		f = 0.0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func xmlEscape(s string) string {
	sb := &strings.Builder{}
	_ = xml.EscapeText(sb, []byte(s))
	return sb.String()
}
