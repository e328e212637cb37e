package interactive

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	minifySVG "github.com/tdewolff/minify/v2/svg"
	"github.com/tdewolff/scatter"
)

// Options configures the rendered document.
type Options struct {
	Layout   scatter.Layout
	Style    scatter.Style
	Duration time.Duration
	Title    string
	Minify   bool
}

// Document renders a dataset as interactive SVG.
type Document struct {
	data scatter.Dataset
	opts Options
	m    *minify.M
}

// NewDocument returns a document for the dataset. A zero duration uses the default transition duration.
func NewDocument(data scatter.Dataset, opts Options) *Document {
	if opts.Duration == 0 {
		opts.Duration = scatter.DefaultDuration
	}
	if opts.Title == "" {
		opts.Title = "Health risks by state"
	}

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("image/svg+xml", minifySVG.Minify)
	return &Document{
		data: data,
		opts: opts,
		m:    m,
	}
}

// Data returns the dataset.
func (doc *Document) Data() scatter.Dataset {
	return doc.data
}

// WriteSVG writes the chart in the given state as a standalone SVG.
func (doc *Document) WriteSVG(w io.Writer, state State) error {
	chart, trs, err := state.Chart(doc.data, doc.opts.Layout)
	if err != nil {
		return err
	}

	raw := &bytes.Buffer{}
	r := svg.New(raw, doc.opts.Layout.Width, doc.opts.Layout.Height, nil)
	chart.Draw(r, doc.opts.Style)
	if err := r.Close(); err != nil {
		return err
	}

	a := &annotator{
		chart:    chart,
		state:    state.Settled(),
		offsets:  offsets(chart, trs),
		duration: doc.opts.Duration,
	}
	if !doc.opts.Minify {
		return a.annotate(w, raw)
	}

	out := &bytes.Buffer{}
	if err := a.annotate(out, raw); err != nil {
		return err
	}
	return doc.m.Minify("image/svg+xml", w, out)
}

// offsets returns for every record that moved the displacement from its old to its new position, in SVG coordinates.
func offsets(chart *scatter.Chart, trs []*scatter.Transition) map[int]canvas.Point {
	if len(trs) == 0 {
		return nil
	}
	from := map[int]canvas.Point{}
	for _, m := range trs[0].Moves {
		from[m.Index] = m.From
	}
	offsets := map[int]canvas.Point{}
	for _, m := range chart.Markers() {
		if p, ok := from[m.Index]; ok && !p.Equals(m.Point) {
			offsets[m.Index] = p.Sub(m.Point)
		}
	}
	return offsets
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:sans-serif;margin:2em}
#chart svg{width:{{.Width}}px;height:{{.Height}}px}
#chart a{cursor:pointer}
#chart .marker:hover{stroke:#000;stroke-width:1}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div id="chart">{{.SVG}}</div>
<p>Click an axis label to change the plotted field, hover a state to see its values. Data: <a href="data.csv">data.csv</a>.</p>
</body>
</html>`))

// WritePage writes an HTML page embedding the chart in the given state.
func (doc *Document) WritePage(w io.Writer, state State) error {
	chart := &bytes.Buffer{}
	if err := doc.WriteSVG(chart, state); err != nil {
		return err
	}

	page := &bytes.Buffer{}
	err := pageTemplate.Execute(page, struct {
		Title         string
		Width, Height float64
		SVG           template.HTML
	}{doc.opts.Title, doc.opts.Layout.Width, doc.opts.Layout.Height, template.HTML(chart.String())})
	if err != nil {
		return fmt.Errorf("page template: %w", err)
	}

	if !doc.opts.Minify {
		_, err = page.WriteTo(w)
		return err
	}
	return doc.m.Minify("text/html", w, page)
}
