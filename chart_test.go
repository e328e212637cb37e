package scatter

import (
	"errors"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func testChart(t *testing.T) *Chart {
	chart, err := NewChart(testData(t), DefaultLayout)
	test.Error(t, err)
	return chart
}

func TestLayout(t *testing.T) {
	test.Float(t, DefaultLayout.ChartWidth(), 650.0)
	test.Float(t, DefaultLayout.ChartHeight(), 450.0)
}

func TestChartInitial(t *testing.T) {
	chart := testChart(t)
	test.T(t, chart.X(), Poverty)
	test.T(t, chart.Y(), Healthcare)
	test.Float(t, chart.XScale().Domain[0], 10.2)
	test.Float(t, chart.YScale().Domain[1], 17.0)
	test.Float(t, chart.YScale().Range[0], 450.0)

	markers := chart.Markers()
	test.T(t, len(markers), 3)
	test.T(t, markers[1].Index, 1)
	test.T(t, markers[1].Record.Abbr, "AK")
	test.Float(t, markers[1].X, chart.XScale().Map(11.2))
	test.Float(t, markers[1].Y, chart.YScale().Map(15.0))
	test.Float(t, markers[1].LabelPos().Y, markers[1].Y+3.0)
}

func TestChartMarkersSkipMissing(t *testing.T) {
	data := testData(t)
	data[1].Poverty = math.NaN()
	chart, err := NewChart(data, DefaultLayout)
	test.Error(t, err)

	markers := chart.Markers()
	test.T(t, len(markers), 2)
	test.T(t, markers[0].Index, 0)
	test.T(t, markers[1].Index, 2)
}

func TestChartSelectSame(t *testing.T) {
	chart := testChart(t)
	before := chart.Markers()

	tr, ok, err := chart.SelectX(Poverty)
	test.Error(t, err)
	test.That(t, !ok)
	test.That(t, tr == nil)
	tr, ok, err = chart.SelectY(Healthcare)
	test.Error(t, err)
	test.That(t, !ok)
	test.That(t, tr == nil)

	test.T(t, chart.Markers(), before)
	test.T(t, chart.X(), Poverty)
	test.T(t, chart.Y(), Healthcare)
}

func TestChartSelectX(t *testing.T) {
	chart := testChart(t)
	before := chart.Markers()

	tr, ok, err := chart.SelectX(Age)
	test.Error(t, err)
	test.That(t, ok)
	test.T(t, tr.Axis, AxisX)
	test.T(t, chart.X(), Age)
	test.Float(t, chart.XScale().Domain[0], 32.3)
	test.Float(t, chart.XScale().Domain[1], 40.6)
	test.Float(t, tr.FromScale.Domain[0], 10.2)

	after := chart.Markers()
	test.T(t, len(tr.Moves), len(after))
	for i, m := range tr.Moves {
		test.T(t, m.Index, after[i].Index)
		test.T(t, m.From, before[i].Point)
		test.T(t, m.To, after[i].Point)
		test.Float(t, m.From.Y, m.To.Y)
	}
	test.Float(t, after[1].X, chart.XScale().Map(33.3))
}

func TestChartSelectY(t *testing.T) {
	chart := testChart(t)
	before := chart.Markers()

	tr, ok, err := chart.SelectY(Smokes)
	test.Error(t, err)
	test.That(t, ok)
	test.T(t, tr.Axis, AxisY)
	test.T(t, chart.Y(), Smokes)
	for i, m := range tr.Moves {
		test.Float(t, m.From.X, m.To.X)
		test.T(t, m.From, before[i].Point)
	}
	after := chart.Markers()
	test.That(t, after[0].Y < after[2].Y) // more smokers is drawn higher
}

func TestChartSelectNoData(t *testing.T) {
	data := testData(t)
	for i := range data {
		data[i].Age = math.NaN()
	}
	chart, err := NewChart(data, DefaultLayout)
	test.Error(t, err)

	before := chart.Markers()
	tr, ok, err := chart.SelectX(Age)
	test.That(t, errors.Is(err, ErrNoData))
	test.That(t, !ok)
	test.That(t, tr == nil)
	test.T(t, chart.X(), Poverty)
	test.T(t, chart.Markers(), before)

	for i := range data {
		data[i].Smokes = math.NaN()
	}
	_, _, err = chart.SelectY(Smokes)
	test.That(t, errors.Is(err, ErrNoData))
	test.T(t, chart.Y(), Healthcare)
}

func TestChartLabels(t *testing.T) {
	chart := testChart(t)
	test.T(t, chart.Labels(AxisX), []AxisLabel{
		{AxisX, "poverty", "% In Poverty", 2.5, true},
		{AxisX, "age", "Age", 3.5, false},
	})
	test.T(t, chart.Labels(AxisY), []AxisLabel{
		{AxisY, "healthcare", "% With Healthcare", 2.5, true},
		{AxisY, "smokes", "% Who Smoke", 1.5, false},
	})

	chart.SelectX(Age)
	chart.SelectY(Smokes)
	labels := chart.Labels(AxisX)
	test.T(t, labels[0].Class(), "inactive")
	test.T(t, labels[1].Class(), "active")
	labels = chart.Labels(AxisY)
	test.T(t, labels[0].Class(), "inactive")
	test.T(t, labels[1].Class(), "active")
}

func TestChartTooltip(t *testing.T) {
	chart := testChart(t)
	r := chart.Data()[0]
	test.T(t, chart.Tooltip(r), []string{"Alabama", "% In Poverty: 19.3", "% With Healthcare: 13.9"})

	chart.SelectX(Age)
	test.T(t, chart.Tooltip(r), []string{"Alabama", "Age: 38.6", "% With Healthcare: 13.9"})

	chart.SelectY(Smokes)
	test.T(t, chart.Tooltip(r), []string{"Alabama", "Age: 38.6", "% Who Smoke: 21.1"})
}
