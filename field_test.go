package scatter

import (
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

func TestXField(t *testing.T) {
	r := Record{"Alabama", "AL", 19.3, 38.6, 13.9, 21.1}
	test.T(t, Poverty.String(), "poverty")
	test.T(t, Age.String(), "age")
	test.T(t, Poverty.Label(), "% In Poverty")
	test.T(t, Age.Label(), "Age")
	test.T(t, Poverty.TooltipLabel(), "% In Poverty:")
	test.T(t, Age.TooltipLabel(), "Age:")
	test.Float(t, Poverty.LabelOffset(), 2.5)
	test.Float(t, Age.LabelOffset(), 3.5)
	test.Float(t, Poverty.Value(r), 19.3)
	test.Float(t, Age.Value(r), 38.6)
}

func TestYField(t *testing.T) {
	r := Record{"Alabama", "AL", 19.3, 38.6, 13.9, 21.1}
	test.T(t, Healthcare.String(), "healthcare")
	test.T(t, Smokes.String(), "smokes")
	test.T(t, Healthcare.Label(), "% With Healthcare")
	test.T(t, Smokes.Label(), "% Who Smoke")
	test.T(t, Healthcare.TooltipLabel(), "% With Healthcare:")
	test.T(t, Smokes.TooltipLabel(), "% Who Smoke:")
	test.Float(t, Healthcare.LabelOffset(), 2.5)
	test.Float(t, Smokes.LabelOffset(), 1.5)
	test.Float(t, Healthcare.Value(r), 13.9)
	test.Float(t, Smokes.Value(r), 21.1)
}

func TestParseField(t *testing.T) {
	for _, f := range XFields {
		g, err := ParseXField(f.String())
		test.Error(t, err)
		test.T(t, g, f)
	}
	for _, f := range YFields {
		g, err := ParseYField(f.String())
		test.Error(t, err)
		test.T(t, g, f)
	}

	_, err := ParseXField("healthcare")
	test.That(t, errors.Is(err, ErrUnknownField))
	_, err = ParseYField("age")
	test.That(t, errors.Is(err, ErrUnknownField))
	_, err = ParseXField("Poverty")
	test.That(t, errors.Is(err, ErrUnknownField))
}

func TestFieldText(t *testing.T) {
	var x XField
	test.Error(t, x.UnmarshalText([]byte("age")))
	test.T(t, x, Age)
	b, err := x.MarshalText()
	test.Error(t, err)
	test.String(t, string(b), "age")

	var y YField
	test.Error(t, y.UnmarshalText([]byte("smokes")))
	test.T(t, y, Smokes)
	test.That(t, y.UnmarshalText([]byte("obesity")) != nil)
	test.T(t, y, Smokes)
}

func TestAxis(t *testing.T) {
	test.String(t, AxisX.String(), "x")
	test.String(t, AxisY.String(), "y")
}
