package scatter

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when parsing a name that is not a field of the axis.
var ErrUnknownField = errors.New("unknown field")

// Axis is either the horizontal or the vertical axis of the chart.
type Axis int

// see Axis
const (
	AxisX Axis = iota
	AxisY
)

func (axis Axis) String() string {
	if axis == AxisX {
		return "x"
	}
	return "y"
}

// XField is a dataset field that can be bound to the horizontal axis.
type XField int

// see XField
const (
	Poverty XField = iota
	Age
)

// XFields lists the horizontal fields in the order their labels are stacked.
var XFields = []XField{Poverty, Age}

// ParseXField returns the horizontal field by its column name.
func ParseXField(name string) (XField, error) {
	for _, f := range XFields {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w for x axis: %q", ErrUnknownField, name)
}

// String returns the column name, which also serves as identifier of the label.
func (f XField) String() string {
	switch f {
	case Poverty:
		return "poverty"
	case Age:
		return "age"
	}
	return fmt.Sprintf("XField(%d)", int(f))
}

// Label returns the axis label text.
func (f XField) Label() string {
	if f == Age {
		return "Age"
	}
	return "% In Poverty"
}

// TooltipLabel returns the text preceding the value in a tooltip.
func (f XField) TooltipLabel() string {
	if f == Age {
		return "Age:"
	}
	return "% In Poverty:"
}

// LabelOffset returns the baseline offset of the axis label in em.
func (f XField) LabelOffset() float64 {
	if f == Age {
		return 3.5
	}
	return 2.5
}

// Value returns the field's value of a record.
func (f XField) Value(r Record) float64 {
	if f == Age {
		return r.Age
	}
	return r.Poverty
}

// MarshalText implements encoding.TextMarshaler.
func (f XField) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *XField) UnmarshalText(b []byte) error {
	v, err := ParseXField(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// YField is a dataset field that can be bound to the vertical axis.
type YField int

// see YField
const (
	Healthcare YField = iota
	Smokes
)

// YFields lists the vertical fields in the order their labels are stacked.
var YFields = []YField{Healthcare, Smokes}

// ParseYField returns the vertical field by its column name.
func ParseYField(name string) (YField, error) {
	for _, f := range YFields {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w for y axis: %q", ErrUnknownField, name)
}

// String returns the column name, which also serves as identifier of the label.
func (f YField) String() string {
	switch f {
	case Healthcare:
		return "healthcare"
	case Smokes:
		return "smokes"
	}
	return fmt.Sprintf("YField(%d)", int(f))
}

// Label returns the axis label text.
func (f YField) Label() string {
	if f == Smokes {
		return "% Who Smoke"
	}
	return "% With Healthcare"
}

// TooltipLabel returns the text preceding the value in a tooltip.
func (f YField) TooltipLabel() string {
	if f == Smokes {
		return "% Who Smoke:"
	}
	return "% With Healthcare:"
}

// LabelOffset returns the baseline offset of the axis label in em.
func (f YField) LabelOffset() float64 {
	if f == Smokes {
		return 1.5
	}
	return 2.5
}

// Value returns the field's value of a record.
func (f YField) Value(r Record) float64 {
	if f == Smokes {
		return r.Smokes
	}
	return r.Healthcare
}

// MarshalText implements encoding.TextMarshaler.
func (f YField) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *YField) UnmarshalText(b []byte) error {
	v, err := ParseYField(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
