// Package interactive renders the scatter plot as an SVG document that can be used in a browser: axis labels are links that select their field, markers have tooltips, and markers move to their new position after a field was selected.
package interactive

import (
	"fmt"
	"net/url"

	"github.com/tdewolff/scatter"
)

// State is the selection of fields as carried in a URL query. FromX and FromY are the fields selected before the last click, markers are animated from their positions under those fields.
type State struct {
	X     scatter.XField
	Y     scatter.YField
	FromX scatter.XField
	FromY scatter.YField
}

// DefaultState plots poverty against healthcare.
func DefaultState() State {
	return NewState(scatter.Poverty, scatter.Healthcare)
}

// NewState returns a state without pending transition.
func NewState(x scatter.XField, y scatter.YField) State {
	return State{x, y, x, y}
}

// ParseState parses the query parameters x, y, fx and fy. Missing fields default to poverty and healthcare, missing from-fields default to the current fields.
func ParseState(q url.Values) (State, error) {
	state := DefaultState()
	if v := q.Get("x"); v != "" {
		f, err := scatter.ParseXField(v)
		if err != nil {
			return State{}, err
		}
		state.X = f
	}
	if v := q.Get("y"); v != "" {
		f, err := scatter.ParseYField(v)
		if err != nil {
			return State{}, err
		}
		state.Y = f
	}
	state.FromX, state.FromY = state.X, state.Y
	if v := q.Get("fx"); v != "" {
		f, err := scatter.ParseXField(v)
		if err != nil {
			return State{}, fmt.Errorf("fx: %w", err)
		}
		state.FromX = f
	}
	if v := q.Get("fy"); v != "" {
		f, err := scatter.ParseYField(v)
		if err != nil {
			return State{}, fmt.Errorf("fy: %w", err)
		}
		state.FromY = f
	}
	return state, nil
}

// Animated returns true if the markers move from other fields.
func (s State) Animated() bool {
	return s.FromX != s.X || s.FromY != s.Y
}

// Settled returns the state without pending transition.
func (s State) Settled() State {
	return NewState(s.X, s.Y)
}

// Query encodes the state as query parameters.
func (s State) Query() url.Values {
	q := url.Values{}
	q.Set("x", s.X.String())
	q.Set("y", s.Y.String())
	if s.FromX != s.X {
		q.Set("fx", s.FromX.String())
	}
	if s.FromY != s.Y {
		q.Set("fy", s.FromY.String())
	}
	return q
}

// SelectX returns the state after clicking the label of a horizontal field. Clicking the current field returns false.
func (s State) SelectX(f scatter.XField) (State, bool) {
	if f == s.X {
		return s, false
	}
	return State{f, s.Y, s.X, s.Y}, true
}

// SelectY returns the state after clicking the label of a vertical field. Clicking the current field returns false.
func (s State) SelectY(f scatter.YField) (State, bool) {
	if f == s.Y {
		return s, false
	}
	return State{s.X, f, s.X, s.Y}, true
}

// Select returns the state after clicking an axis label.
func (s State) Select(label scatter.AxisLabel) (State, bool) {
	if label.Axis == scatter.AxisX {
		f, err := scatter.ParseXField(label.ID)
		if err != nil {
			return s, false
		}
		return s.SelectX(f)
	}
	f, err := scatter.ParseYField(label.ID)
	if err != nil {
		return s, false
	}
	return s.SelectY(f)
}

// Chart returns the chart in this state, together with the transitions that led to it from the previous fields.
func (s State) Chart(data scatter.Dataset, layout scatter.Layout) (*scatter.Chart, []*scatter.Transition, error) {
	chart, err := scatter.NewChartWith(data, layout, s.FromX, s.FromY)
	if err != nil {
		return nil, nil, err
	}
	trs := []*scatter.Transition{}
	if tr, ok, err := chart.SelectX(s.X); err != nil {
		return nil, nil, err
	} else if ok {
		trs = append(trs, tr)
	}
	if tr, ok, err := chart.SelectY(s.Y); err != nil {
		return nil, nil, err
	} else if ok {
		trs = append(trs, tr)
	}
	return chart, trs, nil
}
