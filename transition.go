package scatter

import (
	"time"

	"github.com/tdewolff/canvas"
)

// DefaultDuration is the duration of an axis transition.
const DefaultDuration = 1000 * time.Millisecond

// EaseCubicInOut is a symmetric cubic easing function on [0,1].
func EaseCubicInOut(t float64) float64 {
	if t <= 0.0 {
		return 0.0
	} else if 1.0 <= t {
		return 1.0
	}
	t *= 2.0
	if t <= 1.0 {
		return t * t * t / 2.0
	}
	t -= 2.0
	return (t*t*t + 2.0) / 2.0
}

// CubicInOutSpline are the control points of a cubic Bézier that approximates EaseCubicInOut, suitable for CSS or SMIL key splines.
var CubicInOutSpline = [4]float64{0.645, 0.045, 0.355, 1.0}

// Move is the path of a single marker during a transition.
type Move struct {
	Index    int
	From, To canvas.Point
}

// Transition animates the markers and the scale of one axis after a field was selected.
type Transition struct {
	Axis     Axis
	Duration time.Duration
	Ease     func(float64) float64

	Moves     []Move
	FromScale Scale
	ToScale   Scale
}

func newTransition(axis Axis, from, to []Marker, fromScale, toScale Scale) *Transition {
	prev := make(map[int]canvas.Point, len(from))
	for _, m := range from {
		prev[m.Index] = m.Point
	}
	moves := make([]Move, 0, len(to))
	for _, m := range to {
		p, ok := prev[m.Index]
		if !ok {
			p = m.Point
		}
		moves = append(moves, Move{m.Index, p, m.Point})
	}
	return &Transition{
		Axis:      axis,
		Duration:  DefaultDuration,
		Ease:      EaseCubicInOut,
		Moves:     moves,
		FromScale: fromScale,
		ToScale:   toScale,
	}
}

// Progress returns the eased progress in [0,1] after the elapsed time.
func (tr *Transition) Progress(elapsed time.Duration) float64 {
	if tr.Duration <= 0 || tr.Duration <= elapsed {
		return 1.0
	} else if elapsed <= 0 {
		return 0.0
	}
	t := float64(elapsed) / float64(tr.Duration)
	if tr.Ease != nil {
		t = tr.Ease(t)
	}
	return t
}

// Done returns true if the transition has finished after the elapsed time.
func (tr *Transition) Done(elapsed time.Duration) bool {
	return tr.Duration <= elapsed
}

// At returns the marker positions after the elapsed time, indexed by record index.
func (tr *Transition) At(elapsed time.Duration) map[int]canvas.Point {
	t := tr.Progress(elapsed)
	ps := make(map[int]canvas.Point, len(tr.Moves))
	for _, m := range tr.Moves {
		ps[m.Index] = m.From.Interpolate(m.To, t)
	}
	return ps
}

// ScaleAt returns the scale of the transitioning axis after the elapsed time.
func (tr *Transition) ScaleAt(elapsed time.Duration) Scale {
	t := tr.Progress(elapsed)
	if t <= 0.0 {
		return tr.FromScale
	} else if 1.0 <= t {
		return tr.ToScale
	}
	return tr.FromScale.Lerp(tr.ToScale, t)
}

// Frames returns n moments evenly spread over the transition, including its start and end.
func (tr *Transition) Frames(n int) []time.Duration {
	if n <= 0 {
		return nil
	} else if n == 1 {
		return []time.Duration{tr.Duration}
	}
	frames := make([]time.Duration, n)
	for i := range frames {
		frames[i] = time.Duration(int64(tr.Duration) * int64(i) / int64(n-1))
	}
	return frames
}
