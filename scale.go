package scatter

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Scale is a linear mapping from a data domain to a pixel range.
type Scale struct {
	Domain [2]float64
	Range  [2]float64
}

// NewScale returns a linear scale mapping [d0,d1] to [r0,r1].
func NewScale(d0, d1, r0, r1 float64) Scale {
	return Scale{[2]float64{d0, d1}, [2]float64{r0, r1}}
}

// NewXScale returns the horizontal scale of a field, with its domain padded by one unit below the minimum and two units above the maximum.
func NewXScale(data Dataset, f XField, width float64) (Scale, error) {
	min, max, err := Extent(data.XValues(f))
	if err != nil {
		return Scale{}, fmt.Errorf("%v: %w", f, err)
	}
	return NewScale(min-1.0, max+2.0, 0.0, width), nil
}

// NewYScale returns the vertical scale of a field, with its domain padded by one unit below the minimum and two units above the maximum. The range is inverted so that larger values are drawn higher up.
func NewYScale(data Dataset, f YField, height float64) (Scale, error) {
	min, max, err := Extent(data.YValues(f))
	if err != nil {
		return Scale{}, fmt.Errorf("%v: %w", f, err)
	}
	return NewScale(min-1.0, max+2.0, height, 0.0), nil
}

// NewZeroScale returns a scale with a domain from zero up to two units above the maximum of the values.
func NewZeroScale(values []float64, r0, r1 float64) (Scale, error) {
	_, max, err := Extent(values)
	if err != nil {
		return Scale{}, err
	}
	return NewScale(0.0, max+2.0, r0, r1), nil
}

// Map returns the pixel coordinate of v. For a degenerate domain it returns the middle of the range.
func (s Scale) Map(v float64) float64 {
	d := s.Domain[1] - s.Domain[0]
	t := 0.5
	if d != 0.0 {
		t = (v - s.Domain[0]) / d
	}
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// Invert returns the data value at pixel coordinate px.
func (s Scale) Invert(px float64) float64 {
	r := s.Range[1] - s.Range[0]
	t := 0.5
	if r != 0.0 {
		t = (px - s.Range[0]) / r
	}
	return s.Domain[0] + t*(s.Domain[1]-s.Domain[0])
}

// Lerp interpolates the domain and range between two scales.
func (s Scale) Lerp(to Scale, t float64) Scale {
	lerp := func(a, b float64) float64 {
		return a + t*(b-a)
	}
	return NewScale(
		lerp(s.Domain[0], to.Domain[0]), lerp(s.Domain[1], to.Domain[1]),
		lerp(s.Range[0], to.Range[0]), lerp(s.Range[1], to.Range[1]),
	)
}

// Equal returns true if both scales have the same domain and range.
func (s Scale) Equal(o Scale) bool {
	return s.Domain == o.Domain && s.Range == o.Range
}

var (
	e10 = math.Sqrt(50.0)
	e5  = math.Sqrt(10.0)
	e2  = math.Sqrt(2.0)
)

func tickSpec(start, stop, count float64) (float64, float64, float64) {
	step := (stop - start) / math.Max(0.0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10.0, power)
	factor := 1.0
	if e10 <= e {
		factor = 10.0
	} else if e5 <= e {
		factor = 5.0
	} else if e2 <= e {
		factor = 2.0
	}

	var i1, i2, inc float64
	if power < 0.0 {
		inc = math.Pow(10.0, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if stop < i2/inc {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10.0, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if stop < i2*inc {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2.0 {
		return tickSpec(start, stop, count*2.0)
	}
	return i1, i2, inc
}

// Ticks returns approximately count round values within the domain, spaced at 1, 2 or 5 times a power of ten.
func (s Scale) Ticks(count int) []float64 {
	start, stop := s.Domain[0], s.Domain[1]
	if count <= 0 || !finite(start) || !finite(stop) {
		return nil
	} else if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if i2 < i1 {
		return nil
	}

	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		j := i
		if reverse {
			j = n - 1 - i
		}
		if inc < 0.0 {
			ticks[j] = (i1 + float64(i)) / -inc
		} else {
			ticks[j] = (i1 + float64(i)) * inc
		}
	}
	return ticks
}

// TickStep returns the distance between consecutive ticks.
func (s Scale) TickStep(count int) float64 {
	start, stop := s.Domain[0], s.Domain[1]
	if stop < start {
		start, stop = stop, start
	}
	if count <= 0 || start == stop || !finite(start) || !finite(stop) {
		return 0.0
	}
	_, _, inc := tickSpec(start, stop, float64(count))
	if inc < 0.0 {
		return -1.0 / inc
	}
	return inc
}

var numberPrinter = message.NewPrinter(language.English)

// TickFormat returns a formatter for the tick values, using as many decimals as the tick step requires and grouping thousands.
func (s Scale) TickFormat(count int) func(float64) string {
	prec := 0
	if step := s.TickStep(count); 0.0 < step {
		prec = int(math.Max(0.0, -math.Floor(math.Log10(step))))
	}
	format := fmt.Sprintf("%%.%df", prec)
	return func(v float64) string {
		if v == 0.0 {
			v = 0.0 // no negative zero
		}
		return numberPrinter.Sprintf(format, v)
	}
}
