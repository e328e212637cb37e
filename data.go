package scatter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when the CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// ErrNoData is returned when a field has no finite values to build a scale from.
var ErrNoData = errors.New("no data")

// Record is a single row of the survey dataset, usually one US state.
type Record struct {
	State string
	Abbr  string

	Poverty    float64 // percentage in poverty
	Age        float64 // median age
	Healthcare float64 // percentage with healthcare
	Smokes     float64 // percentage who smoke
}

// Dataset is a list of records in file order.
type Dataset []Record

var columns = []string{"state", "abbr", "poverty", "age", "healthcare", "smokes"}

// ReadCSV parses a dataset from CSV. The first row must be a header, columns are matched by name and may appear in any order. Columns other than state, abbr, poverty, age, healthcare and smokes are ignored.
func ReadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("header: %w", ErrMissingColumn)
	} else if err != nil {
		return nil, err
	}

	index := map[string]int{}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	cols := make([]int, len(columns))
	for i, name := range columns {
		j, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[i] = j
	}

	data := Dataset{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		get := func(i int) string {
			if cols[i] < len(row) {
				return row[cols[i]]
			}
			return ""
		}
		data = append(data, Record{
			State:      get(0),
			Abbr:       get(1),
			Poverty:    ParseNumber(get(2)),
			Age:        ParseNumber(get(3)),
			Healthcare: ParseNumber(get(4)),
			Smokes:     ParseNumber(get(5)),
		})
	}
	return data, nil
}

// LoadCSV reads a dataset from a CSV file.
func LoadCSV(filename string) (Dataset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load data file '%s': %w", filename, err)
	}
	return data, nil
}

// ParseNumber coerces a string to a number the way a unary plus does: whitespace is trimmed, the empty string is zero and anything else that is not a number is NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f // ±Inf
		}
		return math.NaN()
	}
	return f
}

// Extent returns the minimum and maximum of the values, ignoring NaNs and infinities.
func Extent(values []float64) (float64, float64, error) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if max < min {
		return 0.0, 0.0, ErrNoData
	}
	return min, max, nil
}

// XValues returns the values of the given field for all records.
func (data Dataset) XValues(f XField) []float64 {
	vs := make([]float64, len(data))
	for i, r := range data {
		vs[i] = f.Value(r)
	}
	return vs
}

// YValues returns the values of the given field for all records.
func (data Dataset) YValues(f YField) []float64 {
	vs := make([]float64, len(data))
	for i, r := range data {
		vs[i] = f.Value(r)
	}
	return vs
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
