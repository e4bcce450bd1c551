package model

import (
	"math"
	"slices"

	"github.com/terradyn/geomodel/pkg/errors"
)

// TypeTimeSeries is the type tag for equal-step recorded series.
const TypeTimeSeries = "time_series"

// TimeSeries is a sequence of samples recorded at an equal time step,
// such as a ground motion record. It is a value type without a document
// category; callers that need one in a document attach it through the
// exporter's raw-block path.
type TimeSeries struct {
	Name string

	dt     float64
	values []float64
}

// NewTimeSeries creates a series from samples recorded at time step dt.
func NewTimeSeries(values []float64, dt float64) (*TimeSeries, error) {
	if dt <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "time step must be positive, got %.6f", dt)
	}
	return &TimeSeries{dt: dt, values: slices.Clone(values)}, nil
}

// DT returns the time step.
func (ts *TimeSeries) DT() float64 { return ts.dt }

// NPts returns the number of samples.
func (ts *TimeSeries) NPts() int { return len(ts.values) }

// Values returns a copy of the samples.
func (ts *TimeSeries) Values() []float64 { return slices.Clone(ts.values) }

// Time returns the sample times, of equal length to the series.
func (ts *TimeSeries) Time() []float64 {
	t := make([]float64, len(ts.values))
	for i := range t {
		t[i] = float64(i) * ts.dt
	}
	return t
}

// sectionIndices converts a [start, end] time window to sample bounds.
// Times are rounded to the nearest sample so windows expressed in
// multiples of dt are not off by one. A negative end means the end of
// the series.
func (ts *TimeSeries) sectionIndices(start, end float64) (int, int, error) {
	s := int(math.Round(start / ts.dt))
	e := len(ts.values)
	if end >= 0 {
		e = int(math.Round(end/ts.dt)) + 1
	}
	if start < 0 || s >= e || e > len(ts.values) {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "section [%.4f, %.4f] outside the recorded series", start, end)
	}
	return s, e, nil
}

// Cut shortens the series to the samples within the [start, end] time
// window. A negative end keeps everything from start onward.
func (ts *TimeSeries) Cut(start, end float64) error {
	s, e, err := ts.sectionIndices(start, end)
	if err != nil {
		return err
	}
	ts.values = slices.Clone(ts.values[s:e])
	return nil
}

// SectionAverage returns the mean sample value within the [start, end]
// time window. Commonly used to level a record before patching it with
// another one.
func (ts *TimeSeries) SectionAverage(start, end float64) (float64, error) {
	s, e, err := ts.sectionIndices(start, end)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, v := range ts.values[s:e] {
		sum += v
	}
	return sum / float64(e-s), nil
}
