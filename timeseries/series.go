// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series represents a single time series column with timestamps and values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
	Freq       Freq
}

// New creates a new time series from values without a time index.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewMonthly creates a month-start series whose first period is start.
func NewMonthly(start time.Time, values []float64) *Series {
	return &Series{
		Timestamps: MonthStart.Range(MonthOf(start), len(values)),
		Values:     values,
		Freq:       MonthStart,
	}
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance calculates the unbiased sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std calculates the standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// Last returns the final period and value. ok is false for an empty series.
func (s *Series) Last() (t time.Time, v float64, ok bool) {
	n := len(s.Values)
	if n == 0 {
		return time.Time{}, 0, false
	}
	if len(s.Timestamps) == n {
		t = s.Timestamps[n-1]
	}
	return t, s.Values[n-1], true
}

// Diff calculates the first difference of the series.
func (s *Series) Diff() *Series {
	return s.lagDiff(1, "_diff")
}

// SeasonalDiff calculates the seasonal difference with period m.
func (s *Series) SeasonalDiff(m int) *Series {
	return s.lagDiff(m, "_seasonal_diff")
}

func (s *Series) lagDiff(lag int, suffix string) *Series {
	if lag <= 0 || len(s.Values) <= lag {
		return &Series{Values: []float64{}}
	}

	result := make([]float64, len(s.Values)-lag)
	for i := lag; i < len(s.Values); i++ {
		result[i-lag] = s.Values[i] - s.Values[i-lag]
	}

	var timestamps []time.Time
	if len(s.Timestamps) == len(s.Values) {
		timestamps = make([]time.Time, len(result))
		copy(timestamps, s.Timestamps[lag:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + suffix,
		Freq:       s.Freq,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
		Freq:       s.Freq,
	}
}
