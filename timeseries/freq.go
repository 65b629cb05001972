package timeseries

import (
	"errors"
	"fmt"
	"time"
)

// Freq is a fixed sampling frequency annotation for a time index.
type Freq string

// MonthStart is monthly frequency anchored on the first day of each month.
const MonthStart Freq = "MS"

// ErrFrequency is returned when an index does not conform to a frequency.
var ErrFrequency = errors.New("index does not conform to frequency")

// MonthOf truncates t to the first day of its month (UTC).
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Add moves t forward by n periods (backward when n is negative).
func (f Freq) Add(t time.Time, n int) time.Time {
	switch f {
	case MonthStart:
		return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	default:
		return t
	}
}

// Range returns n consecutive periods starting at start.
func (f Freq) Range(start time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = f.Add(start, i)
	}
	return out
}

// Conforms checks that index is anchored and contiguous at frequency f.
func (f Freq) Conforms(index []time.Time) error {
	if f != MonthStart {
		return fmt.Errorf("%w: unsupported frequency %q", ErrFrequency, string(f))
	}
	for i, t := range index {
		if !t.Equal(MonthOf(t)) {
			return fmt.Errorf("%w %s: %s is not the start of a month", ErrFrequency, f, t.Format("2006-01-02"))
		}
		if i > 0 && !t.Equal(f.Add(index[i-1], 1)) {
			return fmt.Errorf("%w %s: %s does not follow %s",
				ErrFrequency, f, t.Format("2006-01-02"), index[i-1].Format("2006-01-02"))
		}
	}
	return nil
}
