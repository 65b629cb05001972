package timeseries

import (
	"math"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}

	for i, v := range s.Values {
		if v != values[i] {
			t.Errorf("Expected value %f at index %d, got %f", values[i], i, v)
		}
	}
}

func TestNewMonthly(t *testing.T) {
	s := NewMonthly(time.Date(2022, time.November, 17, 0, 0, 0, 0, time.UTC), []float64{1, 2, 3})

	want := []string{"2022-11-01", "2022-12-01", "2023-01-01"}
	for i, w := range want {
		if got := s.Timestamps[i].Format("2006-01-02"); got != w {
			t.Errorf("Timestamp %d: expected %s, got %s", i, w, got)
		}
	}
	if s.Freq != MonthStart {
		t.Errorf("Expected frequency MS, got %q", s.Freq)
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			result := s.Mean()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected mean %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestVarianceAndStd(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := 4.571428571428571

	if v := s.Variance(); math.Abs(v-expected) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", expected, v)
	}
	if sd := s.Std(); math.Abs(sd-math.Sqrt(expected)) > 1e-10 {
		t.Errorf("Expected std %f, got %f", math.Sqrt(expected), sd)
	}
}

func TestMinMax(t *testing.T) {
	s := New([]float64{5, 2, 8, 1, 9, 3})

	if s.Min() != 1 {
		t.Errorf("Expected min 1, got %f", s.Min())
	}
	if s.Max() != 9 {
		t.Errorf("Expected max 9, got %f", s.Max())
	}

	empty := New(nil)
	if !math.IsNaN(empty.Min()) || !math.IsNaN(empty.Max()) {
		t.Error("Expected NaN min/max for an empty series")
	}
}

func TestDiff(t *testing.T) {
	s := NewMonthly(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), []float64{1, 3, 6, 10, 15})
	diff := s.Diff()

	expected := []float64{2, 3, 4, 5}
	if diff.Len() != len(expected) {
		t.Fatalf("Expected length %d, got %d", len(expected), diff.Len())
	}
	for i, v := range expected {
		if diff.Values[i] != v {
			t.Errorf("Diff at %d: expected %f, got %f", i, v, diff.Values[i])
		}
	}
	if got := diff.Timestamps[0].Format("2006-01"); got != "2020-02" {
		t.Errorf("Expected differenced series to start 2020-02, got %s", got)
	}
}

func TestSeasonalDiff(t *testing.T) {
	values := []float64{1, 2, 3, 4, 11, 12, 13, 14}
	sdiff := New(values).SeasonalDiff(4)

	if sdiff.Len() != 4 {
		t.Fatalf("Expected length 4, got %d", sdiff.Len())
	}
	for i, v := range sdiff.Values {
		if v != 10 {
			t.Errorf("Seasonal diff at %d: expected 10, got %f", i, v)
		}
	}

	if New(values).SeasonalDiff(0).Len() != 0 {
		t.Error("Expected empty series for period 0")
	}
}

func TestCopy(t *testing.T) {
	s := NewMonthly(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), []float64{1, 2, 3, 4, 5})
	c := s.Copy()
	if c.Len() != 5 || c.Timestamps[4].Month() != time.May || c.Freq != MonthStart {
		t.Errorf("Unexpected copy %v %v", c.Values, c.Timestamps)
	}

	c.Values[0] = 100
	if s.Values[0] == 100 {
		t.Error("Copy shares storage with the original")
	}
}

func TestLast(t *testing.T) {
	s := NewMonthly(time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC), []float64{5.51})
	ts, v, ok := s.Last()
	if !ok || v != 5.51 || ts.Format("2006-01") != "2022-12" {
		t.Errorf("Unexpected last observation %s %f %v", ts, v, ok)
	}

	if _, _, ok := New(nil).Last(); ok {
		t.Error("Expected ok=false for an empty series")
	}
}
