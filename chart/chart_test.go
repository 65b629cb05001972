package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/sartorproj/inflasi/timeseries"
)

func testFrame(t *testing.T, n int) *timeseries.Frame {
	t.Helper()
	index := timeseries.MonthStart.Range(time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC), n)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{float64(i%12) + 1}
	}
	f, err := timeseries.NewFrame(index, []string{"Inflasi"}, rows)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	return f
}

func TestFrameSVG(t *testing.T) {
	b, err := Frame(testFrame(t, 36), "Tingkat Inflasi")
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if !bytes.Contains(b, []byte("<svg")) {
		t.Error("Expected SVG output")
	}
}

func TestFrameSinglePoint(t *testing.T) {
	b, err := Frame(testFrame(t, 1), "")
	if err != nil {
		t.Fatalf("Frame failed for a single record: %v", err)
	}
	if !bytes.Contains(b, []byte("<svg")) {
		t.Error("Expected SVG output")
	}
}

func TestForecastSVG(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 24)
	lo := make([]float64, 24)
	hi := make([]float64, 24)
	for i := range values {
		values[i] = 5
		lo[i] = 5 - float64(i)/10
		hi[i] = 5 + float64(i)/10
	}
	mean := timeseries.NewMonthly(start, values)
	mean.Name = "predicted_mean"
	lower := timeseries.NewMonthly(start, lo)
	lower.Name = "lower"
	upper := timeseries.NewMonthly(start, hi)
	upper.Name = "upper"

	b, err := Forecast(mean, lower, upper, "Peramalan")
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if !bytes.Contains(b, []byte("<svg")) {
		t.Error("Expected SVG output")
	}
}

func TestEmptyInputs(t *testing.T) {
	if _, err := Frame(nil, ""); err == nil {
		t.Error("Expected an error for a nil frame")
	}
	if _, err := Forecast(timeseries.New(nil), nil, nil, ""); err == nil {
		t.Error("Expected an error for an empty forecast")
	}
	if _, err := Forecast(timeseries.New([]float64{1}), nil, nil, ""); err == nil {
		t.Error("Expected an error for a series without an index")
	}
}
