package arima

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/sartorproj/inflasi/sarima"
	"github.com/sartorproj/inflasi/timeseries"
)

func monthly(n int) *timeseries.Series {
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, n)
	level := 4.0
	for i := range values {
		level += 0.2 * rng.NormFloat64()
		values[i] = level + 0.8*math.Sin(2*math.Pi*float64(i)/12)
	}
	s := timeseries.NewMonthly(time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC), values)
	s.Name = "Inflasi"
	return s
}

func TestNewRequiresFrequency(t *testing.T) {
	_, err := New(timeseries.New([]float64{1, 2, 3}), Order{P: 1}, SeasonalOrder{})
	if !errors.Is(err, ErrNoFrequency) {
		t.Errorf("Expected ErrNoFrequency, got %v", err)
	}
}

func TestForecastDates(t *testing.T) {
	model, err := New(monthly(156), Order{P: 1, D: 1, Q: 1}, SeasonalOrder{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	results, err := model.Fit()
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	forecast, err := results.Forecast(24)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if forecast.Len() != 24 {
		t.Fatalf("Expected 24 forecasts, got %d", forecast.Len())
	}
	if forecast.Name != ForecastName {
		t.Errorf("Expected name %q, got %q", ForecastName, forecast.Name)
	}
	first := forecast.Timestamps[0]
	last := forecast.Timestamps[23]
	if first.Format("2006-01-02") != "2023-01-01" {
		t.Errorf("Expected first forecast 2023-01-01, got %s", first.Format("2006-01-02"))
	}
	if last.Format("2006-01-02") != "2024-12-01" {
		t.Errorf("Expected last forecast 2024-12-01, got %s", last.Format("2006-01-02"))
	}
	if err := forecast.Freq.Conforms(forecast.Timestamps); err != nil {
		t.Errorf("Forecast index does not conform: %v", err)
	}
}

func TestSeasonalForecast(t *testing.T) {
	model, err := New(monthly(156), Order{P: 1, D: 0, Q: 0}, SeasonalOrder{P: 1, D: 1, Q: 0, S: 12})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	results, err := model.Fit()
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	p, err := results.GetForecast(24, 0.05)
	if err != nil {
		t.Fatalf("GetForecast failed: %v", err)
	}
	if p.Mean.Len() != 24 || p.Lower.Len() != 24 || p.Upper.Len() != 24 {
		t.Fatalf("Expected 24 records, got %d", p.Mean.Len())
	}
	for i := range p.Mean.Values {
		if !(p.Lower.Values[i] < p.Mean.Values[i] && p.Mean.Values[i] < p.Upper.Values[i]) {
			t.Errorf("Period %d outside band", i)
		}
	}
	if s := results.Summary(); s == nil || s.NObs != 156 {
		t.Errorf("Unexpected summary %+v", s)
	}
}

func TestFitErrorsPropagate(t *testing.T) {
	tests := []struct {
		name     string
		order    Order
		seasonal SeasonalOrder
		want     error
	}{
		{"seasonal without period", Order{P: 1}, SeasonalOrder{P: 1}, sarima.ErrSeasonalPeriod},
		{"overlapping lags", Order{P: 12}, SeasonalOrder{P: 1, S: 12}, sarima.ErrOverlappingLags},
		{"negative order", Order{P: -1}, SeasonalOrder{}, sarima.ErrInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := New(monthly(60), tt.order, tt.seasonal)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if _, err := model.Fit(); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}
