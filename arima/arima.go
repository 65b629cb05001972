// Package arima binds a seasonal ARIMA specification to a dated series and
// returns forecasts indexed by the periods that follow the series.
package arima

import (
	"errors"
	"fmt"
	"time"

	"github.com/sartorproj/inflasi/sarima"
	"github.com/sartorproj/inflasi/timeseries"
)

// ForecastName is the column name given to point forecasts.
const ForecastName = "predicted_mean"

// ErrNoFrequency is returned when the series carries no frequency annotation
// or no time index, so forecast periods cannot be dated.
var ErrNoFrequency = errors.New("arima: series has no frequency")

// Order represents ARIMA model order (p, d, q).
type Order struct {
	P int // AR order (number of autoregressive terms)
	D int // Differencing order
	Q int // MA order (number of moving average terms)
}

// SeasonalOrder represents the seasonal part (P, D, Q, s).
type SeasonalOrder struct {
	P int
	D int
	Q int
	S int // Seasonal period, 0 for none
}

// Model is an unfitted model specification bound to a series.
type Model struct {
	Order    Order
	Seasonal SeasonalOrder
	series   *timeseries.Series
}

// New creates a model for a copy of series. Orders are not checked here;
// Fit reports combinations the estimator cannot handle.
func New(series *timeseries.Series, order Order, seasonal SeasonalOrder) (*Model, error) {
	if series.Freq == "" || len(series.Timestamps) != series.Len() {
		return nil, ErrNoFrequency
	}
	return &Model{Order: order, Seasonal: seasonal, series: series.Copy()}, nil
}

// SARIMAOrder returns the combined order understood by the estimator.
func (m *Model) SARIMAOrder() sarima.Order {
	return sarima.Order{
		P: m.Order.P, D: m.Order.D, Q: m.Order.Q,
		SP: m.Seasonal.P, SD: m.Seasonal.D, SQ: m.Seasonal.Q, M: m.Seasonal.S,
	}
}

// Fit estimates the model on the whole series.
func (m *Model) Fit() (*Results, error) {
	o := m.SARIMAOrder()
	est := sarima.New(o.P, o.D, o.Q, o.SP, o.SD, o.SQ, o.M)
	if err := est.Fit(m.series); err != nil {
		return nil, fmt.Errorf("fit %s: %w", o, err)
	}
	return &Results{Model: est, series: m.series}, nil
}

// Results holds a fitted model and the series it was fitted on.
type Results struct {
	Model  *sarima.Model
	series *timeseries.Series
}

// Prediction is a dated forecast with its confidence band.
type Prediction struct {
	Mean  *timeseries.Series
	Lower *timeseries.Series
	Upper *timeseries.Series
	Alpha float64
}

// Forecast returns steps point forecasts dated from the period after the
// last observation.
func (r *Results) Forecast(steps int) (*timeseries.Series, error) {
	p, err := r.GetForecast(steps, 0.05)
	if err != nil {
		return nil, err
	}
	return p.Mean, nil
}

// GetForecast returns point forecasts with a (1-alpha) prediction interval.
func (r *Results) GetForecast(steps int, alpha float64) (*Prediction, error) {
	mean, lower, upper, err := r.Model.PredictWithInterval(steps, 1-alpha)
	if err != nil {
		return nil, err
	}

	index := r.futureIndex(steps)
	return &Prediction{
		Mean:  r.dated(index, mean, ForecastName),
		Lower: r.dated(index, lower, "lower "+r.seriesName()),
		Upper: r.dated(index, upper, "upper "+r.seriesName()),
		Alpha: alpha,
	}, nil
}

// Summary returns the estimator's summary.
func (r *Results) Summary() *sarima.Summary {
	return r.Model.Summary()
}

func (r *Results) futureIndex(steps int) []time.Time {
	last := r.series.Timestamps[r.series.Len()-1]
	return r.series.Freq.Range(r.series.Freq.Add(last, 1), steps)
}

func (r *Results) dated(index []time.Time, values []float64, name string) *timeseries.Series {
	return &timeseries.Series{
		Timestamps: index,
		Values:     values,
		Name:       name,
		Freq:       r.series.Freq,
	}
}

func (r *Results) seriesName() string {
	if r.series.Name == "" {
		return "y"
	}
	return r.series.Name
}
