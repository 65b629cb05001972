// Package forecast runs the fit-and-forecast pipeline behind the forecast
// page and serializes its result.
package forecast

import (
	"context"
	"fmt"

	"github.com/sartorproj/inflasi/arima"
	"github.com/sartorproj/inflasi/sarima"
	"github.com/sartorproj/inflasi/timeseries"
)

// Horizon is the number of periods forecast on every run.
const Horizon = 24

// Result is one fitted model and its forecast.
type Result struct {
	Params   Params
	Forecast *timeseries.Series // named "predicted_mean"
	Lower    *timeseries.Series
	Upper    *timeseries.Series
	Summary  *sarima.Summary
}

// Run fits SARIMA(p,d,q)(P,D,Q)[s] on the whole series and forecasts
// Horizon periods with a 95% interval. Estimation errors are returned as is.
func Run(ctx context.Context, series *timeseries.Series, params Params) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	model, err := arima.New(series,
		arima.Order{P: params.P, D: params.D, Q: params.Q},
		arima.SeasonalOrder{P: params.SP, D: params.SD, Q: params.SQ, S: params.S})
	if err != nil {
		return nil, err
	}

	results, err := model.Fit()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pred, err := results.GetForecast(Horizon, 0.05)
	if err != nil {
		return nil, err
	}
	if pred.Mean.Len() != Horizon {
		return nil, fmt.Errorf("forecast has %d periods, want %d", pred.Mean.Len(), Horizon)
	}

	return &Result{
		Params:   params,
		Forecast: pred.Mean,
		Lower:    pred.Lower,
		Upper:    pred.Upper,
		Summary:  results.Summary(),
	}, nil
}
