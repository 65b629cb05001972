// Package arima is the date-aware front end to the sarima estimator.
//
// A Model couples an ARIMA order, an optional seasonal order and a series
// with a frequency. Fitting always uses the entire series; forecasts are
// dated by stepping the series frequency from its last period.
//
//	model, err := arima.New(series, arima.Order{P: 1, D: 1, Q: 1}, arima.SeasonalOrder{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := model.Fit()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	forecast, _ := results.Forecast(24)
//
// Estimation errors from sarima are wrapped, so callers can match them with
// errors.Is (for example sarima.ErrOverlappingLags).
package arima
