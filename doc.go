// Package inflasi is a web dashboard for the monthly Indonesian inflation
// rate with SARIMA forecasting.
//
// The server lives in cmd/inflasi. It loads the series once at startup, from
// data/data_inflasi.csv or a PostgreSQL table, and serves two pages:
//
//   - Home: the historical series for a selectable range of months, as a
//     line chart and a table with the newest period first.
//   - ARIMA: a SARIMA(p,d,q)(P,D,Q)[s] model fitted to the whole series with
//     the orders chosen on sliders, and a 24 month forecast that can be
//     downloaded as CSV or XLSX.
//
// # Packages
//
//   - timeseries: monthly series and frames, CSV reading and writing
//   - dataset: load-once data sources (CSV, PostgreSQL)
//   - sarima: seasonal ARIMA estimation by conditional sum of squares
//   - arima: the fit and forecast interface used by the dashboard
//   - autoarima: stepwise order search used for the suggested model
//   - stats: ACF, PACF, Ljung-Box and unit root tests
//   - forecast: the fixed 24 period forecast pipeline and its exports
//   - chart: SVG line charts
//   - dashboard: HTTP handlers, sessions and templates
//   - config: YAML, .env and environment settings
//
// # Quick Start
//
//	go run ./cmd/inflasi -config config.yaml
//
// then open http://localhost:8501.
package inflasi
