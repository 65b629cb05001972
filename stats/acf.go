// Package stats provides statistical tests and functions for time series analysis.
package stats

import (
	"github.com/sartorproj/inflasi/timeseries"
	"gonum.org/v1/gonum/floats"
)

// ACF calculates the Autocorrelation Function for the given series.
// Returns ACF values for lags 0 to maxLag, or nil for a constant series.
func ACF(series *timeseries.Series, maxLag int) []float64 {
	n := series.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	centered := make([]float64, n)
	copy(centered, series.Values)
	floats.AddConst(-series.Mean(), centered)
	denom := floats.Dot(centered, centered)
	if denom == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		acf[k] = floats.Dot(centered[k:], centered[:n-k]) / denom
	}
	return acf
}

// PACF calculates the Partial Autocorrelation Function with the
// Durbin-Levinson recursion. Index 0 holds 1; indexes 1..maxLag hold the
// partial autocorrelations.
func PACF(series *timeseries.Series, maxLag int) []float64 {
	acf := ACF(series, maxLag)
	if len(acf) < 2 {
		return nil
	}
	maxLag = len(acf) - 1

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1

	prev := []float64{acf[1]}
	pacf[1] = acf[1]
	for k := 2; k <= maxLag; k++ {
		num, den := acf[k], 1.0
		for j := 1; j < k; j++ {
			num -= prev[j-1] * acf[k-j]
			den -= prev[j-1] * acf[j]
		}
		if den == 0 {
			break
		}
		kk := num / den
		cur := make([]float64, k)
		for j := 1; j < k; j++ {
			cur[j-1] = prev[j-1] - kk*prev[k-j-1]
		}
		cur[k-1] = kk
		pacf[k] = kk
		prev = cur
	}
	return pacf
}
