package stats

import (
	"math"

	"github.com/sartorproj/inflasi/timeseries"
	"gonum.org/v1/gonum/stat"
)

// NDiffs determines the number of first differences required for
// stationarity, up to maxD. testType is "kpss" (default) or "adf".
func NDiffs(series *timeseries.Series, maxD int, testType string) int {
	if maxD <= 0 {
		maxD = 2
	}

	current := series
	for d := 0; d < maxD; d++ {
		if isStationary(current, testType) {
			return d
		}
		current = current.Diff()
		if current.Len() < 10 {
			return d
		}
	}
	return maxD
}

func isStationary(s *timeseries.Series, testType string) bool {
	if testType == "adf" {
		r := ADF(s, 0)
		return r != nil && r.IsStationary
	}
	r := KPSS(s, "c", 0)
	return r != nil && r.IsStationary
}

// NSDiffs determines the number of seasonal differences required. One
// seasonal difference is suggested while the seasonal strength F_S >= 0.64.
func NSDiffs(series *timeseries.Series, period int, maxD int) int {
	if maxD <= 0 {
		maxD = 1
	}
	if period <= 1 || series.Len() < 2*period {
		return 0
	}

	current := series
	for d := 0; d < maxD; d++ {
		if SeasonalStrength(current, period) < 0.64 {
			return d
		}
		current = current.SeasonalDiff(period)
		if current.Len() < 2*period {
			return d + 1
		}
	}
	return maxD
}

// SeasonalStrength returns F_S = max(0, 1 - Var(R)/Var(S+R)) from an
// additive classical decomposition with a centred moving-average trend.
func SeasonalStrength(series *timeseries.Series, period int) float64 {
	n := series.Len()
	if period <= 1 || n < 2*period {
		return 0
	}
	y := series.Values

	half := period / 2
	detrended := make([]float64, n)
	valid := make([]bool, n)
	for t := half; t < n-half; t++ {
		var trend float64
		if period%2 == 0 {
			sum := 0.5*y[t-half] + 0.5*y[t+half]
			for i := t - half + 1; i < t+half; i++ {
				sum += y[i]
			}
			trend = sum / float64(period)
		} else {
			sum := 0.0
			for i := t - half; i <= t+half; i++ {
				sum += y[i]
			}
			trend = sum / float64(period)
		}
		detrended[t] = y[t] - trend
		valid[t] = true
	}

	seasonal := make([]float64, period)
	counts := make([]int, period)
	for t := range detrended {
		if valid[t] {
			seasonal[t%period] += detrended[t]
			counts[t%period]++
		}
	}
	for i := range seasonal {
		if counts[i] > 0 {
			seasonal[i] /= float64(counts[i])
		}
	}
	mean := stat.Mean(seasonal, nil)

	var resid, seasPlusResid []float64
	for t := range detrended {
		if !valid[t] {
			continue
		}
		s := seasonal[t%period] - mean
		resid = append(resid, detrended[t]-s)
		seasPlusResid = append(seasPlusResid, detrended[t])
	}
	if len(resid) < 2 {
		return 0
	}

	varSR := stat.Variance(seasPlusResid, nil)
	if varSR == 0 {
		return 0
	}
	return math.Max(0, 1-stat.Variance(resid, nil)/varSR)
}

// InformationCriteria holds AIC, AICc, and BIC for a fitted model.
type InformationCriteria struct {
	AIC    float64
	AICc   float64
	BIC    float64
	LogLik float64
}

// CalculateIC calculates all information criteria.
// logLik is the log-likelihood, nObs is the number of observations,
// nParams is the number of estimated parameters.
func CalculateIC(logLik float64, nObs int, nParams int) *InformationCriteria {
	k := float64(nParams)
	n := float64(nObs)

	ic := &InformationCriteria{
		AIC:    -2*logLik + 2*k,
		BIC:    -2*logLik + k*math.Log(n),
		LogLik: logLik,
	}
	if n-k-1 > 0 {
		ic.AICc = ic.AIC + 2*k*(k+1)/(n-k-1)
	} else {
		ic.AICc = math.Inf(1)
	}
	return ic
}
