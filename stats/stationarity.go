package stats

import (
	"math"

	"github.com/sartorproj/inflasi/timeseries"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ADFResult represents the result of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	NObs         int
	IsStationary bool
}

// ADF performs the Augmented Dickey-Fuller test (constant, no trend).
// The null hypothesis is a unit root; a p-value below 0.05 indicates stationarity.
func ADF(series *timeseries.Series, maxLag int) *ADFResult {
	n := series.Len()
	if n < 10 {
		return nil
	}
	if maxLag <= 0 {
		maxLag = int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	}
	if maxLag >= n-1 {
		maxLag = n - 2
	}

	diff := series.Diff()
	nObs := n - maxLag - 1
	cols := 2 + maxLag
	if nObs <= cols {
		return nil
	}

	// delta_y_t = alpha + beta*y_{t-1} + sum(gamma_i * delta_y_{t-i})
	x := mat.NewDense(nObs, cols, nil)
	y := mat.NewVecDense(nObs, nil)
	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y.SetVec(i, diff.Values[t])
		x.Set(i, 0, 1)
		x.Set(i, 1, series.Values[t])
		for j := 1; j <= maxLag; j++ {
			x.Set(i, 1+j, diff.Values[t-j])
		}
	}

	coeffs, se, ok := ols(x, y)
	if !ok || se[1] == 0 {
		return nil
	}

	tStat := coeffs[1] / se[1]
	p := adfPValue(tStat)
	return &ADFResult{
		Statistic:    tStat,
		PValue:       p,
		Lags:         maxLag,
		NObs:         nObs,
		IsStationary: p < 0.05,
	}
}

// KPSSResult represents the result of a KPSS test.
type KPSSResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	IsStationary bool
}

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test. regression is
// "c" for level stationarity or "ct" for trend stationarity. The null
// hypothesis is stationarity.
func KPSS(series *timeseries.Series, regression string, nlags int) *KPSSResult {
	n := series.Len()
	if n < 10 {
		return nil
	}
	if nlags <= 0 {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if nlags >= n {
		nlags = n - 1
	}

	resid := make([]float64, n)
	if regression == "ct" {
		trend := make([]float64, n)
		for i := range trend {
			trend[i] = float64(i)
		}
		alpha, beta := stat.LinearRegression(trend, series.Values, nil, false)
		for i, v := range series.Values {
			resid[i] = v - alpha - beta*trend[i]
		}
	} else {
		mean := series.Mean()
		for i, v := range series.Values {
			resid[i] = v - mean
		}
	}

	// Newey-West long-run variance with Bartlett weights.
	s2 := 0.0
	for _, r := range resid {
		s2 += r * r
	}
	s2 /= float64(n)
	for l := 1; l <= nlags; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += resid[i] * resid[i-l]
		}
		s2 += 2 * (1 - float64(l)/float64(nlags+1)) * cov / float64(n)
	}
	if s2 <= 0 {
		s2 = 1e-10
	}

	eta, cum := 0.0, 0.0
	for _, r := range resid {
		cum += r
		eta += cum * cum
	}
	kpss := eta / (float64(n) * float64(n) * s2)

	p := kpssPValue(kpss, regression)
	return &KPSSResult{
		Statistic:    kpss,
		PValue:       p,
		Lags:         nlags,
		IsStationary: p >= 0.05,
	}
}

// ols solves the least-squares problem and returns coefficients and their
// standard errors.
func ols(x *mat.Dense, y *mat.VecDense) (coeffs, se []float64, ok bool) {
	n, k := x.Dims()

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return nil, nil, false
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(x, &beta)
	resid.SubVec(y, &fitted)
	sigma2 := mat.Dot(&resid, &resid) / float64(n-k)

	var xtx, inv mat.Dense
	xtx.Mul(x.T(), x)
	if err := inv.Inverse(&xtx); err != nil {
		return nil, nil, false
	}

	coeffs = make([]float64, k)
	se = make([]float64, k)
	for i := 0; i < k; i++ {
		coeffs[i] = beta.AtVec(i)
		se[i] = math.Sqrt(sigma2 * inv.At(i, i))
	}
	return coeffs, se, true
}

// adfPValue interpolates MacKinnon's asymptotic critical values for the
// constant-only regression.
func adfPValue(tStat float64) float64 {
	crit := []float64{-3.96, -3.43, -2.86, -2.57, -1.94, -1.62}
	prob := []float64{0.001, 0.01, 0.05, 0.10, 0.25, 0.50}
	if tStat <= crit[0] {
		return prob[0]
	}
	for i := 1; i < len(crit); i++ {
		if tStat <= crit[i] {
			w := (tStat - crit[i-1]) / (crit[i] - crit[i-1])
			return prob[i-1] + w*(prob[i]-prob[i-1])
		}
	}
	return math.Min(0.5+(tStat+1.62)*0.25, 0.99)
}

// kpssPValue interpolates the KPSS table; results are clipped to [0.01, 0.10].
func kpssPValue(kpss float64, regression string) float64 {
	crit := []float64{0.347, 0.463, 0.574, 0.739}
	if regression == "ct" {
		crit = []float64{0.119, 0.146, 0.176, 0.216}
	}
	prob := []float64{0.10, 0.05, 0.025, 0.01}

	if kpss <= crit[0] {
		return prob[0]
	}
	for i := 1; i < len(crit); i++ {
		if kpss <= crit[i] {
			w := (kpss - crit[i-1]) / (crit[i] - crit[i-1])
			return prob[i-1] + w*(prob[i]-prob[i-1])
		}
	}
	return prob[len(prob)-1]
}
