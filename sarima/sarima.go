// Package sarima implements Seasonal ARIMA (SARIMA) models.
package sarima

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/inflasi/stats"
	"github.com/sartorproj/inflasi/timeseries"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrInvalidOrder     = errors.New("sarima: model orders must be non-negative")
	ErrSeasonalPeriod   = errors.New("sarima: seasonal terms require a seasonal period of at least 2")
	ErrOverlappingLags  = errors.New("sarima: non-seasonal and seasonal lags overlap")
	ErrInsufficientData = errors.New("sarima: insufficient data points for the specified order")
	ErrNotConverged     = errors.New("sarima: optimizer did not converge")
	ErrNonStationary    = errors.New("sarima: estimated AR polynomial is not stationary")
	ErrNonInvertible    = errors.New("sarima: estimated MA polynomial is not invertible")
	ErrNotFitted        = errors.New("sarima: model must be fitted before prediction")
)

// penalty replaces non-finite objective values during optimization.
const penalty = 1e10

// Order represents SARIMA model order (p, d, q) x (P, D, Q, m).
type Order struct {
	P int // Non-seasonal AR order
	D int // Non-seasonal differencing order
	Q int // Non-seasonal MA order
	// Seasonal components
	SP int // Seasonal AR order
	SD int // Seasonal differencing order
	SQ int // Seasonal MA order
	M  int // Seasonal period (e.g., 12 for monthly data with yearly seasonality)
}

// Seasonal reports whether the order has any seasonal term.
func (o Order) Seasonal() bool {
	return o.SP > 0 || o.SD > 0 || o.SQ > 0
}

// Validate checks the order for combinations that cannot be estimated.
func (o Order) Validate() error {
	if o.P < 0 || o.D < 0 || o.Q < 0 || o.SP < 0 || o.SD < 0 || o.SQ < 0 || o.M < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidOrder, o)
	}
	if o.Seasonal() && o.M < 2 {
		return fmt.Errorf("%w: got %d", ErrSeasonalPeriod, o.M)
	}
	if o.SP > 0 && o.P >= o.M {
		return fmt.Errorf("%w: AR order %d reaches seasonal lag %d", ErrOverlappingLags, o.P, o.M)
	}
	if o.SQ > 0 && o.Q >= o.M {
		return fmt.Errorf("%w: MA order %d reaches seasonal lag %d", ErrOverlappingLags, o.Q, o.M)
	}
	return nil
}

func (o Order) String() string {
	return fmt.Sprintf("SARIMA(%d,%d,%d)(%d,%d,%d)[%d]", o.P, o.D, o.Q, o.SP, o.SD, o.SQ, o.M)
}

// includeMean reports whether a constant is estimated. Differenced models
// are fitted without one.
func (o Order) includeMean() bool {
	return o.D == 0 && o.SD == 0
}

func (o Order) numParams() int {
	k := o.P + o.Q + o.SP + o.SQ
	if o.includeMean() {
		k++
	}
	return k
}

// Model represents a SARIMA model.
type Model struct {
	Order     Order
	ARCoeffs  []float64 // Non-seasonal AR coefficients
	MACoeffs  []float64 // Non-seasonal MA coefficients
	SARCoeffs []float64 // Seasonal AR coefficients
	SMACoeffs []float64 // Seasonal MA coefficients
	Intercept float64   // Process mean; zero for differenced models
	Variance  float64
	AIC       float64
	AICc      float64 // Corrected AIC for small sample sizes
	BIC       float64
	LogLik    float64

	// Standard errors for coefficients, NaN when the Hessian is singular.
	ARStdErrors  []float64
	MAStdErrors  []float64
	SARStdErrors []float64
	SMAStdErrors []float64

	fitted    bool
	data      []float64
	diffData  []float64
	delta     []float64 // differencing polynomial
	arPoly    []float64
	maPoly    []float64
	start     int
	residuals []float64 // aligned with diffData, zero before start
}

// New creates a new SARIMA model with the specified order.
func New(p, d, q, sp, sd, sq, m int) *Model {
	return &Model{
		Order: Order{
			P: p, D: d, Q: q,
			SP: sp, SD: sd, SQ: sq, M: m,
		},
	}
}

// Fit estimates the model by conditional sum of squares. The AR and MA
// polynomials are kept stationary and invertible during the search by the
// reparameterization in constrain; the search itself is Nelder-Mead.
func (m *Model) Fit(series *timeseries.Series) error {
	m.fitted = false
	o := m.Order
	if err := o.Validate(); err != nil {
		return err
	}

	m.delta = diffPoly(o.D, o.SD, o.M)
	w := applyPoly(m.delta, series.Values)
	m.start = o.P + o.SP*o.M
	k := o.numParams()
	if nEff := len(w) - m.start; nEff < k+3 {
		return fmt.Errorf("%w: %d observations for %s", ErrInsufficientData, series.Len(), o)
	}

	m.data = series.Values
	m.diffData = w

	x0 := m.initialParams()
	if len(x0) > 0 {
		x, err := m.optimize(x0)
		if err != nil {
			return err
		}
		m.setParams(x)
	} else {
		m.setParams(nil)
	}

	if maxRootModulus(m.arPoly) >= 1 {
		return fmt.Errorf("%w: %s", ErrNonStationary, o)
	}
	if maxRootModulus(m.maPoly) >= 1 {
		return fmt.Errorf("%w: %s", ErrNonInvertible, o)
	}

	m.residuals = make([]float64, len(w))
	sse := css(w, m.Intercept, m.arPoly, m.maPoly, m.start, m.residuals)
	nEff := len(w) - m.start
	m.Variance = sse / float64(nEff)
	m.LogLik = -0.5 * float64(nEff) * (math.Log(2*math.Pi*m.Variance) + 1)

	ic := stats.CalculateIC(m.LogLik, nEff, k+1)
	m.AIC, m.AICc, m.BIC = ic.AIC, ic.AICc, ic.BIC

	m.standardErrors()
	m.fitted = true
	return nil
}

// initialParams builds the starting point in unconstrained space: the mean
// of the differenced series, the sample PACF for AR terms, the sample ACF at
// seasonal lags for seasonal AR terms and zero for MA terms.
func (m *Model) initialParams() []float64 {
	o := m.Order
	x := make([]float64, 0, o.numParams())
	w := timeseries.New(m.diffData)

	if o.includeMean() {
		x = append(x, w.Mean())
	}

	pacf := stats.PACF(w, o.P)
	for i := 1; i <= o.P; i++ {
		r := 0.0
		if i < len(pacf) {
			r = pacf[i]
		}
		x = append(x, unconstrainPACF(r))
	}
	for i := 0; i < o.Q; i++ {
		x = append(x, 0)
	}

	var acf []float64
	if o.SP > 0 {
		acf = stats.ACF(w, o.SP*o.M)
	}
	for i := 1; i <= o.SP; i++ {
		r := 0.0
		if lag := i * o.M; lag < len(acf) {
			r = acf[lag] * 0.5
		}
		x = append(x, unconstrainPACF(r))
	}
	for i := 0; i < o.SQ; i++ {
		x = append(x, 0)
	}
	return x
}

// split unpacks a parameter vector laid out as [mean] AR MA SAR SMA.
func (m *Model) split(x []float64) (mean float64, ar, ma, sar, sma []float64) {
	o := m.Order
	i := 0
	if o.includeMean() {
		mean = x[0]
		i = 1
	}
	take := func(n int) []float64 {
		part := x[i : i+n]
		i += n
		return part
	}
	return mean, take(o.P), take(o.Q), take(o.SP), take(o.SQ)
}

// transform maps unconstrained parameters to model coefficients.
func (m *Model) transform(x []float64) (mean float64, ar, ma, sar, sma []float64) {
	mean, xar, xma, xsar, xsma := m.split(x)
	return mean, constrain(xar), negate(constrain(xma)), constrain(xsar), negate(constrain(xsma))
}

func (m *Model) polys(ar, ma, sar, sma []float64) (arPoly, maPoly []float64) {
	arPoly = polyMul(lagPoly(ar, 1, -1), lagPoly(sar, m.Order.M, -1))
	maPoly = polyMul(lagPoly(ma, 1, 1), lagPoly(sma, m.Order.M, 1))
	return arPoly, maPoly
}

func (m *Model) setParams(x []float64) {
	o := m.Order
	if x == nil {
		x = make([]float64, o.numParams())
	}
	mean, ar, ma, sar, sma := m.transform(x)
	m.Intercept = mean
	m.ARCoeffs = append(make([]float64, 0, o.P), ar...)
	m.MACoeffs = append(make([]float64, 0, o.Q), ma...)
	m.SARCoeffs = append(make([]float64, 0, o.SP), sar...)
	m.SMACoeffs = append(make([]float64, 0, o.SQ), sma...)
	m.arPoly, m.maPoly = m.polys(ar, ma, sar, sma)
}

// objective returns the concentrated negative log-likelihood
// 0.5*n*log(SSE/n) for coefficients already in model space.
func (m *Model) objective(mean float64, ar, ma, sar, sma []float64, resid []float64) float64 {
	arPoly, maPoly := m.polys(ar, ma, sar, sma)
	sse := css(m.diffData, mean, arPoly, maPoly, m.start, resid)
	nEff := float64(len(m.diffData) - m.start)
	v := 0.5 * nEff * math.Log(math.Max(sse/nEff, 1e-300))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return penalty
	}
	return v
}

func (m *Model) optimize(x0 []float64) ([]float64, error) {
	resid := make([]float64, len(m.diffData))
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			mean, ar, ma, sar, sma := m.transform(x)
			return m.objective(mean, ar, ma, sar, sma, resid)
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: 20000,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Relative:   1e-10,
			Iterations: 200,
		},
	}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConverged, err)
	}
	switch result.Status {
	case optimize.FunctionEvaluationLimit, optimize.IterationLimit, optimize.RuntimeLimit, optimize.Failure:
		return nil, fmt.Errorf("%w: %s after %d evaluations", ErrNotConverged, result.Status, result.Stats.FuncEvaluations)
	}
	if result.F >= penalty {
		return nil, fmt.Errorf("%w: objective is not finite", ErrNotConverged)
	}
	return result.X, nil
}

// standardErrors inverts a finite-difference Hessian of the objective taken
// with respect to the model coefficients.
func (m *Model) standardErrors() {
	o := m.Order
	k := o.numParams()
	m.ARStdErrors = nanSlice(o.P)
	m.MAStdErrors = nanSlice(o.Q)
	m.SARStdErrors = nanSlice(o.SP)
	m.SMAStdErrors = nanSlice(o.SQ)
	if k == 0 {
		return
	}

	coef := make([]float64, 0, k)
	if o.includeMean() {
		coef = append(coef, m.Intercept)
	}
	coef = append(coef, m.ARCoeffs...)
	coef = append(coef, m.MACoeffs...)
	coef = append(coef, m.SARCoeffs...)
	coef = append(coef, m.SMACoeffs...)

	resid := make([]float64, len(m.diffData))
	hess := mat.NewSymDense(k, nil)
	fd.Hessian(hess, func(c []float64) float64 {
		mean, ar, ma, sar, sma := m.split(c)
		return m.objective(mean, ar, ma, sar, sma, resid)
	}, coef, nil)

	var chol mat.Cholesky
	if ok := chol.Factorize(hess); !ok {
		return
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return
	}

	i := 0
	if o.includeMean() {
		i = 1
	}
	for _, dst := range [][]float64{m.ARStdErrors, m.MAStdErrors, m.SARStdErrors, m.SMAStdErrors} {
		for j := range dst {
			if v := cov.At(i, i); v > 0 {
				dst[j] = math.Sqrt(v)
			}
			i++
		}
	}
}

// css computes conditional residuals of a(B)(w_t - mean) = b(B)e_t, with
// e_t = 0 before start, and returns their sum of squares.
func css(w []float64, mean float64, a, b []float64, start int, e []float64) float64 {
	for t := range e {
		e[t] = 0
	}
	sse := 0.0
	for t := start; t < len(w); t++ {
		v := w[t] - mean
		for k := 1; k < len(a); k++ {
			v += a[k] * (w[t-k] - mean)
		}
		for j := 1; j < len(b) && j <= t; j++ {
			v -= b[j] * e[t-j]
		}
		e[t] = v
		sse += v * v
	}
	return sse
}

// Predict generates forecasts for the specified number of steps ahead.
func (m *Model) Predict(steps int) ([]float64, error) {
	forecasts, _, _, err := m.PredictWithInterval(steps, 0.95)
	return forecasts, err
}

// PredictWithInterval generates forecasts with prediction intervals.
// Returns point forecasts, lower bounds, and upper bounds at the given confidence level.
func (m *Model) PredictWithInterval(steps int, confidence float64) (forecasts, lower, upper []float64, err error) {
	if !m.fitted {
		return nil, nil, nil, ErrNotFitted
	}
	if steps < 1 {
		return nil, nil, nil, errors.New("sarima: steps must be at least 1")
	}
	if confidence <= 0 || confidence >= 1 {
		confidence = 0.95
	}

	a, b := m.arPoly, m.maPoly
	nw := len(m.diffData)

	// ARMA recursion on the demeaned differenced series; future shocks are zero.
	z := make([]float64, nw+steps)
	for i, v := range m.diffData {
		z[i] = v - m.Intercept
	}
	e := make([]float64, nw+steps)
	copy(e, m.residuals)
	for t := nw; t < nw+steps; t++ {
		v := 0.0
		for k := 1; k < len(a) && t-k >= 0; k++ {
			v -= a[k] * z[t-k]
		}
		for j := 1; j < len(b) && t-j >= 0; j++ {
			v += b[j] * e[t-j]
		}
		z[t] = v
	}

	// Undo differencing: y_t = w_t - sum_{k>=1} delta_k y_{t-k}.
	n := len(m.data)
	y := make([]float64, n+steps)
	copy(y, m.data)
	for h := 0; h < steps; h++ {
		t := n + h
		v := z[nw+h] + m.Intercept
		for k := 1; k < len(m.delta); k++ {
			v -= m.delta[k] * y[t-k]
		}
		y[t] = v
	}
	forecasts = y[n:]

	psi := psiWeights(polyMul(a, m.delta), b, steps)
	q := distuv.UnitNormal.Quantile((1 + confidence) / 2)
	lower = make([]float64, steps)
	upper = make([]float64, steps)
	cum := 0.0
	for h := 0; h < steps; h++ {
		cum += psi[h] * psi[h]
		se := math.Sqrt(m.Variance * cum)
		lower[h] = forecasts[h] - q*se
		upper[h] = forecasts[h] + q*se
	}

	return forecasts, lower, upper, nil
}

// psiWeights expands b(B)/g(B) into its first n MA(infinity) weights.
func psiWeights(g, b []float64, n int) []float64 {
	psi := make([]float64, n)
	for j := 0; j < n; j++ {
		v := 0.0
		if j < len(b) {
			v = b[j]
		}
		for k := 1; k < len(g) && k <= j; k++ {
			v -= g[k] * psi[j-k]
		}
		psi[j] = v
	}
	return psi
}

// Residuals returns the model residuals from the first fully conditioned
// observation onward.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals)-m.start)
	copy(result, m.residuals[m.start:])
	return result
}

// FittedValues returns one-step-ahead fitted values on the original scale,
// aligned with the observations that have residuals.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	offset := len(m.data) - len(m.diffData)
	result := make([]float64, len(m.residuals)-m.start)
	for i := range result {
		t := i + m.start
		result[i] = m.data[t+offset] - m.residuals[t]
	}
	return result
}

// Summary represents a model summary.
type Summary struct {
	Order        Order
	ARCoeffs     []float64
	MACoeffs     []float64
	SARCoeffs    []float64
	SMACoeffs    []float64
	ARStdErrors  []float64
	MAStdErrors  []float64
	SARStdErrors []float64
	SMAStdErrors []float64
	Intercept    float64
	Variance     float64
	AIC          float64
	AICc         float64
	BIC          float64
	LogLik       float64
	NObs         int
	LjungBox     *stats.LjungBoxResult
}

// Summary returns a summary of the fitted model.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	residSeries := timeseries.New(m.Residuals())
	lb := stats.LjungBox(residSeries, 10, m.Order.P+m.Order.Q+m.Order.SP+m.Order.SQ)

	return &Summary{
		Order:        m.Order,
		ARCoeffs:     m.ARCoeffs,
		MACoeffs:     m.MACoeffs,
		SARCoeffs:    m.SARCoeffs,
		SMACoeffs:    m.SMACoeffs,
		ARStdErrors:  m.ARStdErrors,
		MAStdErrors:  m.MAStdErrors,
		SARStdErrors: m.SARStdErrors,
		SMAStdErrors: m.SMAStdErrors,
		Intercept:    m.Intercept,
		Variance:     m.Variance,
		AIC:          m.AIC,
		AICc:         m.AICc,
		BIC:          m.BIC,
		LogLik:       m.LogLik,
		NObs:         len(m.data),
		LjungBox:     lb,
	}
}

func negate(v []float64) []float64 {
	for i := range v {
		v[i] = -v[i]
	}
	return v
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
