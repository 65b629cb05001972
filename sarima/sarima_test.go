package sarima

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/sartorproj/inflasi/timeseries"
)

func seasonalSeries(n int) *timeseries.Series {
	rng := rand.New(rand.NewSource(42))
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal := 3 * math.Sin(2*math.Pi*float64(i)/12)
		values[i] = 10 + seasonal + 0.5*rng.NormFloat64()
	}
	return timeseries.New(values)
}

func TestNewSARIMA(t *testing.T) {
	model := New(1, 1, 1, 1, 1, 1, 12)

	want := Order{P: 1, D: 1, Q: 1, SP: 1, SD: 1, SQ: 1, M: 12}
	if model.Order != want {
		t.Errorf("Expected %v, got %v", want, model.Order)
	}
	if model.Order.String() != "SARIMA(1,1,1)(1,1,1)[12]" {
		t.Errorf("Unexpected order string %q", model.Order.String())
	}
}

func TestOrderValidate(t *testing.T) {
	tests := []struct {
		name  string
		order Order
		want  error
	}{
		{"plain", Order{P: 1, D: 1, Q: 1}, nil},
		{"seasonal", Order{P: 1, D: 1, Q: 1, SP: 1, SD: 1, SQ: 1, M: 12}, nil},
		{"period without seasonal terms", Order{P: 2, M: 1}, nil},
		{"long AR without seasonal AR", Order{P: 12, M: 12}, nil},
		{"negative", Order{P: -1}, ErrInvalidOrder},
		{"negative period", Order{P: 1, M: -12}, ErrInvalidOrder},
		{"seasonal AR without period", Order{SP: 1}, ErrSeasonalPeriod},
		{"seasonal difference with period one", Order{SD: 1, M: 1}, ErrSeasonalPeriod},
		{"overlapping AR", Order{P: 12, SP: 1, M: 12}, ErrOverlappingLags},
		{"overlapping MA", Order{Q: 4, SQ: 1, M: 4}, ErrOverlappingLags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if tt.want == nil && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestFitRejectsInvalidOrder(t *testing.T) {
	err := New(1, 0, 0, 1, 0, 0, 0).Fit(seasonalSeries(60))
	if !errors.Is(err, ErrSeasonalPeriod) {
		t.Errorf("Expected ErrSeasonalPeriod, got %v", err)
	}
}

func TestFitInsufficientData(t *testing.T) {
	err := New(1, 1, 1, 1, 1, 1, 12).Fit(seasonalSeries(20))
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}

	err = New(0, 2, 0, 0, 0, 0, 0).Fit(timeseries.New([]float64{1, 2}))
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData when differencing consumes the series, got %v", err)
	}
}

func TestPredictBeforeFit(t *testing.T) {
	_, err := New(1, 0, 0, 0, 0, 0, 0).Predict(5)
	if !errors.Is(err, ErrNotFitted) {
		t.Errorf("Expected ErrNotFitted, got %v", err)
	}
	if New(1, 0, 0, 0, 0, 0, 0).Summary() != nil {
		t.Error("Expected nil summary before fitting")
	}
}

func TestRandomWalkForecastIsFlat(t *testing.T) {
	series := seasonalSeries(60)
	model := New(0, 1, 0, 0, 0, 0, 0)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Failed to fit ARIMA(0,1,0): %v", err)
	}

	forecasts, lower, upper, err := model.PredictWithInterval(24, 0.95)
	if err != nil {
		t.Fatalf("Prediction failed: %v", err)
	}
	last := series.Values[series.Len()-1]
	for h, f := range forecasts {
		if math.Abs(f-last) > 1e-9 {
			t.Errorf("Forecast %d: expected %f, got %f", h, last, f)
		}
	}
	for h := 1; h < len(forecasts); h++ {
		if upper[h]-lower[h] <= upper[h-1]-lower[h-1] {
			t.Errorf("Interval should widen at step %d", h)
		}
	}
	width1 := upper[0] - lower[0]
	width4 := upper[3] - lower[3]
	if math.Abs(width4/width1-2) > 1e-9 {
		t.Errorf("Random walk interval should grow with sqrt(h): ratio %f", width4/width1)
	}
}

func TestSeasonalDifferenceRepeatsLastYear(t *testing.T) {
	series := seasonalSeries(48)
	model := New(0, 0, 0, 0, 1, 0, 12)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Failed to fit seasonal random walk: %v", err)
	}

	forecasts, err := model.Predict(24)
	if err != nil {
		t.Fatalf("Prediction failed: %v", err)
	}
	n := series.Len()
	for h, f := range forecasts {
		want := series.Values[n-12+h%12]
		if math.Abs(f-want) > 1e-9 {
			t.Errorf("Forecast %d: expected %f, got %f", h, want, f)
		}
	}
}

func TestWhiteNoiseForecastsMean(t *testing.T) {
	series := seasonalSeries(120)
	model := New(0, 0, 0, 0, 0, 0, 0)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Failed to fit mean model: %v", err)
	}

	mean := series.Mean()
	if math.Abs(model.Intercept-mean) > 1e-3 {
		t.Errorf("Expected intercept near %f, got %f", mean, model.Intercept)
	}
	if math.Abs(model.Variance-series.Variance()*float64(series.Len()-1)/float64(series.Len())) > 1e-3 {
		t.Errorf("Unexpected variance %f", model.Variance)
	}
}

func TestAR1Recovery(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := 400
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = 0.6*values[i-1] + rng.NormFloat64()
	}

	model := New(1, 0, 0, 0, 0, 0, 0)
	if err := model.Fit(timeseries.New(values)); err != nil {
		t.Fatalf("Failed to fit AR(1): %v", err)
	}
	if math.Abs(model.ARCoeffs[0]-0.6) > 0.15 {
		t.Errorf("Expected AR coefficient near 0.6, got %f", model.ARCoeffs[0])
	}
	if math.IsNaN(model.ARStdErrors[0]) || model.ARStdErrors[0] <= 0 || model.ARStdErrors[0] > 0.2 {
		t.Errorf("Unexpected AR standard error %f", model.ARStdErrors[0])
	}
	t.Logf("AR(1): phi=%f se=%f sigma2=%f", model.ARCoeffs[0], model.ARStdErrors[0], model.Variance)
}

func TestSARIMAFitMonthlyData(t *testing.T) {
	series := seasonalSeries(120)
	model := New(1, 0, 1, 1, 1, 0, 12)

	if err := model.Fit(series); err != nil {
		t.Fatalf("Failed to fit SARIMA(1,0,1)(1,1,0)[12]: %v", err)
	}
	if model.Intercept != 0 {
		t.Errorf("Differenced model should not estimate a mean, got %f", model.Intercept)
	}
	if len(model.ARCoeffs) != 1 || len(model.MACoeffs) != 1 || len(model.SARCoeffs) != 1 || len(model.SMACoeffs) != 0 {
		t.Errorf("Unexpected coefficient lengths: %v %v %v %v",
			model.ARCoeffs, model.MACoeffs, model.SARCoeffs, model.SMACoeffs)
	}

	forecasts, lower, upper, err := model.PredictWithInterval(24, 0.95)
	if err != nil {
		t.Fatalf("Prediction failed: %v", err)
	}
	if len(forecasts) != 24 || len(lower) != 24 || len(upper) != 24 {
		t.Fatalf("Expected 24 forecasts, got %d", len(forecasts))
	}
	for h := range forecasts {
		if math.IsNaN(forecasts[h]) || !(lower[h] < forecasts[h] && forecasts[h] < upper[h]) {
			t.Errorf("Forecast %d outside its interval: %f [%f, %f]", h, forecasts[h], lower[h], upper[h])
		}
	}

	t.Logf("%s - AIC: %f, BIC: %f", model.Order, model.AIC, model.BIC)
}

func TestSummary(t *testing.T) {
	series := seasonalSeries(96)
	model := New(1, 0, 0, 0, 0, 0, 0)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	summary := model.Summary()
	if summary == nil {
		t.Fatal("Summary returned nil")
	}
	if summary.NObs != 96 {
		t.Errorf("Expected 96 observations, got %d", summary.NObs)
	}
	if summary.LjungBox == nil {
		t.Error("Expected a Ljung-Box result")
	}
	if len(model.Residuals()) != 95 || len(model.FittedValues()) != 95 {
		t.Errorf("Expected 95 residuals and fitted values, got %d and %d",
			len(model.Residuals()), len(model.FittedValues()))
	}
	if math.IsInf(summary.AICc, 0) || summary.AICc < summary.AIC {
		t.Errorf("AICc should be finite and not below AIC: %f vs %f", summary.AICc, summary.AIC)
	}
}

func TestConstrainIsStationary(t *testing.T) {
	inputs := [][]float64{
		{5},
		{-3, 2},
		{10, -10, 10},
		{0.5, 0.5, 0.5, 0.5},
	}
	for _, x := range inputs {
		phi := constrain(x)
		if mod := maxRootModulus(lagPoly(phi, 1, -1)); mod >= 1 {
			t.Errorf("constrain(%v) = %v has root modulus %f", x, phi, mod)
		}
	}
}

func TestDiffPoly(t *testing.T) {
	got := diffPoly(1, 1, 4)
	want := []float64{1, -1, 0, 0, -1, 1}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Coefficient %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}
