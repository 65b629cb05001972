// Package autoarima implements automatic SARIMA order selection.
package autoarima

import (
	"errors"
	"log"
	"math"

	"github.com/sartorproj/inflasi/sarima"
	"github.com/sartorproj/inflasi/stats"
	"github.com/sartorproj/inflasi/timeseries"
)

// ErrNoModel is returned when no candidate order could be fitted.
var ErrNoModel = errors.New("autoarima: no candidate model could be fitted")

// Config holds configuration for auto ARIMA search.
type Config struct {
	MaxP        int    // Maximum AR order (default: 3)
	MaxD        int    // Maximum differencing order (default: 2)
	MaxQ        int    // Maximum MA order (default: 3)
	MaxSP       int    // Maximum seasonal AR order (default: 1)
	MaxSD       int    // Maximum seasonal differencing order (default: 1)
	MaxSQ       int    // Maximum seasonal MA order (default: 1)
	Seasonal    bool   // Whether to consider seasonal models
	SeasonalM   int    // Seasonal period (required if Seasonal=true)
	Stepwise    bool   // Use stepwise search instead of exhaustive
	Criterion   string // Information criterion: "aic", "aicc" or "bic" (default: "aicc")
	Trace       bool   // Log every evaluated model
	StationTest string // Stationarity test: "adf" or "kpss" (default: "kpss")
}

// DefaultConfig returns the default auto ARIMA configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxP:        3,
		MaxD:        2,
		MaxQ:        3,
		MaxSP:       1,
		MaxSD:       1,
		MaxSQ:       1,
		Stepwise:    true,
		Criterion:   "aicc",
		StationTest: "kpss",
	}
}

// Result represents the result of auto ARIMA model selection.
type Result struct {
	Model     *sarima.Model
	Order     sarima.Order
	AIC       float64
	AICc      float64
	BIC       float64
	Criterion float64

	ModelsEvaluated int
}

// IsSeasonal reports whether the selected order has seasonal terms.
func (r *Result) IsSeasonal() bool {
	return r.Order.Seasonal()
}

type candidate struct {
	p, q, sp, sq int
}

type search struct {
	series *timeseries.Series
	config *Config
	d, sd  int
	m      int
	seen   map[candidate]bool
	best   *Result
	count  int
}

// AutoARIMA chooses the differencing orders with unit-root and seasonal
// strength tests, then searches AR and MA orders by information criterion.
func AutoARIMA(series *timeseries.Series, config *Config) (*Result, error) {
	if config == nil {
		config = DefaultConfig()
	}

	s := &search{
		series: series,
		config: config,
		seen:   make(map[candidate]bool),
	}
	if config.Seasonal && config.SeasonalM > 1 {
		s.m = config.SeasonalM
		s.sd = stats.NSDiffs(series, s.m, config.MaxSD)
	}

	diffed := series
	for i := 0; i < s.sd; i++ {
		diffed = diffed.SeasonalDiff(s.m)
	}
	s.d = stats.NDiffs(diffed, config.MaxD, config.StationTest)

	if config.Stepwise {
		s.stepwise()
	} else {
		s.exhaustive()
	}

	if s.best == nil {
		return nil, ErrNoModel
	}
	s.best.ModelsEvaluated = s.count
	return s.best, nil
}

func (s *search) maxSeasonal() (int, int) {
	if s.m == 0 {
		return 0, 0
	}
	return s.config.MaxSP, s.config.MaxSQ
}

func (s *search) inBounds(c candidate) bool {
	maxSP, maxSQ := s.maxSeasonal()
	return c.p >= 0 && c.p <= s.config.MaxP &&
		c.q >= 0 && c.q <= s.config.MaxQ &&
		c.sp >= 0 && c.sp <= maxSP &&
		c.sq >= 0 && c.sq <= maxSQ
}

// try fits one candidate and reports whether it became the best so far.
func (s *search) try(c candidate) bool {
	if !s.inBounds(c) || s.seen[c] {
		return false
	}
	s.seen[c] = true

	model := sarima.New(c.p, s.d, c.q, c.sp, s.sd, c.sq, s.m)
	if err := model.Fit(s.series); err != nil {
		if s.config.Trace {
			log.Printf("[autoarima] %s: %v", model.Order, err)
		}
		return false
	}
	s.count++

	criterion := s.criterion(model)
	if s.config.Trace {
		log.Printf("[autoarima] %s: %s=%.3f", model.Order, s.config.Criterion, criterion)
	}
	if s.best != nil && criterion >= s.best.Criterion {
		return false
	}
	s.best = &Result{
		Model:     model,
		Order:     model.Order,
		AIC:       model.AIC,
		AICc:      model.AICc,
		BIC:       model.BIC,
		Criterion: criterion,
	}
	return true
}

func (s *search) criterion(model *sarima.Model) float64 {
	switch s.config.Criterion {
	case "aic":
		return model.AIC
	case "bic":
		return model.BIC
	default:
		if math.IsInf(model.AICc, 1) {
			return model.AIC
		}
		return model.AICc
	}
}

func (s *search) exhaustive() {
	maxSP, maxSQ := s.maxSeasonal()
	for p := 0; p <= s.config.MaxP; p++ {
		for q := 0; q <= s.config.MaxQ; q++ {
			for sp := 0; sp <= maxSP; sp++ {
				for sq := 0; sq <= maxSQ; sq++ {
					s.try(candidate{p, q, sp, sq})
				}
			}
		}
	}
}

func (s *search) stepwise() {
	start := []candidate{
		{2, 2, 1, 1},
		{0, 0, 0, 0},
		{1, 0, 1, 0},
		{0, 1, 0, 1},
	}
	for _, c := range start {
		s.try(c)
	}

	for improved := s.best != nil; improved; {
		improved = false
		b := candidateOf(s.best.Order)
		neighbors := []candidate{
			{b.p + 1, b.q, b.sp, b.sq},
			{b.p - 1, b.q, b.sp, b.sq},
			{b.p, b.q + 1, b.sp, b.sq},
			{b.p, b.q - 1, b.sp, b.sq},
			{b.p + 1, b.q + 1, b.sp, b.sq},
			{b.p - 1, b.q - 1, b.sp, b.sq},
			{b.p, b.q, b.sp + 1, b.sq},
			{b.p, b.q, b.sp - 1, b.sq},
			{b.p, b.q, b.sp, b.sq + 1},
			{b.p, b.q, b.sp, b.sq - 1},
		}
		for _, c := range neighbors {
			if s.try(c) {
				improved = true
			}
		}
	}
}

func candidateOf(o sarima.Order) candidate {
	return candidate{o.P, o.Q, o.SP, o.SQ}
}

// Predict generates forecasts using the selected model.
func (r *Result) Predict(steps int) ([]float64, error) {
	return r.Model.Predict(steps)
}

// Residuals returns the model residuals.
func (r *Result) Residuals() []float64 {
	return r.Model.Residuals()
}
