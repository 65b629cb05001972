// Package sarima implements multiplicative Seasonal ARIMA models.
//
// A SARIMA(p,d,q)(P,D,Q)[m] model is
//
//	phi(B) Phi(B^m) (1-B)^d (1-B^m)^D (y_t - mu) = theta(B) Theta(B^m) e_t
//
// where mu is estimated only when d = D = 0.
//
// # Estimation
//
// Fit minimizes the conditional sum of squares with gonum's Nelder-Mead.
// Coefficients are searched in an unconstrained space and mapped through
// partial autocorrelations, so every candidate AR polynomial is stationary
// and every MA polynomial invertible. After the search the roots are checked
// again through the companion matrix eigenvalues.
//
//	model := sarima.New(1, 1, 1, 1, 1, 0, 12)
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//	forecasts, lower, upper, _ := model.PredictWithInterval(24, 0.95)
//
// Orders are validated before fitting: negative orders, seasonal terms with a
// period below 2 and non-seasonal lags that reach the seasonal lag are
// rejected with ErrInvalidOrder, ErrSeasonalPeriod and ErrOverlappingLags.
//
// # Prediction intervals
//
// Interval widths come from the psi weights of
// theta(B)Theta(B^m) / (phi(B)Phi(B^m)(1-B)^d(1-B^m)^D), so they widen with
// the horizon for integrated models.
package sarima
