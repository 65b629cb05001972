// Package autoarima implements automatic SARIMA order selection.
//
// The differencing orders are chosen first: seasonal differences from the
// seasonal strength of the series (stats.NSDiffs), then first differences
// from a KPSS or ADF test on the seasonally differenced series
// (stats.NDiffs). AR and MA orders are then searched either stepwise from a
// few starting points, in the manner of Hyndman and Khandakar, or over the
// full grid. Candidates are compared by AICc unless configured otherwise.
//
//	config := autoarima.DefaultConfig()
//	config.Seasonal = true
//	config.SeasonalM = 12
//	result, err := autoarima.AutoARIMA(series, config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Order, result.AICc)
//
// Candidates that fail to fit are skipped; ErrNoModel is returned only when
// none succeeds.
package autoarima
