package dashboard

import (
	"html/template"
	"log"
	"mime"
	"net/http"

	"github.com/sartorproj/inflasi/autoarima"
	"github.com/sartorproj/inflasi/chart"
	"github.com/sartorproj/inflasi/forecast"
)

type forecastView struct {
	Groups     []sliderGroup
	Chart      template.HTML
	Rows       []forecastRow
	Summary    template.HTML
	Suggestion *suggestionView
	CSVURL     string
	XLSXURL    string
}

type sliderGroup struct {
	Title   string
	Sliders []slider
}

type slider struct {
	Key   string
	Label string
	Min   int
	Max   int
	Value int
}

type forecastRow struct {
	Date  string
	Mean  float64
	Lower float64
	Upper float64
}

type suggestionView struct {
	Order string
	AICc  float64
	URL   template.URL
}

func (a *App) forecast(r *http.Request, sess *Session, v *view) error {
	prev, hadPrev := sess.Params, sess.HasParams
	q := r.URL.Query()
	if forecast.HasParams(q) || !sess.HasParams {
		sess.Params = forecast.ParseParams(q, sess.Params)
		sess.HasParams = true
	}
	params := sess.Params

	v.Title = "Peramalan Tingkat Inflasi di Indonesia dengan ARIMA"
	v.Forecast = &forecastView{
		Groups:     sliderGroups(params),
		Suggestion: a.suggestionView(),
	}

	result, err := forecast.Run(r.Context(), a.series, params)
	if err != nil {
		// Only parameters that fit are remembered.
		sess.Params, sess.HasParams = prev, hadPrev
		return err
	}
	sess.Last = result

	svg, err := chart.Forecast(result.Forecast, result.Lower, result.Upper, "")
	if err != nil {
		return err
	}

	rows := make([]forecastRow, result.Forecast.Len())
	for i, t := range result.Forecast.Timestamps {
		rows[i] = forecastRow{
			Date:  t.Format("2006-01-02"),
			Mean:  result.Forecast.Values[i],
			Lower: result.Lower.Values[i],
			Upper: result.Upper.Values[i],
		}
	}

	summary, err := renderMarkdown(summaryMarkdown(result.Summary))
	if err != nil {
		return err
	}

	v.Forecast.Chart = inlineSVG(svg)
	v.Forecast.Rows = rows
	v.Forecast.Summary = summary
	v.Forecast.CSVURL = "/download/forecast.csv"
	v.Forecast.XLSXURL = "/download/forecast.xlsx"
	return nil
}

func sliderGroups(p forecast.Params) []sliderGroup {
	groups := []sliderGroup{
		{Title: "Non-musiman (p, d, q)"},
		{Title: "Musiman (P, D, Q, s)"},
	}
	for _, f := range forecast.Fields {
		s := slider{Key: f.Key, Label: f.Label, Min: f.Min, Max: f.Max, Value: p.Get(f.Key)}
		if f.Group == "seasonal" {
			groups[1].Sliders = append(groups[1].Sliders, s)
		} else {
			groups[0].Sliders = append(groups[0].Sliders, s)
		}
	}
	return groups
}

// suggest runs the order search once per process on the forecast series.
func (a *App) suggest() (*autoarima.Result, error) {
	a.suggestOnce.Do(func() {
		cfg := autoarima.DefaultConfig()
		cfg.Seasonal = true
		cfg.SeasonalM = 12
		cfg.MaxP, cfg.MaxQ = 2, 2
		a.suggestion, a.suggestErr = autoarima.AutoARIMA(a.series, cfg)
		if a.suggestErr != nil {
			log.Printf("[dashboard] order suggestion failed: %v", a.suggestErr)
			return
		}
		log.Printf("[dashboard] suggested %s after %d models", a.suggestion.Order, a.suggestion.ModelsEvaluated)
	})
	return a.suggestion, a.suggestErr
}

func (a *App) suggestionView() *suggestionView {
	if !a.opts.Suggest {
		return nil
	}
	res, err := a.suggest()
	if err != nil {
		return nil
	}
	o := res.Order
	p := forecast.Params{P: o.P, D: o.D, Q: o.Q, SP: o.SP, SD: o.SD, SQ: o.SQ, S: o.M}
	q := p.Query()
	q.Set("page", ARIMA.String())
	return &suggestionView{Order: o.String(), AICc: res.AICc, URL: template.URL("/?" + q.Encode())}
}

// sessionForecast returns the forecast for the session's parameters,
// fitting again only when the session has no matching result.
func (a *App) sessionForecast(w http.ResponseWriter, r *http.Request) (*forecast.Result, error) {
	id, sess := a.sessions.Load(w, r)
	if sess.Last != nil && sess.Last.Params == sess.Params {
		return sess.Last, nil
	}
	result, err := forecast.Run(r.Context(), a.series, sess.Params)
	if err != nil {
		return nil, err
	}
	a.sessions.Update(id, func(s *Session) {
		if s.Params == result.Params {
			s.Last = result
		}
	})
	return result, nil
}

func (a *App) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	result, err := a.sessionForecast(w, r)
	if err != nil {
		log.Printf("[download] csv: %v", err)
		a.fail(w, &view{Page: ARIMA}, err)
		return
	}
	b, err := a.csv.Encode(result.Forecast)
	if err != nil {
		log.Printf("[download] csv: %v", err)
		a.fail(w, &view{Page: ARIMA}, err)
		return
	}
	attach(w, forecast.CSVContentType, forecast.CSVFilename, b)
}

func (a *App) handleDownloadXLSX(w http.ResponseWriter, r *http.Request) {
	result, err := a.sessionForecast(w, r)
	if err != nil {
		log.Printf("[download] xlsx: %v", err)
		a.fail(w, &view{Page: ARIMA}, err)
		return
	}
	b, err := forecast.EncodeXLSX(result)
	if err != nil {
		log.Printf("[download] xlsx: %v", err)
		a.fail(w, &view{Page: ARIMA}, err)
		return
	}
	attach(w, forecast.XLSXContentType, forecast.XLSXFilename, b)
}

func attach(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Write(body)
}
