// Package dashboard serves the inflation dashboard: a Home page with the
// historical series and an ARIMA page that fits a model on request.
package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/sartorproj/inflasi/autoarima"
	"github.com/sartorproj/inflasi/forecast"
	"github.com/sartorproj/inflasi/timeseries"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures an App.
type Options struct {
	TargetColumn string // column to forecast; empty selects the first one
	Suggest      bool   // show an automatically selected order on the ARIMA page
}

// App holds the state shared by every request. The frame is loaded once
// before the App is built and never modified.
type App struct {
	frame  *timeseries.Frame
	series *timeseries.Series
	opts   Options

	sessions *SessionStore
	csv      *forecast.CSVCache
	tmpl     *template.Template
	notes    map[Page]template.HTML

	suggestOnce sync.Once
	suggestion  *autoarima.Result
	suggestErr  error
}

// New builds the application around a loaded frame.
func New(frame *timeseries.Frame, opts Options) (*App, error) {
	if frame == nil || frame.Len() == 0 {
		return nil, fmt.Errorf("dashboard: no data")
	}

	series := frame.ColumnAt(0)
	if opts.TargetColumn != "" {
		var err error
		if series, err = frame.Column(opts.TargetColumn); err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("dashboard: parse templates: %w", err)
	}

	notes, err := renderNotes()
	if err != nil {
		return nil, err
	}

	return &App{
		frame:    frame,
		series:   series,
		opts:     opts,
		sessions: NewSessionStore(),
		csv:      forecast.NewCSVCache(),
		tmpl:     tmpl,
		notes:    notes,
	}, nil
}

// Handler returns the HTTP routes of the dashboard.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", a.handleIndex)
	mux.HandleFunc("/download/forecast.csv", a.handleDownloadCSV)
	mux.HandleFunc("/download/forecast.xlsx", a.handleDownloadXLSX)
	return mux
}

// view is the data passed to the layout template. At most one of Home and
// Forecast is set; Failure may accompany a partly built Forecast.
type view struct {
	Title    string
	Page     Page
	Pages    []Page
	Note     template.HTML
	Home     *homeView
	Forecast *forecastView
	Failure  *failureView
}

type failureView struct {
	Error string
}

func (a *App) render(w http.ResponseWriter, status int, v *view) {
	if v.Note == "" {
		v.Note = a.notes[v.Page]
	}

	var buf bytes.Buffer
	if err := a.tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		log.Printf("[dashboard] render %s: %v", v.Page, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// fail renders v with the raw error text and status 500. Views that failed
// before setting a title get the generic one; the ARIMA page keeps its
// sliders so the parameters can be changed in place.
func (a *App) fail(w http.ResponseWriter, v *view, err error) {
	if v.Title == "" {
		v.Title = "Terjadi kesalahan"
	}
	v.Pages = Pages
	v.Failure = &failureView{Error: err.Error()}
	a.render(w, http.StatusInternalServerError, v)
}

var funcs = template.FuncMap{
	"fixed": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"coef":  func(v float64) string { return fmt.Sprintf("%.4f", v) },
}
