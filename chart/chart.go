// Package chart renders time series as SVG line charts with gonum/plot.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/sartorproj/inflasi/timeseries"
)

const (
	width  = 10 * vg.Inch
	height = 4 * vg.Inch
)

// Frame draws one line per value column of f.
func Frame(f *timeseries.Frame, title string) ([]byte, error) {
	if f == nil || f.Len() == 0 {
		return nil, errors.New("chart: empty frame")
	}

	p := newPlot(title, f.IndexName)
	for j, name := range f.Columns {
		s := f.ColumnAt(j)
		if err := addLine(p, s, name, plotutil.Color(j), false); err != nil {
			return nil, err
		}
	}
	return render(p)
}

// Forecast draws the point forecast with dashed lower and upper bounds.
// lower and upper may be nil.
func Forecast(mean, lower, upper *timeseries.Series, title string) ([]byte, error) {
	if mean == nil || mean.Len() == 0 {
		return nil, errors.New("chart: empty forecast")
	}

	p := newPlot(title, "")
	if err := addLine(p, mean, mean.Name, plotutil.Color(0), false); err != nil {
		return nil, err
	}
	band := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	for _, s := range []*timeseries.Series{lower, upper} {
		if s == nil {
			continue
		}
		if err := addLine(p, s, s.Name, band, true); err != nil {
			return nil, err
		}
	}
	return render(p)
}

func newPlot(title, xLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan-2006"}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func addLine(p *plot.Plot, s *timeseries.Series, name string, c color.Color, dashed bool) error {
	if len(s.Timestamps) != s.Len() {
		return fmt.Errorf("chart: series %q has no time index", name)
	}
	points := make(plotter.XYs, s.Len())
	for i, t := range s.Timestamps {
		points[i].X = float64(t.Unix())
		points[i].Y = s.Values[i]
	}

	line, scatter, err := plotter.NewLinePoints(points)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	scatter.Color = c
	scatter.Radius = vg.Points(1.5)
	if dashed {
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		scatter.Radius = 0
	}

	p.Add(line, scatter)
	p.Legend.Add(name, line)
	return nil
}

func render(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(width, height, "svg")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
