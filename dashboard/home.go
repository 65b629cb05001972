package dashboard

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/sartorproj/inflasi/chart"
)

// DateRange is a closed interval of periods selected on the Home page.
type DateRange struct {
	Start time.Time
	End   time.Time
}

type homeView struct {
	Months     []string
	StartIdx   int
	EndIdx     int
	MaxIdx     int
	StartLabel string
	EndLabel   string
	Chart      template.HTML
	IndexName  string
	Columns    []string
	Rows       []tableRow
	Stats      []columnStats
}

type tableRow struct {
	Date   string
	Values []string
}

type columnStats struct {
	Name         string
	Mean         float64
	Std          float64
	Min          float64
	Max          float64
	Latest       float64
	LatestPeriod string
}

const monthLabel = "Jan-2006"

func (a *App) home(r *http.Request, sess *Session, v *view) error {
	n := a.frame.Len()
	lo, hi := 0, n-1
	if sess.Range != nil {
		if i := a.frame.Position(sess.Range.Start); i >= 0 {
			lo = i
		}
		if i := a.frame.Position(sess.Range.End); i >= 0 {
			hi = i
		}
	}

	q := r.URL.Query()
	if i, err := strconv.Atoi(q.Get("start")); err == nil {
		lo = i
	}
	if i, err := strconv.Atoi(q.Get("end")); err == nil {
		hi = i
	}
	lo, hi = clampRange(lo, hi, n)

	rng := DateRange{Start: a.frame.Index[lo], End: a.frame.Index[hi]}
	part, err := a.frame.Between(rng.Start, rng.End)
	if err != nil {
		return err
	}
	svg, err := chart.Frame(part, "")
	if err != nil {
		return err
	}

	months := make([]string, n)
	for i, t := range a.frame.Index {
		months[i] = t.Format(monthLabel)
	}

	rev := part.Reverse()
	rows := make([]tableRow, rev.Len())
	for i := range rows {
		values := rev.Row(i)
		cells := make([]string, len(values))
		for j, x := range values {
			cells[j] = strconv.FormatFloat(x, 'f', -1, 64)
		}
		rows[i] = tableRow{Date: rev.Index[i].Format("2006-01-02"), Values: cells}
	}

	stats := make([]columnStats, len(part.Columns))
	for j := range part.Columns {
		s := part.ColumnAt(j)
		t, last, _ := s.Last()
		stats[j] = columnStats{
			Name:         s.Name,
			Mean:         s.Mean(),
			Std:          s.Std(),
			Min:          s.Min(),
			Max:          s.Max(),
			Latest:       last,
			LatestPeriod: t.Format(monthLabel),
		}
	}

	sess.Range = &rng
	v.Title = "Tingkat Inflasi di Indonesia"
	v.Home = &homeView{
		Months:     months,
		StartIdx:   lo,
		EndIdx:     hi,
		MaxIdx:     n - 1,
		StartLabel: months[lo],
		EndLabel:   months[hi],
		Chart:      inlineSVG(svg),
		IndexName:  part.IndexName,
		Columns:    part.Columns,
		Rows:       rows,
		Stats:      stats,
	}
	return nil
}

// clampRange keeps both indexes inside [0, n-1] and orders them.
func clampRange(lo, hi, n int) (int, int) {
	clamp := func(i int) int {
		if i < 0 {
			return 0
		}
		if i > n-1 {
			return n - 1
		}
		return i
	}
	lo, hi = clamp(lo), clamp(hi)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// inlineSVG drops anything before the <svg> element so the chart can be
// embedded in the page.
func inlineSVG(b []byte) template.HTML {
	if i := bytes.Index(b, []byte("<svg")); i > 0 {
		b = b[i:]
	}
	return template.HTML(b)
}
