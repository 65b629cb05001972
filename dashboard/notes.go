package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sartorproj/inflasi/sarima"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

const homeNote = `> **Inflasi** adalah kecenderungan naiknya harga barang dan jasa secara umum yang
> berlangsung secara terus-menerus. Tingkat inflasi digunakan sebagai indikator
> pertumbuhan dan stabilitas ekonomi.`

const arimaNote = `Model ARIMA (p,d,q) merupakan model umum dari regresi deret waktu.
Pada model musiman, ARIMA memiliki parameter tambahan (P,D,Q,s).`

func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func renderNotes() (map[Page]template.HTML, error) {
	notes := make(map[Page]template.HTML, len(Pages))
	for page, src := range map[Page]string{Home: homeNote, ARIMA: arimaNote} {
		html, err := renderMarkdown(src)
		if err != nil {
			return nil, err
		}
		notes[page] = html
	}
	return notes, nil
}

// summaryMarkdown formats a fitted model as markdown tables.
func summaryMarkdown(s *sarima.Summary) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**, %d observasi\n\n", s.Order, s.NObs)

	b.WriteString("| Parameter | Koefisien | Std. error |\n|---|---:|---:|\n")
	row := func(name string, coef, se float64) {
		fmt.Fprintf(&b, "| %s | %.4f | %s |\n", name, coef, formatSE(se))
	}
	if s.Order.D == 0 && s.Order.SD == 0 {
		row("konstanta", s.Intercept, math.NaN())
	}
	for i, c := range s.ARCoeffs {
		row(fmt.Sprintf("ar.L%d", i+1), c, s.ARStdErrors[i])
	}
	for i, c := range s.MACoeffs {
		row(fmt.Sprintf("ma.L%d", i+1), c, s.MAStdErrors[i])
	}
	for i, c := range s.SARCoeffs {
		row(fmt.Sprintf("ar.S.L%d", (i+1)*s.Order.M), c, s.SARStdErrors[i])
	}
	for i, c := range s.SMACoeffs {
		row(fmt.Sprintf("ma.S.L%d", (i+1)*s.Order.M), c, s.SMAStdErrors[i])
	}
	row("sigma2", s.Variance, math.NaN())

	b.WriteString("\n| Kriteria | Nilai |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Log likelihood | %.3f |\n", s.LogLik)
	fmt.Fprintf(&b, "| AIC | %.3f |\n", s.AIC)
	fmt.Fprintf(&b, "| AICc | %.3f |\n", s.AICc)
	fmt.Fprintf(&b, "| BIC | %.3f |\n", s.BIC)
	if s.LjungBox != nil {
		fmt.Fprintf(&b, "| Ljung-Box Q(%d) p-value | %.3f |\n", s.LjungBox.Lags, s.LjungBox.PValue)
	}
	return b.String()
}

func formatSE(se float64) string {
	if math.IsNaN(se) {
		return "-"
	}
	return fmt.Sprintf("%.4f", se)
}
