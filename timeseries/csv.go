package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DayFirst    bool // Interpret ambiguous numeric dates as day/month/year
	NewestFirst bool // Rows in the file run from newest to oldest
	Delimiter   rune // Field delimiter (default: ',')
	Freq        Freq // Frequency annotation applied after loading ("" to skip)
}

// DefaultCSVOptions returns options matching the published inflation export:
// day-first dates, newest row first, monthly periods.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DayFirst:    true,
		NewestFirst: true,
		Delimiter:   ',',
		Freq:        MonthStart,
	}
}

// LoadCSV loads a frame from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Frame, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer file.Close()

	frame, err := ReadCSV(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return frame, nil
}

// ReadCSV reads a frame from r. The first column holds the dates and every
// other column must be numeric.
func ReadCSV(r io.Reader, opts *CSVOptions) (*Frame, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("expected a date column and at least one value column, got %d columns", len(header))
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var (
		index []time.Time
		rows  [][]float64
		line  = 1
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", line, len(header), len(record))
		}

		ts, err := ParseDate(record[0], opts.DayFirst)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		row := make([]float64, len(record)-1)
		for j, field := range record[1:] {
			v, err := ParseValue(field)
			if err != nil {
				return nil, fmt.Errorf("row %d col %q: %w", line, header[j+1], err)
			}
			row[j] = v
		}

		index = append(index, ts)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errors.New("no data rows")
	}

	frame, err := NewFrame(index, header[1:], rows)
	if err != nil {
		return nil, err
	}
	frame.IndexName = header[0]

	if opts.NewestFirst {
		frame = frame.Reverse()
	}
	if opts.Freq != "" {
		if err := frame.SetFreq(opts.Freq); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

var (
	dayFirstLayouts = []string{
		"02/01/2006", "2/1/2006", "02-01-2006", "2-1-2006", "02.01.2006", "02/01/06",
	}
	monthFirstLayouts = []string{
		"01/02/2006", "1/2/2006", "01-02-2006", "1-2-2006", "01/02/06",
	}
	commonLayouts = []string{
		"2006-01-02", "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006/01/02",
		"2 January 2006", "January 2006", "Jan 2006", "Jan-2006", "2006-01",
	}
)

var indonesianMonths = map[string]string{
	"januari": "January", "februari": "February", "maret": "March",
	"april": "April", "mei": "May", "juni": "June", "juli": "July",
	"agustus": "August", "september": "September", "oktober": "October",
	"november": "November", "desember": "December",
}

// ParseDate parses a date in any of the common spellings used by
// statistics exports, including Indonesian month names.
func ParseDate(s string, dayFirst bool) (time.Time, error) {
	s = strings.TrimSpace(strings.Trim(s, "\""))
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}

	fields := strings.Fields(s)
	for i, f := range fields {
		if en, ok := indonesianMonths[strings.ToLower(f)]; ok {
			fields[i] = en
		}
	}
	s = strings.Join(fields, " ")

	layouts := make([]string, 0, len(dayFirstLayouts)+len(monthFirstLayouts)+len(commonLayouts))
	if dayFirst {
		layouts = append(layouts, dayFirstLayouts...)
	} else {
		layouts = append(layouts, monthFirstLayouts...)
	}
	layouts = append(layouts, commonLayouts...)

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// ParseValue parses a numeric cell, tolerating a trailing percent sign.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(strings.Trim(s, "\""))
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0, errors.New("empty value")
	}
	return strconv.ParseFloat(s, 64)
}

// WriteOptions controls how a series is written as CSV.
type WriteOptions struct {
	IndexLabel string // Header of the date column (default: empty)
	DateFormat string // Layout for periods (default: "2006-01-02")
	Precision  int    // Digits after the decimal point (-1 for shortest)
}

// WriteCSV writes the series as a two-column CSV: period, value.
func WriteCSV(w io.Writer, s *Series, opts *WriteOptions) error {
	if opts == nil {
		opts = &WriteOptions{Precision: -1}
	}
	layout := opts.DateFormat
	if layout == "" {
		layout = "2006-01-02"
	}
	if len(s.Timestamps) != len(s.Values) {
		return errors.New("series has no time index")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{opts.IndexLabel, s.Name}); err != nil {
		return err
	}
	for i, v := range s.Values {
		record := []string{
			s.Timestamps[i].Format(layout),
			strconv.FormatFloat(v, 'f', opts.Precision, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
