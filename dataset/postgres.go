package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sartorproj/inflasi/timeseries"
)

// PostgresSource reads a table with one date column and numeric value
// columns. The table is only read.
type PostgresSource struct {
	DSN        string
	Table      string // may be schema qualified, e.g. "bps.inflasi"
	DateColumn string
}

func (s PostgresSource) Key() string {
	return "postgres:" + s.Table
}

func (s PostgresSource) Load(ctx context.Context) (*timeseries.Frame, error) {
	if s.Table == "" || s.DateColumn == "" {
		return nil, errors.New("postgres source needs a table and a date column")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", s.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	defer db.Close()

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s",
		quoteTable(s.Table), pq.QuoteIdentifier(s.DateColumn))

	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.Table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records [][]interface{}
	for rows.Next() {
		record, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return frameFromRows(columns, s.DateColumn, records)
}

func quoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// frameFromRows converts scanned rows into a month-start frame indexed by
// dateColumn. Every other column must hold numbers.
func frameFromRows(columns []string, dateColumn string, records [][]interface{}) (*timeseries.Frame, error) {
	dateIdx := -1
	var valueCols []string
	for i, c := range columns {
		if c == dateColumn {
			dateIdx = i
			continue
		}
		valueCols = append(valueCols, c)
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("date column %q not found in %v", dateColumn, columns)
	}

	index := make([]time.Time, 0, len(records))
	rows := make([][]float64, 0, len(records))
	for n, record := range records {
		ts, err := toTime(record[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+1, err)
		}
		row := make([]float64, 0, len(valueCols))
		for i, v := range record {
			if i == dateIdx {
				continue
			}
			f, err := toFloat(v)
			if err != nil {
				return nil, fmt.Errorf("row %d col %q: %w", n+1, columns[i], err)
			}
			row = append(row, f)
		}
		index = append(index, ts)
		rows = append(rows, row)
	}

	frame, err := timeseries.NewFrame(index, valueCols, rows)
	if err != nil {
		return nil, err
	}
	frame.IndexName = dateColumn
	if err := frame.SetFreq(timeseries.MonthStart); err != nil {
		return nil, err
	}
	return frame, nil
}

func toTime(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		// Keep the wall clock of DATE and TIMESTAMPTZ values; SetFreq rejects
		// anything that is not midnight on the first of a month.
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
	case []byte:
		return timeseries.ParseDate(string(t), false)
	case string:
		return timeseries.ParseDate(t, false)
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", v)
	}
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case []byte:
		return timeseries.ParseValue(string(x))
	case string:
		return timeseries.ParseValue(x)
	case nil:
		return 0, errors.New("null value")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}
