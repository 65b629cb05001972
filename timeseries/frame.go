package timeseries

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
)

// ErrEmptyRange is returned when a date range selects no rows.
var ErrEmptyRange = errors.New("date range selects no rows")

// Frame is an ordered table of one or more value columns sharing a time index.
// Rows are periods in ascending order; values are stored row-major in a
// gonum dense matrix.
type Frame struct {
	Index     []time.Time
	Columns   []string
	IndexName string
	Freq      Freq

	data *mat.Dense
}

// NewFrame builds a frame from an index, column names and row values.
func NewFrame(index []time.Time, columns []string, rows [][]float64) (*Frame, error) {
	if len(index) == 0 {
		return nil, errors.New("frame needs at least one row")
	}
	if len(columns) == 0 {
		return nil, errors.New("frame needs at least one value column")
	}
	if len(rows) != len(index) {
		return nil, fmt.Errorf("index has %d entries but %d rows were given", len(index), len(rows))
	}

	k := len(columns)
	data := make([]float64, 0, len(rows)*k)
	for i, row := range rows {
		if len(row) != k {
			return nil, fmt.Errorf("row %d: expected %d values, got %d", i, k, len(row))
		}
		data = append(data, row...)
	}

	idx := make([]time.Time, len(index))
	copy(idx, index)
	cols := make([]string, k)
	copy(cols, columns)

	return &Frame{
		Index:   idx,
		Columns: cols,
		data:    mat.NewDense(len(rows), k, data),
	}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Index)
}

// First returns the earliest period.
func (f *Frame) First() time.Time {
	return f.Index[0]
}

// Last returns the latest period.
func (f *Frame) Last() time.Time {
	return f.Index[len(f.Index)-1]
}

// At returns the value in row i, column j.
func (f *Frame) At(i, j int) float64 {
	return f.data.At(i, j)
}

// Row returns a copy of row i.
func (f *Frame) Row(i int) []float64 {
	return mat.Row(nil, i, f.data)
}

// ColumnAt returns column j as a series carrying the frame's index.
func (f *Frame) ColumnAt(j int) *Series {
	timestamps := make([]time.Time, len(f.Index))
	copy(timestamps, f.Index)
	return &Series{
		Timestamps: timestamps,
		Values:     mat.Col(nil, j, f.data),
		Name:       f.Columns[j],
		Freq:       f.Freq,
	}
}

// Column returns the named column as a series.
func (f *Frame) Column(name string) (*Series, error) {
	for j, c := range f.Columns {
		if c == name {
			return f.ColumnAt(j), nil
		}
	}
	return nil, fmt.Errorf("column %q not found", name)
}

// SetFreq annotates the index with freq after checking that it conforms.
// The data is never resampled.
func (f *Frame) SetFreq(freq Freq) error {
	if err := freq.Conforms(f.Index); err != nil {
		return err
	}
	f.Freq = freq
	return nil
}

// Position returns the row holding period t, or -1.
func (f *Frame) Position(t time.Time) int {
	i := sort.Search(len(f.Index), func(i int) bool { return !f.Index[i].Before(t) })
	if i < len(f.Index) && f.Index[i].Equal(t) {
		return i
	}
	return -1
}

// Between returns the rows whose period lies in the closed interval [start, end].
func (f *Frame) Between(start, end time.Time) (*Frame, error) {
	lo := sort.Search(len(f.Index), func(i int) bool { return !f.Index[i].Before(start) })
	hi := sort.Search(len(f.Index), func(i int) bool { return f.Index[i].After(end) })
	if lo >= hi {
		return nil, fmt.Errorf("%w: %s..%s", ErrEmptyRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return f.rows(lo, hi), nil
}

// Reverse returns a frame with the row order reversed. The frequency
// annotation is dropped because a reversed index is no longer ascending.
func (f *Frame) Reverse() *Frame {
	n, k := f.data.Dims()
	out := mat.NewDense(n, k, nil)
	idx := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out.SetRow(i, f.data.RawRowView(n-1-i))
		idx[i] = f.Index[n-1-i]
	}
	cols := make([]string, k)
	copy(cols, f.Columns)
	return &Frame{Index: idx, Columns: cols, IndexName: f.IndexName, data: out}
}

func (f *Frame) rows(lo, hi int) *Frame {
	_, k := f.data.Dims()
	idx := make([]time.Time, hi-lo)
	copy(idx, f.Index[lo:hi])
	cols := make([]string, k)
	copy(cols, f.Columns)
	return &Frame{
		Index:     idx,
		Columns:   cols,
		IndexName: f.IndexName,
		Freq:      f.Freq,
		data:      mat.DenseCopyOf(f.data.Slice(lo, hi, 0, k)),
	}
}
