package forecast

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/sartorproj/inflasi/timeseries"
)

const (
	CSVFilename     = "Hasil Peramalan.csv"
	CSVContentType  = "text/csv"
	XLSXFilename    = "Hasil Peramalan.xlsx"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Peramalan"
)

// EncodeCSV writes the forecast with an unnamed date column, ISO dates and
// two decimals.
func EncodeCSV(s *timeseries.Series) ([]byte, error) {
	var buf bytes.Buffer
	err := timeseries.WriteCSV(&buf, s, &timeseries.WriteOptions{
		DateFormat: "2006-01-02",
		Precision:  2,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVCacheSize is the number of encodings a CSVCache keeps.
const CSVCacheSize = 64

type cacheKey [sha256.Size]byte

// CSVCache memoizes EncodeCSV by the content of the series. Once full, the
// oldest encoding is dropped first.
type CSVCache struct {
	mu      sync.Mutex
	size    int
	entries map[cacheKey][]byte
	order   []cacheKey
}

// NewCSVCache returns an empty cache holding up to CSVCacheSize encodings.
func NewCSVCache() *CSVCache {
	return newCSVCache(CSVCacheSize)
}

func newCSVCache(size int) *CSVCache {
	return &CSVCache{size: size, entries: make(map[cacheKey][]byte)}
}

// Encode returns the CSV bytes for s, reusing an earlier encoding of an
// identical series. The returned slice must not be modified.
func (c *CSVCache) Encode(s *timeseries.Series) ([]byte, error) {
	key := contentKey(s)

	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.entries[key]; ok {
		return b, nil
	}
	b, err := EncodeCSV(s)
	if err != nil {
		return nil, err
	}
	if len(c.order) >= c.size {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	c.entries[key] = b
	c.order = append(c.order, key)
	return b, nil
}

// Len returns the number of cached encodings.
func (c *CSVCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func contentKey(s *timeseries.Series) cacheKey {
	h := sha256.New()
	h.Write([]byte(s.Name))
	var buf [8]byte
	for _, t := range s.Timestamps {
		binary.LittleEndian.PutUint64(buf[:], uint64(t.Unix()))
		h.Write(buf[:])
	}
	for _, v := range s.Values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	var key cacheKey
	copy(key[:], h.Sum(nil))
	return key
}

// EncodeXLSX builds a workbook with the point forecast and its bounds.
func EncodeXLSX(r *Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headers := []string{"Periode", r.Forecast.Name, "lower", "upper"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetColWidth(sheetName, "A", "D", 16)

	for i, t := range r.Forecast.Timestamps {
		row := i + 2
		values := []interface{}{
			t.Format("2006-01-02"),
			round2(r.Forecast.Values[i]),
			round2(r.Lower.Values[i]),
			round2(r.Upper.Values[i]),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
