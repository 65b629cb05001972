package timeseries

import (
	"bytes"
	"encoding/csv"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"
)

const newestFirstCSV = `Periode,Inflasi
01/04/2022,3.47 %
01/03/2022,2.64 %
01/02/2022,2.06 %
01/01/2022,2.18 %`

func TestReadCSVNewestFirst(t *testing.T) {
	frame, err := ReadCSV(strings.NewReader(newestFirstCSV), nil)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	if frame.Len() != 4 {
		t.Fatalf("Expected 4 rows, got %d", frame.Len())
	}
	if frame.IndexName != "Periode" {
		t.Errorf("Expected index name Periode, got %q", frame.IndexName)
	}
	if frame.Freq != MonthStart {
		t.Errorf("Expected MS frequency, got %q", frame.Freq)
	}

	// Day-first: 01/02/2022 is 1 February.
	expectedMonths := []time.Month{time.January, time.February, time.March, time.April}
	expectedValues := []float64{2.18, 2.06, 2.64, 3.47}
	for i := range expectedMonths {
		if frame.Index[i].Month() != expectedMonths[i] {
			t.Errorf("Row %d: expected %s, got %s", i, expectedMonths[i], frame.Index[i].Month())
		}
		if frame.At(i, 0) != expectedValues[i] {
			t.Errorf("Row %d: expected %f, got %f", i, expectedValues[i], frame.At(i, 0))
		}
	}
}

func TestReadCSVKeepsFileOrder(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.NewestFirst = false
	opts.Freq = ""

	frame, err := ReadCSV(strings.NewReader(newestFirstCSV), opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}
	if frame.First().Month() != time.April {
		t.Errorf("Expected file order to be kept, first row is %s", frame.First().Month())
	}

	// Reversing the file-order frame gives the chronological frame.
	chrono := frame.Reverse()
	if err := MonthStart.Conforms(chrono.Index); err != nil {
		t.Errorf("Reversed frame is not chronological: %v", err)
	}
}

func TestReadCSVFrequencyMismatch(t *testing.T) {
	data := `Periode,Inflasi
01/05/2022,3.55
01/03/2022,2.64`

	_, err := ReadCSV(strings.NewReader(data), nil)
	if !errors.Is(err, ErrFrequency) {
		t.Errorf("Expected ErrFrequency for a missing month, got %v", err)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"header only", "Periode,Inflasi\n"},
		{"no value column", "Periode\n01/01/2022\n"},
		{"bad date", "Periode,Inflasi\nsometime,2.1\n"},
		{"bad value", "Periode,Inflasi\n01/01/2022,abc\n"},
		{"missing value", "Periode,Inflasi\n01/01/2022,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.data), nil); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV("does-not-exist.csv", nil); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in       string
		dayFirst bool
		want     string
	}{
		{"01/12/2022", true, "2022-12-01"},
		{"01/12/2022", false, "2022-01-12"},
		{"1/2/2021", true, "2021-02-01"},
		{"2022-12-01", true, "2022-12-01"},
		{"Desember 2022", true, "2022-12-01"},
		{"1 Mei 2019", true, "2019-05-01"},
		{"Jan-2010", true, "2010-01-01"},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in, tt.dayFirst)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tt.in, err)
			continue
		}
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	values := []float64{5.514, 5.4249, -0.005, 12.3456, 0}
	s := NewMonthly(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), values)
	s.Name = "predicted_mean"

	var buf bytes.Buffer
	if err := WriteCSV(&buf, s, &WriteOptions{Precision: 2}); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse output: %v", err)
	}
	if len(records) != len(values)+1 {
		t.Fatalf("Expected %d records, got %d", len(values)+1, len(records))
	}
	if records[0][0] != "" || records[0][1] != "predicted_mean" {
		t.Errorf("Unexpected header %v", records[0])
	}
	if records[1][0] != "2023-01-01" {
		t.Errorf("Expected first period 2023-01-01, got %s", records[1][0])
	}

	for i, rec := range records[1:] {
		if dot := strings.IndexByte(rec[1], '.'); dot < 0 || len(rec[1])-dot-1 != 2 {
			t.Errorf("Row %d: %q does not have two decimals", i, rec[1])
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			t.Fatalf("Row %d: %v", i, err)
		}
		if math.Abs(v-values[i]) > 0.005+1e-12 {
			t.Errorf("Row %d: %f differs from %f by more than 0.005", i, v, values[i])
		}
	}
}

func TestWriteCSVRequiresIndex(t *testing.T) {
	if err := WriteCSV(&bytes.Buffer{}, New([]float64{1}), nil); err == nil {
		t.Error("Expected error for a series without timestamps")
	}
}
