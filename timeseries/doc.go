// Package timeseries provides time series data structures and utilities.
//
// A Series is one dated column of values. A Frame is an ordered table of
// value columns that share a time index, stored in a gonum dense matrix.
//
// # Loading from CSV
//
// Statistics exports usually list the newest month first with day-first
// dates. DefaultCSVOptions reverses the rows into chronological order and
// annotates the index as month-start:
//
//	frame, err := timeseries.LoadCSV("data/data_inflasi.csv", nil)
//	inflation := frame.ColumnAt(0)
//
// # Frequency
//
// The frequency annotation never changes the data. SetFreq only checks that
// every period is the first day of its month and that no month is missing:
//
//	err := frame.SetFreq(timeseries.MonthStart)
//	next := timeseries.MonthStart.Add(frame.Last(), 1)
//
// # Slicing
//
//	part, err := frame.Between(start, end) // closed interval
//
// # Writing
//
//	err := timeseries.WriteCSV(w, forecast, &timeseries.WriteOptions{Precision: 2})
package timeseries
