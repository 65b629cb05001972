// Package dataset loads the inflation table once per process and hands out
// the same immutable frame to every caller.
package dataset

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/sartorproj/inflasi/timeseries"
)

// DefaultPath is the CSV shipped with the dashboard.
const DefaultPath = "data/data_inflasi.csv"

// Source produces a frame. Key identifies the source for caching.
type Source interface {
	Key() string
	Load(ctx context.Context) (*timeseries.Frame, error)
}

// CSVSource reads a CSV export with the date in the first column.
type CSVSource struct {
	Path    string
	Options *timeseries.CSVOptions // nil for timeseries.DefaultCSVOptions
}

func (s CSVSource) Key() string { return "csv:" + s.Path }

func (s CSVSource) Load(ctx context.Context) (*timeseries.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return timeseries.LoadCSV(s.Path, s.Options)
}

type entry struct {
	once  sync.Once
	frame *timeseries.Frame
	err   error
}

// Loader caches frames by source key. The first Load for a key reads the
// source; later calls return the same frame pointer, or the same error.
type Loader struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewLoader returns an empty loader.
func NewLoader() *Loader {
	return &Loader{entries: make(map[string]*entry)}
}

// Load returns the frame for src, reading it at most once.
func (l *Loader) Load(ctx context.Context, src Source) (*timeseries.Frame, error) {
	key := src.Key()

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	l.mu.Unlock()

	e.once.Do(func() {
		e.frame, e.err = src.Load(ctx)
		if e.err != nil {
			e.err = fmt.Errorf("load %s: %w", key, e.err)
			return
		}
		log.Printf("[dataset] loaded %s: %d rows, %s to %s", key, e.frame.Len(),
			e.frame.First().Format("2006-01"), e.frame.Last().Format("2006-01"))
	})
	return e.frame, e.err
}
