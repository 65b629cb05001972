package forecast

import (
	"net/url"
	"strconv"
)

// Params is the hyperparameter set chosen on the forecast page.
type Params struct {
	P  int
	D  int
	Q  int
	SP int
	SD int
	SQ int
	S  int
}

// Field describes one slider. Key is both the query parameter and the HTML
// input name.
type Field struct {
	Key   string
	Label string
	Min   int
	Max   int
	Group string // "nonseasonal" or "seasonal"
}

// Fields lists the sliders in display order.
var Fields = []Field{
	{Key: "p", Label: "Parameter p", Min: 0, Max: 5, Group: "nonseasonal"},
	{Key: "d", Label: "Parameter d", Min: 0, Max: 2, Group: "nonseasonal"},
	{Key: "q", Label: "Parameter q", Min: 0, Max: 5, Group: "nonseasonal"},
	{Key: "P", Label: "Parameter P", Min: 0, Max: 5, Group: "seasonal"},
	{Key: "D", Label: "Parameter D", Min: 0, Max: 2, Group: "seasonal"},
	{Key: "Q", Label: "Parameter Q", Min: 0, Max: 5, Group: "seasonal"},
	{Key: "s", Label: "Seasonal Order", Min: 0, Max: 24, Group: "seasonal"},
}

func (p *Params) field(key string) *int {
	switch key {
	case "p":
		return &p.P
	case "d":
		return &p.D
	case "q":
		return &p.Q
	case "P":
		return &p.SP
	case "D":
		return &p.SD
	case "Q":
		return &p.SQ
	case "s":
		return &p.S
	}
	return nil
}

// Get returns the value behind a slider key.
func (p Params) Get(key string) int {
	if v := p.field(key); v != nil {
		return *v
	}
	return 0
}

// ParseParams reads the sliders from a query. Missing or malformed values
// fall back to base; out-of-range values are clamped to the slider bounds.
func ParseParams(q url.Values, base Params) Params {
	out := base
	for _, f := range Fields {
		raw := q.Get(f.Key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		*out.field(f.Key) = v
	}
	return out.Clamp()
}

// HasParams reports whether the query sets any slider.
func HasParams(q url.Values) bool {
	for _, f := range Fields {
		if q.Has(f.Key) {
			return true
		}
	}
	return false
}

// Clamp bounds every value to its slider range.
func (p Params) Clamp() Params {
	for _, f := range Fields {
		v := p.field(f.Key)
		if *v < f.Min {
			*v = f.Min
		}
		if *v > f.Max {
			*v = f.Max
		}
	}
	return p
}

// Query encodes the parameters for a link.
func (p Params) Query() url.Values {
	q := url.Values{}
	for _, f := range Fields {
		q.Set(f.Key, strconv.Itoa(p.Get(f.Key)))
	}
	return q
}
