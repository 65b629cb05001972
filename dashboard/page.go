package dashboard

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// Page is one entry of the page selector.
type Page int

const (
	Home Page = iota
	ARIMA
)

// Pages lists the selector entries in display order. The first one is the
// fallback for a missing or unknown selection.
var Pages = []Page{Home, ARIMA}

func (p Page) String() string {
	switch p {
	case ARIMA:
		return "ARIMA"
	default:
		return "Home"
	}
}

// ParsePage maps a selector value to a page.
func ParsePage(s string) Page {
	for _, p := range Pages {
		if strings.EqualFold(s, p.String()) {
			return p
		}
	}
	return Pages[0]
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	start := time.Now()
	id, sess := a.sessions.Load(w, r)
	page := ParsePage(r.URL.Query().Get("page"))

	v := &view{Page: page, Pages: Pages}
	var err error
	switch page {
	case Home:
		err = a.home(r, &sess, v)
	case ARIMA:
		err = a.forecast(r, &sess, v)
	}
	sess.Page = page
	a.sessions.Save(id, sess)
	if err != nil {
		log.Printf("[router] %s ?%s failed: %v", page, r.URL.RawQuery, err)
		a.fail(w, v, err)
		return
	}

	a.render(w, http.StatusOK, v)
	log.Printf("[router] %s ?%s in %s", page, r.URL.RawQuery, time.Since(start).Round(time.Millisecond))
}
