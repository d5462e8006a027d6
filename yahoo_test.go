package histvar

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/histvar/date"
)

// chartPayload mimics the v8 chart response closely enough for the probes.
func chartPayload(timestamps, adjcloses string) string {
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":%s,"indicators":{"adjclose":[{"adjclose":%s}],"quote":[{"close":%s}]}}],"error":null}}`,
		timestamps, adjcloses, adjcloses)
}

func TestYahooSource_Prices(t *testing.T) {
	// 08:30 UTC on 2024-01-02 and 2024-01-03, as a European exchange stamps them.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); strings.HasPrefix(ua, "Go-http-client") {
			http.Error(w, "go clients are refused upstream", http.StatusForbidden)
			return
		}
		if r.URL.Path != "/v8/finance/chart/MC.PA" {
			http.NotFound(w, r)
			return
		}
		if p1 := r.URL.Query().Get("period1"); p1 != "1704153600" {
			t.Errorf("period1 = %s, want 1704153600 (2024-01-02T00:00:00Z)", p1)
		}
		// period2 is exclusive, so it must be pushed past the To date.
		if p2 := r.URL.Query().Get("period2"); p2 != "1704326400" {
			t.Errorf("period2 = %s, want 1704326400 (2024-01-04T00:00:00Z)", p2)
		}
		fmt.Fprintln(w, chartPayload("[1704184200,1704270600]", "[100.5,101.25]"))
	}))
	defer srv.Close()

	src := &YahooSource{BaseURL: srv.URL, Client: srv.Client()}
	panel, err := src.Prices([]string{"MC.PA"}, date.Range{From: date.New(2024, 1, 2), To: date.New(2024, 1, 3)})
	if err != nil {
		t.Fatalf("Prices returned an error: %v", err)
	}
	if got, _ := panel.Series("MC.PA").Get(date.New(2024, 1, 2)); got != 100.5 {
		t.Errorf("price on 2024-01-02 = %v, want 100.5", got)
	}
	if got, _ := panel.Series("MC.PA").Get(date.New(2024, 1, 3)); got != 101.25 {
		t.Errorf("price on 2024-01-03 = %v, want 101.25", got)
	}
}

// A null close is a day the exchange skipped, not a price of zero.
func TestYahooSource_nullClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, chartPayload("[1704184200,1704270600]", "[100.5,null]"))
	}))
	defer srv.Close()

	src := &YahooSource{BaseURL: srv.URL, Client: srv.Client()}
	panel, err := src.Prices([]string{"MC.PA"}, date.Range{From: date.New(2024, 1, 2), To: date.New(2024, 1, 3)})
	if err != nil {
		t.Fatalf("Prices returned an error: %v", err)
	}
	h := panel.Series("MC.PA")
	if h.Len() != 1 {
		t.Fatalf("series holds %d prices, want 1", h.Len())
	}
	if _, ok := h.Get(date.New(2024, 1, 3)); ok {
		t.Error("the null close on 2024-01-03 should have been dropped")
	}
}

// Listings without an adjusted series fall back to raw closes.
func TestYahooSource_quoteFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"chart":{"result":[{"timestamp":[1704184200],"indicators":{"quote":[{"close":[99.5]}]}}],"error":null}}`)
	}))
	defer srv.Close()

	src := &YahooSource{BaseURL: srv.URL, Client: srv.Client()}
	panel, err := src.Prices([]string{"MC.PA"}, date.Range{From: date.New(2024, 1, 2), To: date.New(2024, 1, 2)})
	if err != nil {
		t.Fatalf("Prices returned an error: %v", err)
	}
	if got, _ := panel.Series("MC.PA").Get(date.New(2024, 1, 2)); got != 99.5 {
		t.Errorf("price on 2024-01-02 = %v, want 99.5", got)
	}
}

// Unknown symbols come back 200 with an error object in the payload.
func TestYahooSource_refused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	src := &YahooSource{BaseURL: srv.URL, Client: srv.Client()}
	_, err := src.Prices([]string{"NOPE.PA"}, date.Range{From: date.New(2024, 1, 2), To: date.New(2024, 1, 3)})
	var due *DataUnavailableError
	if !errors.As(err, &due) {
		t.Fatalf("Prices error = %v, want a DataUnavailableError", err)
	}
	if !strings.Contains(err.Error(), "symbol may be delisted") {
		t.Errorf("error %q does not carry the upstream description", err)
	}
}
