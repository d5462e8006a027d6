package histvar

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/histvar/date"
)

// YahooSource loads daily close prices from the Yahoo Finance chart API.
// It needs no API key; adjusted closes are used when the listing carries
// them, raw closes otherwise.
type YahooSource struct {
	// BaseURL overrides the production endpoint, for tests.
	BaseURL string
	// Client overrides the daily disk-cached client.
	Client *http.Client
}

func (s *YahooSource) Name() string { return "yahoo" }

// Prices implements [Source]. Every failing ticker is reported in a single
// *DataUnavailableError rather than stopping at the first one.
func (s *YahooSource) Prices(tickers []string, r date.Range) (*Panel, error) {
	base := s.BaseURL
	if base == "" {
		base = "https://query1.finance.yahoo.com"
	}
	client := s.Client
	if client == nil {
		client = daily()
	}

	panel := NewPanel()
	var errs error
	var failed []string
	for _, ticker := range tickers {
		if err := s.fetch(client, base, panel, ticker, r); err != nil {
			errs = errors.Join(errs, fmt.Errorf("failed to get prices for %s: %w", ticker, err))
			failed = append(failed, ticker)
		}
	}
	if errs != nil {
		return nil, &DataUnavailableError{Source: s.Name(), Tickers: failed, Err: errs}
	}
	return panel, nil
}

// fetch loads one ticker's daily bars into the panel.
//
// The chart payload is deeply nested, so it is probed with jsonpath instead
// of mirroring the whole structure. A null close means the exchange skipped
// the day; those are dropped here and surface later as panel gaps.
func (s *YahooSource) fetch(client *http.Client, base string, panel *Panel, ticker string, r date.Range) error {
	// period2 is exclusive, push it one day so the To date is included.
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=history",
		base, url.PathEscape(ticker), unix(r.From), unix(r.To.Add(1)))

	req, err := http.NewRequest("GET", addr, nil)
	if err != nil {
		return err
	}
	// yahoo rejects Go's default user agent.
	req.Header.Set("User-Agent", "curl/8")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}

	var jobj any
	if err := json.NewDecoder(resp.Body).Decode(&jobj); err != nil {
		return err
	}

	// failures come back 200 with an error object.
	if jdesc, err := jsonpath.Get("$.chart.error.description", jobj); err == nil {
		if desc, ok := jdesc.(string); ok && desc != "" {
			return fmt.Errorf("yahoo refused %q: %s", ticker, desc)
		}
	}

	path := "$.chart.result[0].timestamp"
	jts, err := jsonpath.Get(path, jobj)
	if err != nil {
		return fmt.Errorf("error parsing %q: %q %w", ticker, path, err)
	}
	jcs, err := jsonpath.Get("$.chart.result[0].indicators.adjclose[0].adjclose", jobj)
	if err != nil {
		// some listings have no adjusted series at all.
		path = "$.chart.result[0].indicators.quote[0].close"
		if jcs, err = jsonpath.Get(path, jobj); err != nil {
			return fmt.Errorf("error parsing %q: %q %w", ticker, path, err)
		}
	}

	stamps, ok := jts.([]any)
	closes, cok := jcs.([]any)
	if !ok || !cok {
		return fmt.Errorf("error parsing %q: timestamps or closes are not lists", ticker)
	}
	for i, jstamp := range stamps {
		if i >= len(closes) {
			break
		}
		stamp, ok := jstamp.(float64)
		if !ok {
			continue
		}
		close, ok := closes[i].(float64)
		if !ok {
			continue // null close, the exchange skipped that day
		}
		t := time.Unix(int64(stamp), 0).UTC()
		panel.Add(ticker, date.New(t.Year(), t.Month(), t.Day()), close)
	}
	return nil
}

// unix returns the start of the day in Unix seconds.
func unix(d date.Date) int64 {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Unix()
}
