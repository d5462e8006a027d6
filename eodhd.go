package histvar

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/etnz/histvar/date"
)

const eodhd_api_key = "EODHD_API_KEY"

var eodhdApiFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching prices from EODHD.com.\n If missing it will read for the environment variable \""+eodhd_api_key+"\". You can get one at https://eodhd.com/")

func eodhdApiKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *eodhdApiFlag == "" {
		*eodhdApiFlag = os.Getenv(eodhd_api_key)
	}
	return *eodhdApiFlag
}

// EODHDSource loads daily adjusted close prices from eodhd.com.
//
// The zero value reads its API key from the -eodhd-api-key flag or the
// EODHD_API_KEY environment variable, and caches responses on disk for a
// day.
type EODHDSource struct {
	// APIKey overrides the flag and environment variable.
	APIKey string
	// BaseURL overrides the production endpoint, for tests.
	BaseURL string
	// Client overrides the daily disk-cached client.
	Client *http.Client
}

func (s *EODHDSource) Name() string { return "eodhd" }

// Prices implements [Source]. Every failing ticker is reported in a single
// *DataUnavailableError rather than stopping at the first one.
func (s *EODHDSource) Prices(tickers []string, r date.Range) (*Panel, error) {
	apiKey := s.APIKey
	if apiKey == "" {
		apiKey = eodhdApiKey()
	}
	if apiKey == "" {
		return nil, &DataUnavailableError{
			Source:  s.Name(),
			Tickers: tickers,
			Err:     errors.New("EODHD API key is not set. Use -eodhd-api-key flag or EODHD_API_KEY environment variable"),
		}
	}
	base := s.BaseURL
	if base == "" {
		base = "https://eodhd.com"
	}
	client := s.Client
	if client == nil {
		client = daily()
	}

	panel := NewPanel()
	var errs error
	var failed []string
	for _, ticker := range tickers {
		if err := s.fetch(client, base, apiKey, panel, ticker, r); err != nil {
			errs = errors.Join(errs, fmt.Errorf("failed to get prices for %s: %w", ticker, err))
			failed = append(failed, ticker)
		}
	}
	if errs != nil {
		return nil, &DataUnavailableError{Source: s.Name(), Tickers: failed, Err: errs}
	}
	return panel, nil
}

// fetch loads one ticker's end-of-day history into the panel.
func (s *EODHDSource) fetch(client *http.Client, base, apiKey string, panel *Panel, ticker string, r date.Range) error {
	// https://eodhd.com/api/eod/MCD.US?fmt=json&from=...&to=...
	// [
	//   {
	//     "date": "2024-02-13",
	//     "open": 675.066,
	//     "adjusted_close": 67.705,
	//     ...
	//   },
	// bounds are included in the response.
	addr := fmt.Sprintf("%s/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		base, url.PathEscape(ticker), apiKey, r.From, r.To)
	type Info struct {
		Date  date.Date `json:"date"`
		Close float64   `json:"adjusted_close"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := jwget(client, addr, &content); err != nil {
		return err
	}
	for _, info := range content {
		panel.Add(ticker, info.Date, info.Close)
	}
	return nil
}
