package histvar

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/etnz/histvar/date"
)

// fixtureRecord is one daily bar in a fixture file.
type fixtureRecord struct {
	Ticker string    `json:"ticker"`
	Date   date.Date `json:"date"`
	Close  float64   `json:"close"`
}

// FixtureSource serves prices from .jsonl fixture files in a directory,
// written by the fetch command or by hand. Offline runs and tests use it in
// place of a remote provider.
type FixtureSource struct {
	// Dir holds one or more .jsonl fixture files.
	Dir string
}

func (s *FixtureSource) Name() string { return "fixture:" + s.Dir }

// Prices implements [Source]. A ticker absent from every fixture file is
// not an error here: it surfaces as a missing ticker in Panel.Validate.
func (s *FixtureSource) Prices(tickers []string, r date.Range) (*Panel, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, &DataUnavailableError{Source: s.Name(), Tickers: tickers, Err: err}
	}

	staging := NewPanel()
	var errs error
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		f, err := os.Open(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		err = DecodeFixture(f, staging)
		f.Close()
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("fixture %s: %w", e.Name(), err))
		}
	}
	if errs != nil {
		return nil, &DataUnavailableError{Source: s.Name(), Tickers: tickers, Err: errs}
	}

	panel := NewPanel()
	for _, t := range tickers {
		h := staging.Series(t)
		if h == nil {
			continue
		}
		for on, v := range h.Over(r) {
			panel.Add(t, on, v)
		}
	}
	return panel, nil
}

// DecodeFixture reads fixture records from a stream of JSONL data into the
// panel, skipping empty lines.
func DecodeFixture(r io.Reader, p *Panel) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var record fixtureRecord
		if err := json.Unmarshal(lineBytes, &record); err != nil {
			return fmt.Errorf("could not parse fixture line %q: %w", string(lineBytes), err)
		}
		if record.Ticker == "" {
			return fmt.Errorf("fixture line %q has no ticker", string(lineBytes))
		}
		if record.Date.IsZero() {
			return fmt.Errorf("fixture line %q has no date", string(lineBytes))
		}
		p.Add(record.Ticker, record.Date, record.Close)
	}
	return scanner.Err()
}

// EncodeFixture persists the panel to an io.Writer in JSONL format, tickers
// in panel order and dates ascending, so encoding is reproducible.
func EncodeFixture(w io.Writer, p *Panel) error {
	for _, t := range p.Tickers() {
		if err := encodeSeries(w, t, p.Series(t)); err != nil {
			return err
		}
	}
	return nil
}

func encodeSeries(w io.Writer, ticker string, h *date.History[float64]) error {
	for on, v := range h.Values() {
		data, err := json.Marshal(fixtureRecord{Ticker: ticker, Date: on, Close: v})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

// WriteFixtures writes one fixture file per panel ticker under dir,
// creating it if needed. The resulting directory is a valid FixtureSource.
func WriteFixtures(dir string, p *Panel) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, t := range p.Tickers() {
		file := filepath.Join(dir, url.PathEscape(t)+".jsonl")
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		err = encodeSeries(f, t, p.Series(t))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("could not write fixture %s: %w", file, err)
		}
	}
	return nil
}
