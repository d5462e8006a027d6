package histvar

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/histvar/date"
)

func TestEncodeDecodeFixture(t *testing.T) {
	panel := NewPanel()
	panel.Add("MC.PA", date.New(2024, 1, 2), 100)
	panel.Add("MC.PA", date.New(2024, 1, 3), 101.5)
	panel.Add("OR.PA", date.New(2024, 1, 2), 50.25)

	var buf bytes.Buffer
	if err := EncodeFixture(&buf, panel); err != nil {
		t.Fatalf("EncodeFixture returned an error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("encoded %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if want := `{"ticker":"MC.PA","date":"2024-01-02","close":100}`; lines[0] != want {
		t.Errorf("first line = %s, want %s", lines[0], want)
	}

	decoded := NewPanel()
	if err := DecodeFixture(&buf, decoded); err != nil {
		t.Fatalf("DecodeFixture returned an error: %v", err)
	}
	for _, ticker := range panel.Tickers() {
		for on, want := range panel.Series(ticker).Values() {
			if got, ok := decoded.Series(ticker).Get(on); !ok || got != want {
				t.Errorf("decoded %s on %s = %v, want %v", ticker, on, got, want)
			}
		}
	}
}

func TestDecodeFixture_malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad json", `{"ticker":"MC.PA","date":`},
		{"no ticker", `{"date":"2024-01-02","close":100}`},
		{"no date", `{"ticker":"MC.PA","close":100}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := DecodeFixture(strings.NewReader(tt.input), NewPanel()); err == nil {
				t.Errorf("DecodeFixture(%s) returned no error", tt.input)
			}
		})
	}
}

func TestDecodeFixture_blankLines(t *testing.T) {
	input := "\n" + `{"ticker":"MC.PA","date":"2024-01-02","close":100}` + "\n\n"
	panel := NewPanel()
	if err := DecodeFixture(strings.NewReader(input), panel); err != nil {
		t.Fatalf("DecodeFixture returned an error: %v", err)
	}
	if panel.Series("MC.PA").Len() != 1 {
		t.Errorf("decoded %d prices, want 1", panel.Series("MC.PA").Len())
	}
}

func TestFixtureSource(t *testing.T) {
	panel := NewPanel()
	for i := range 10 {
		on := date.New(2024, 1, 2).Add(i)
		panel.Add("MC.PA", on, 100+float64(i))
		panel.Add("OR.PA", on, 50+float64(i))
	}
	dir := t.TempDir()
	if err := WriteFixtures(dir, panel); err != nil {
		t.Fatalf("WriteFixtures returned an error: %v", err)
	}

	// only MC.PA is requested, and only part of its dates.
	src := &FixtureSource{Dir: dir}
	r := date.Range{From: date.New(2024, 1, 4), To: date.New(2024, 1, 6)}
	got, err := src.Prices([]string{"MC.PA"}, r)
	if err != nil {
		t.Fatalf("Prices returned an error: %v", err)
	}
	if got.Has("OR.PA") {
		t.Error("got OR.PA prices without requesting them")
	}
	h := got.Series("MC.PA")
	if h.Len() != 3 {
		t.Fatalf("got %d prices over %s, want 3", h.Len(), r)
	}
	if v, _ := h.Get(date.New(2024, 1, 4)); v != 102 {
		t.Errorf("price on 2024-01-04 = %v, want 102", v)
	}
	if _, ok := h.Get(date.New(2024, 1, 7)); ok {
		t.Errorf("got a price on 2024-01-07, outside %s", r)
	}
}

// Tickers with characters unfit for a file name survive the round trip.
func TestFixtureSource_escapedTicker(t *testing.T) {
	panel := NewPanel()
	panel.Add("BRK/B", date.New(2024, 1, 2), 400)
	dir := t.TempDir()
	if err := WriteFixtures(dir, panel); err != nil {
		t.Fatalf("WriteFixtures returned an error: %v", err)
	}

	src := &FixtureSource{Dir: dir}
	got, err := src.Prices([]string{"BRK/B"}, date.Range{From: date.New(2024, 1, 1), To: date.New(2024, 1, 5)})
	if err != nil {
		t.Fatalf("Prices returned an error: %v", err)
	}
	if v, ok := got.Series("BRK/B").Get(date.New(2024, 1, 2)); !ok || v != 400 {
		t.Errorf("price for BRK/B = %v, want 400", v)
	}
}

func TestFixtureSource_missingDir(t *testing.T) {
	src := &FixtureSource{Dir: filepath.Join(t.TempDir(), "nope")}
	_, err := src.Prices([]string{"MC.PA"}, date.Range{From: date.New(2024, 1, 2), To: date.New(2024, 1, 3)})
	var due *DataUnavailableError
	if !errors.As(err, &due) {
		t.Fatalf("Prices error = %v, want a DataUnavailableError", err)
	}
}

func TestFixtureSource_malformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.jsonl"), []byte("not json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := &FixtureSource{Dir: dir}
	_, err := src.Prices([]string{"MC.PA"}, date.Range{From: date.New(2024, 1, 2), To: date.New(2024, 1, 3)})
	if err == nil {
		t.Fatal("Prices returned no error on a malformed fixture")
	}
	if !strings.Contains(err.Error(), "bad.jsonl") {
		t.Errorf("error %q does not name the malformed file", err)
	}
}

// An absent ticker is not a source error: validation reports it later.
func TestFixtureSource_absentTicker(t *testing.T) {
	panel := NewPanel()
	panel.Add("MC.PA", date.New(2024, 1, 2), 100)
	dir := t.TempDir()
	if err := WriteFixtures(dir, panel); err != nil {
		t.Fatal(err)
	}

	src := &FixtureSource{Dir: dir}
	got, err := src.Prices([]string{"MC.PA", "OR.PA"}, date.Range{From: date.New(2024, 1, 1), To: date.New(2024, 1, 5)})
	if err != nil {
		t.Fatalf("Prices returned an error: %v", err)
	}
	if got.Has("OR.PA") {
		t.Error("panel reports OR.PA even though no fixture holds it")
	}
}
