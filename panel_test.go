package histvar

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/histvar/date"
)

func TestPanel_Add(t *testing.T) {
	p := NewPanel()
	p.Add("MC.PA", date.New(2024, 1, 3), 101)
	p.Add("MC.PA", date.New(2024, 1, 2), 100)
	p.Add("OR.PA", date.New(2024, 1, 2), 50)

	if !p.Has("MC.PA") || !p.Has("OR.PA") {
		t.Fatal("panel is missing a ticker it was given")
	}
	if p.Has("AI.PA") {
		t.Error("panel claims a ticker it never saw")
	}
	if got := p.Tickers(); !slices.Equal(got, []string{"MC.PA", "OR.PA"}) {
		t.Errorf("Tickers() = %v, want insertion order", got)
	}

	// Out-of-order adds still yield an ascending series.
	day, price := p.Series("MC.PA").First()
	if day != date.New(2024, 1, 2) || price != 100 {
		t.Errorf("First() = %s %v, want 2024-01-02 100", day, price)
	}

	// Same-day adds overwrite.
	p.Add("MC.PA", date.New(2024, 1, 2), 99)
	if v, _ := p.Series("MC.PA").Get(date.New(2024, 1, 2)); v != 99 {
		t.Errorf("overwritten price = %v, want 99", v)
	}
}

func TestPanel_Dates(t *testing.T) {
	p := NewPanel()
	p.Add("A", date.New(2024, 1, 2), 1)
	p.Add("A", date.New(2024, 1, 4), 1)
	p.Add("B", date.New(2024, 1, 3), 1)
	p.Add("B", date.New(2024, 1, 4), 1)

	want := []date.Date{date.New(2024, 1, 2), date.New(2024, 1, 3), date.New(2024, 1, 4)}
	if got := p.Dates(); !slices.Equal(got, want) {
		t.Errorf("Dates() = %v, want %v", got, want)
	}
	wantRange := date.Range{From: date.New(2024, 1, 2), To: date.New(2024, 1, 4)}
	if got := p.Range(); got != wantRange {
		t.Errorf("Range() = %s, want %s", got, wantRange)
	}
}

func TestPanel_Validate(t *testing.T) {
	p := NewPanel()
	for i, price := range []float64{100, 101, 102} {
		p.Add("MC.PA", date.New(2024, 1, 2+i), price)
		p.Add("OR.PA", date.New(2024, 1, 2+i), price/2)
	}

	index, err := p.Validate(nil)
	if err != nil {
		t.Fatalf("Validate returned an error on a complete panel: %v", err)
	}
	if len(index) != 3 || index[0] != date.New(2024, 1, 2) || index[2] != date.New(2024, 1, 4) {
		t.Errorf("Validate index = %v", index)
	}
}

func TestPanel_Validate_missingTicker(t *testing.T) {
	p := NewPanel()
	p.Add("MC.PA", date.New(2024, 1, 2), 100)

	_, err := p.Validate([]string{"MC.PA", "OR.PA"})
	var ide *IncompleteDataError
	if !errors.As(err, &ide) {
		t.Fatalf("Validate error = %v, want an IncompleteDataError", err)
	}
	if !slices.Contains(ide.Missing, "OR.PA") {
		t.Errorf("error does not report OR.PA as missing: %v", err)
	}
	if !strings.Contains(err.Error(), "OR.PA") {
		t.Errorf("error message does not name the ticker: %v", err)
	}
}

func TestPanel_Validate_gap(t *testing.T) {
	p := NewPanel()
	for i, price := range []float64{100, 101, 102} {
		p.Add("MC.PA", date.New(2024, 1, 2+i), price)
	}
	p.Add("OR.PA", date.New(2024, 1, 2), 50)
	p.Add("OR.PA", date.New(2024, 1, 4), 51)

	_, err := p.Validate(nil)
	var ide *IncompleteDataError
	if !errors.As(err, &ide) {
		t.Fatalf("Validate error = %v, want an IncompleteDataError", err)
	}
	want := []date.Date{date.New(2024, 1, 3)}
	if !slices.Equal(ide.Gaps["OR.PA"], want) {
		t.Errorf("Gaps[OR.PA] = %v, want %v", ide.Gaps["OR.PA"], want)
	}
	msg := err.Error()
	if !strings.Contains(msg, "OR.PA") || !strings.Contains(msg, "2024-01-03") {
		t.Errorf("error message does not name the ticker and date: %v", msg)
	}
}

// A NaN price is a gap: absent and unparseable values degrade the same way.
func TestPanel_Validate_nan(t *testing.T) {
	p := NewPanel()
	p.Add("MC.PA", date.New(2024, 1, 2), 100)
	p.Add("MC.PA", date.New(2024, 1, 3), math.NaN())

	_, err := p.Validate(nil)
	var ide *IncompleteDataError
	if !errors.As(err, &ide) {
		t.Fatalf("Validate error = %v, want an IncompleteDataError", err)
	}
	if !slices.Equal(ide.Gaps["MC.PA"], []date.Date{date.New(2024, 1, 3)}) {
		t.Errorf("Gaps[MC.PA] = %v, want the NaN date", ide.Gaps["MC.PA"])
	}
}

// Validating a subset only holds that subset to the common calendar.
func TestPanel_Validate_subset(t *testing.T) {
	p := NewPanel()
	for i, price := range []float64{100, 101, 102} {
		p.Add("MC.PA", date.New(2024, 1, 2+i), price)
	}
	p.Add("OR.PA", date.New(2024, 1, 2), 50) // gappy, but not requested

	index, err := p.Validate([]string{"MC.PA"})
	if err != nil {
		t.Fatalf("Validate returned an error for a complete subset: %v", err)
	}
	if len(index) != 3 {
		t.Errorf("Validate index = %v, want the three MC.PA dates", index)
	}
}

func TestPanel_Validate_empty(t *testing.T) {
	_, err := NewPanel().Validate([]string{"MC.PA"})
	var ide *IncompleteDataError
	if !errors.As(err, &ide) {
		t.Fatalf("Validate error = %v, want an IncompleteDataError", err)
	}
}
