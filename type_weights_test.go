package histvar

import (
	"errors"
	"math"
	"testing"
)

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights("MC.PA=0.6, OR.PA=0.4")
	if err != nil {
		t.Fatalf("ParseWeights returned an error: %v", err)
	}
	if len(w) != 2 || w["MC.PA"] != 0.6 || w["OR.PA"] != 0.4 {
		t.Errorf("ParseWeights = %v", w)
	}

	bad := []string{
		"",
		"MC.PA",
		"MC.PA=sixty",
		"MC.PA=-0.5,OR.PA=1.5",
		"MC.PA=0.5,MC.PA=0.5",
	}
	for _, str := range bad {
		if _, err := ParseWeights(str); err == nil {
			t.Errorf("ParseWeights(%q) did not fail", str)
		}
	}
}

func TestWeights_Sum(t *testing.T) {
	w := Weights{"A": 0.25, "B": 0.25, "C": 0.5}
	if got := w.Sum(); math.Abs(got-1) > 1e-12 {
		t.Errorf("Sum() = %v, want 1", got)
	}
}

func TestWeights_Normalize(t *testing.T) {
	w := Weights{"A": 2, "B": 2}
	n, err := w.Normalize()
	if err != nil {
		t.Fatalf("Normalize returned an error: %v", err)
	}
	if n["A"] != 0.5 || n["B"] != 0.5 {
		t.Errorf("Normalize = %v, want halves", n)
	}
	// The receiver is untouched.
	if w["A"] != 2 {
		t.Errorf("Normalize mutated its receiver: %v", w)
	}

	if _, err := (Weights{"A": 0, "B": 0}).Normalize(); err == nil {
		t.Error("Normalize accepted a zero-sum weight vector")
	}
}

func TestWeights_check(t *testing.T) {
	tickers := []string{"MC.PA", "OR.PA"}

	if err := (Weights{"MC.PA": 0.6, "OR.PA": 0.4}).check(tickers); err != nil {
		t.Errorf("check rejected matching weights: %v", err)
	}

	err := (Weights{"MC.PA": 1}).check(tickers)
	var wme *WeightMismatchError
	if !errors.As(err, &wme) {
		t.Fatalf("check error = %v, want a WeightMismatchError", err)
	}
	if len(wme.Missing) != 1 || wme.Missing[0] != "OR.PA" {
		t.Errorf("Missing = %v, want [OR.PA]", wme.Missing)
	}

	err = (Weights{"MC.PA": 0.6, "OR.PA": 0.4, "AI.PA": 0}).check(tickers)
	if !errors.As(err, &wme) {
		t.Fatalf("check error = %v, want a WeightMismatchError", err)
	}
	if len(wme.Extra) != 1 || wme.Extra[0] != "AI.PA" {
		t.Errorf("Extra = %v, want [AI.PA]", wme.Extra)
	}

	err = (Weights{"MC.PA": 0.6, "OR.PA": 0.5}).check(tickers)
	if !errors.As(err, &wme) {
		t.Fatalf("check error = %v, want a WeightMismatchError", err)
	}
	if math.Abs(wme.Sum-1.1) > 1e-9 {
		t.Errorf("Sum = %v, want 1.1", wme.Sum)
	}
}
