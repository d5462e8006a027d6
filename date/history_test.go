package date

import (
	"testing"
	"time"
)

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[0], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[1], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[0], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[1], v2)
	}

}

func TestAppend_overwrite(t *testing.T) {
	h := new(History[float64])
	on := New(2025, time.March, 3)

	h.Append(on, 100)
	h.Append(on, 101)

	if h.Len() != 1 {
		t.Fatalf("History.Len() = %v want 1", h.Len())
	}
	if v, ok := h.Get(on); !ok || v != 101 {
		t.Errorf("Get() = %v, %v want 101, true", v, ok)
	}
}

func TestFirstLatest(t *testing.T) {
	h := new(History[float64])

	if d, _ := h.First(); !d.IsZero() {
		t.Errorf("empty First() day = %v want zero", d)
	}
	if d, _ := h.Latest(); !d.IsZero() {
		t.Errorf("empty Latest() day = %v want zero", d)
	}

	h.Append(New(2025, time.March, 5), 2)
	h.Append(New(2025, time.March, 3), 1)
	h.Append(New(2025, time.March, 7), 3)

	if d, v := h.First(); d != New(2025, time.March, 3) || v != 1 {
		t.Errorf("First() = %v, %v want 2025-03-03, 1", d, v)
	}
	if d, v := h.Latest(); d != New(2025, time.March, 7) || v != 3 {
		t.Errorf("Latest() = %v, %v want 2025-03-07, 3", d, v)
	}
}

func TestOver(t *testing.T) {
	h := new(History[float64])
	for i := 1; i <= 10; i++ {
		h.Append(New(2025, time.March, i), float64(i))
	}

	tests := []struct {
		name      string
		r         Range
		wantDays  int
		wantFirst float64
		wantLast  float64
	}{
		{"inner", NewRange(New(2025, time.March, 3), New(2025, time.March, 5)), 3, 3, 5},
		{"whole", NewRange(New(2025, time.March, 1), New(2025, time.March, 10)), 10, 1, 10},
		{"overlapping left", NewRange(New(2025, time.February, 20), New(2025, time.March, 2)), 2, 1, 2},
		{"overlapping right", NewRange(New(2025, time.March, 9), New(2025, time.March, 20)), 2, 9, 10},
		{"outside", NewRange(New(2025, time.April, 1), New(2025, time.April, 10)), 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n int
			var first, last float64
			for _, v := range h.Over(tt.r) {
				if n == 0 {
					first = v
				}
				last = v
				n++
			}
			if n != tt.wantDays {
				t.Fatalf("Over(%v) yielded %d points, want %d", tt.r, n, tt.wantDays)
			}
			if n == 0 {
				return
			}
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("Over(%v) first, last = %v, %v want %v, %v", tt.r, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2025, time.March, 3), 1)
	h.Append(New(2025, time.March, 7), 2)

	tests := []struct {
		name   string
		on     Date
		want   float64
		wantOk bool
	}{
		{"exact", New(2025, time.March, 3), 1, true},
		{"between", New(2025, time.March, 5), 1, true},
		{"after", New(2025, time.March, 10), 2, true},
		{"before", New(2025, time.March, 1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.ValueAsOf(tt.on)
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tt.on, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}
