package date

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Span is a calendar length, such as two years or ninety days. It is the
// natural unit for rolling analysis windows, which are defined in calendar
// time rather than in trading-day counts.
type Span struct {
	Years  int
	Months int
	Days   int
}

var spanRE = regexp.MustCompile(`^(\d+)([dwmqy])$`)

// ParseSpan parses a calendar length like "2y", "6m", "13w" or "90d".
func ParseSpan(str string) (Span, error) {
	match := spanRE.FindStringSubmatch(str)
	if match == nil {
		return Span{}, fmt.Errorf("invalid span %q want a number followed by d, w, m, q or y", str)
	}
	num, err := strconv.Atoi(match[1])
	if err != nil {
		// This should not happen given the regex
		return Span{}, fmt.Errorf("invalid number in span %q: %w", str, err)
	}
	if num == 0 {
		return Span{}, fmt.Errorf("invalid span %q: must be positive", str)
	}
	switch match[2] {
	case "d":
		return Span{Days: num}, nil
	case "w":
		return Span{Days: 7 * num}, nil
	case "m":
		return Span{Months: num}, nil
	case "q":
		return Span{Months: 3 * num}, nil
	case "y":
		return Span{Years: num}, nil
	}
	panic("unreachable")
}

// MustParseSpan is like ParseSpan but panics on error.
func MustParseSpan(str string) Span {
	s, err := ParseSpan(str)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// IsZero returns true if the span has no length.
func (s Span) IsZero() bool { return s.Years == 0 && s.Months == 0 && s.Days == 0 }

func (s Span) String() string {
	if s.IsZero() {
		return "0d"
	}
	var str string
	if s.Years != 0 {
		str += fmt.Sprintf("%dy", s.Years)
	}
	if s.Months != 0 {
		str += fmt.Sprintf("%dm", s.Months)
	}
	if s.Days != 0 {
		str += fmt.Sprintf("%dd", s.Days)
	}
	return str
}

// Back returns the date one span before d, using calendar arithmetic
// normalized the way [New] does.
func (s Span) Back(d Date) Date {
	return New(d.y-s.Years, d.m-time.Month(s.Months), d.d-s.Days)
}

// Forward returns the date one span after d.
func (s Span) Forward(d Date) Date {
	return New(d.y+s.Years, d.m+time.Month(s.Months), d.d+s.Days)
}
