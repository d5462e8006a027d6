package histvar

import "github.com/etnz/histvar/date"

// Source provides daily adjusted close prices.
//
// Implementations fail with a *DataUnavailableError when the provider
// cannot deliver. A sparse panel is not an error here: Panel.Validate is
// the completeness gate.
type Source interface {
	// Name identifies the source in reports and logs.
	Name() string
	// Prices returns the price panel for the tickers over the range, both
	// bounds included.
	Prices(tickers []string, r date.Range) (*Panel, error)
}
