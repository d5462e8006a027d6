// Package histvar computes the historical Value at Risk of a portfolio of
// listed securities. It answers the question "how much could this portfolio
// lose over one day, with a given confidence?" using nothing but observed
// history: daily returns are replayed as the distribution of what tomorrow
// may bring, and the VaR is the loss at the chosen quantile of that
// distribution.
//
// The core functionalities include:
//   - Price Sources: Fetching daily adjusted close prices from EODHD or
//     Yahoo Finance, or reading them back from local JSONL fixture files,
//     behind a single Source interface with transparent disk caching.
//   - Portfolio Returns: Aligning the per-ticker price series on a common
//     calendar, validating completeness, and deriving the weighted daily
//     return series of the portfolio.
//   - Full-Period VaR: The loss quantile over the whole return sample, one
//     result per confidence level.
//   - Rolling VaR: The same calculation repeated over rolling calendar
//     windows, showing how the risk estimate itself moves through time.
//
// This package serves as the foundational logic for the `hvar` command-line
// tool; rendering lives in the renderer package and the CLI in cmd.
package histvar
