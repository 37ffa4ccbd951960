package models

import "github.com/shopspring/decimal"

// WindowUnit identifies how an accumulation window is measured.
type WindowUnit string

const (
	WindowYears  WindowUnit = "years"
	WindowMonths WindowUnit = "months"
)

// Accumulated is the result of summing dividends over a trailing window
// ending at the moment the request was served.
//
// Fields:
//   - Ticker: normalized ticker (upper-case).
//   - Unit / Length: window size (e.g., 5 years, 60 months).
//   - Total: sum rounded to 2 decimal places.
type Accumulated struct {
	Ticker string
	Unit   WindowUnit
	Length int
	Total  decimal.Decimal
}
