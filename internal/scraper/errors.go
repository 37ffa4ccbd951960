package scraper

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is against any *ScrapeError of the same kind.
var (
	ErrTickerUnreachable = errors.New("ticker unreachable")
	ErrNoTablesFound     = errors.New("no tables found")
	ErrTableNotFound     = errors.New("table not found")
	ErrNoDataExtracted   = errors.New("no data extracted")
	ErrHeaderNotFound    = errors.New("header not found")
	ErrColumnNotFound    = errors.New("column not found")
)

// ScrapeError describes why a page could not be turned into records.
//
// Fields:
//   - Kind: one of the sentinel errors above.
//   - Ticker: normalized ticker being scraped.
//   - Table: id of the expected table, when relevant.
//   - Column: header text of the missing column, for ErrColumnNotFound.
//   - Err: underlying cause (e.g., *fetcher.TransportError).
type ScrapeError struct {
	Kind   error
	Ticker string
	Table  string
	Column string
	Err    error
}

func (e *ScrapeError) Error() string {
	var msg string
	switch e.Kind {
	case ErrTickerUnreachable:
		msg = fmt.Sprintf("could not reach the page for ticker %q", e.Ticker)
	case ErrNoTablesFound:
		msg = fmt.Sprintf("no tables found on the details page for %q", e.Ticker)
	case ErrTableNotFound:
		msg = fmt.Sprintf("table id=%q not found for %q", e.Table, e.Ticker)
	case ErrNoDataExtracted:
		msg = fmt.Sprintf("no label/value data found for %q", e.Ticker)
	case ErrHeaderNotFound:
		msg = fmt.Sprintf("header of table id=%q not found for %q", e.Table, e.Ticker)
	case ErrColumnNotFound:
		msg = fmt.Sprintf("column %q not found in table id=%q for %q", e.Column, e.Table, e.Ticker)
	default:
		msg = fmt.Sprintf("scraping %q failed", e.Ticker)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ScrapeError) Unwrap() error { return e.Err }

func (e *ScrapeError) Is(target error) bool { return target == e.Kind }
