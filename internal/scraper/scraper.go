// Package scraper extracts company details and dividend series from the
// Fundamentus pages of a ticker.
package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/guttosm/b3proventos/internal/domain/models"
	"github.com/guttosm/b3proventos/internal/fetcher"
	"github.com/guttosm/b3proventos/internal/logger"
)

const (
	detailsPage   = "detalhes.php"
	dividendsPage = "proventos.php"
)

// DefaultIgnorableClasses mark decorative cells on the details page
// (section titles and oscillation widgets).
var DefaultIgnorableClasses = []string{"nivel1", "nivel2", "oscil"}

// Scraper is the extraction contract consumed by the service layer.
type Scraper interface {
	CompanyDetails(ctx context.Context, ticker string) (models.CompanyDetails, error)
	YearlyDividends(ctx context.Context, ticker string) ([]models.YearlyDividend, error)
	MonthlyDividends(ctx context.Context, ticker string) ([]models.MonthlyDividend, error)
}

// Fundamentus implements Scraper on top of fundamentus.com.br pages.
type Fundamentus struct {
	fetcher   fetcher.Fetcher
	ignorable map[string]struct{}
}

// NewFundamentus builds the scraper. An empty ignorableClasses falls back
// to DefaultIgnorableClasses.
func NewFundamentus(f fetcher.Fetcher, ignorableClasses []string) *Fundamentus {
	if len(ignorableClasses) == 0 {
		ignorableClasses = DefaultIgnorableClasses
	}
	set := make(map[string]struct{}, len(ignorableClasses))
	for _, c := range ignorableClasses {
		set[c] = struct{}{}
	}
	return &Fundamentus{fetcher: f, ignorable: set}
}

// NormalizeTicker trims and upper-cases a ticker ("petr4 " → "PETR4").
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// CompanyDetails scrapes every label/value pair of the details page.
func (f *Fundamentus) CompanyDetails(ctx context.Context, ticker string) (models.CompanyDetails, error) {
	ticker = NormalizeTicker(ticker)
	doc, err := f.fetch(ctx, detailsPage, ticker)
	if err != nil {
		return nil, err
	}
	return extractDetails(doc, ticker, f.hasIgnorableClass)
}

// YearlyDividends scrapes the annual results table of the dividends page.
func (f *Fundamentus) YearlyDividends(ctx context.Context, ticker string) ([]models.YearlyDividend, error) {
	ticker = NormalizeTicker(ticker)
	doc, err := f.fetch(ctx, dividendsPage, ticker)
	if err != nil {
		return nil, err
	}
	records, issues, err := extractYearly(doc, ticker)
	if err != nil {
		return nil, err
	}
	logIssues(ticker, issues)
	return records, nil
}

// MonthlyDividends scrapes the detailed results table of the dividends page.
func (f *Fundamentus) MonthlyDividends(ctx context.Context, ticker string) ([]models.MonthlyDividend, error) {
	ticker = NormalizeTicker(ticker)
	doc, err := f.fetch(ctx, dividendsPage, ticker)
	if err != nil {
		return nil, err
	}
	records, issues, err := extractMonthly(doc, ticker)
	if err != nil {
		return nil, err
	}
	logIssues(ticker, issues)
	return records, nil
}

func (f *Fundamentus) fetch(ctx context.Context, page, ticker string) (*goquery.Document, error) {
	path := page + "?papel=" + url.QueryEscape(ticker)
	doc, err := f.fetcher.Fetch(ctx, path, nil)
	if err != nil {
		logger.L().Error().Str("ticker", ticker).Str("path", path).Err(err).Msg("fetch failed")
		return nil, &ScrapeError{Kind: ErrTickerUnreachable, Ticker: ticker, Err: err}
	}
	return doc, nil
}

// hasIgnorableClass reports whether the cell or any element inside it
// carries one of the ignorable classes. Cells come from cols.Eq(i), whose
// Nodes alias the row slice, so nothing may be appended to them.
func (f *Fundamentus) hasIgnorableClass(cell *goquery.Selection) bool {
	if f.classHit(cell) {
		return true
	}
	found := false
	cell.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = f.classHit(s)
		return !found
	})
	return found
}

// classHit checks the class attribute of the first node of s.
func (f *Fundamentus) classHit(s *goquery.Selection) bool {
	for _, class := range strings.Fields(s.AttrOr("class", "")) {
		if _, ok := f.ignorable[class]; ok {
			return true
		}
	}
	return false
}

func logIssues(ticker string, issues []RowIssue) {
	for _, issue := range issues {
		logger.L().Warn().
			Str("ticker", ticker).
			Str("table", issue.Table).
			Int("row", issue.Row).
			Str("reason", issue.Reason).
			Strs("cells", issue.Cells).
			Msg("dividend row skipped")
	}
}
