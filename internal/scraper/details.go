package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/guttosm/b3proventos/internal/domain/models"
)

// decorativeRowClass marks section separator rows on the details page.
const decorativeRowClass = "nivel"

// extractDetails walks every table row as (label, value) cell pairs.
//
// Rules:
//   - rows with class "nivel" are skipped;
//   - a pair is skipped when either cell is ignorable;
//   - labels normalizing to "" are dropped;
//   - a repeated label overwrites the previous value.
func extractDetails(doc *goquery.Document, ticker string, ignorable func(*goquery.Selection) bool) (models.CompanyDetails, error) {
	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, &ScrapeError{Kind: ErrNoTablesFound, Ticker: ticker}
	}

	details := models.CompanyDetails{}
	tables.Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if row.HasClass(decorativeRowClass) {
				return
			}
			cols := row.Find("td")
			for i := 0; i+1 < cols.Length(); i += 2 {
				labelCell, valueCell := cols.Eq(i), cols.Eq(i+1)
				if ignorable(labelCell) || ignorable(valueCell) {
					continue
				}
				if label := NormalizeLabel(strippedText(labelCell)); label != "" {
					details[label] = strippedText(valueCell)
				}
			}
		})
	})

	if len(details) == 0 {
		return nil, &ScrapeError{Kind: ErrNoDataExtracted, Ticker: ticker}
	}
	return details, nil
}
