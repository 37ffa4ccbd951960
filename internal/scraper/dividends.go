package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/guttosm/b3proventos/internal/domain/models"
)

const (
	annualTableID   = "resultado-anual"
	detailedTableID = "resultado"
)

// Header texts of the provider tables, matched exactly after trimming.
const (
	colYear         = "Ano"
	colValue        = "Valor"
	colExDate       = "Data"
	colKind         = "Tipo"
	colPaymentDate  = "Data de Pagamento"
	colSharesFactor = "Por quantas ações"
)

// detailedColumns lists the columns the detailed table must expose, in the
// order they are checked.
var detailedColumns = []string{colExDate, colValue, colKind, colPaymentDate, colSharesFactor}

// resultTable locates a dividends table by id and returns it with its header texts.
func resultTable(doc *goquery.Document, ticker, id string) (*goquery.Selection, []string, error) {
	table := doc.Find("table#" + id).First()
	if table.Length() == 0 {
		return nil, nil, &ScrapeError{Kind: ErrTableNotFound, Ticker: ticker, Table: id}
	}
	thead := table.Find("thead").First()
	if thead.Length() == 0 {
		return nil, nil, &ScrapeError{Kind: ErrHeaderNotFound, Ticker: ticker, Table: id}
	}
	return table, cellTexts(thead.Find("th")), nil
}

// bodyRows returns the data rows of a table. The HTML parser wraps loose
// rows in an implicit <tbody>, so reading tbody covers both layouts.
func bodyRows(table *goquery.Selection) *goquery.Selection {
	return table.ChildrenFiltered("tbody").Find("tr")
}

func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

// extractYearly reads the annual table into records. Rows that fail to parse
// are returned as issues instead of records.
func extractYearly(doc *goquery.Document, ticker string) ([]models.YearlyDividend, []RowIssue, error) {
	table, headers, err := resultTable(doc, ticker, annualTableID)
	if err != nil {
		return nil, nil, err
	}

	yearIdx := indexOf(headers, colYear)
	if yearIdx < 0 {
		return nil, nil, &ScrapeError{Kind: ErrColumnNotFound, Ticker: ticker, Table: annualTableID, Column: colYear}
	}
	valueIdx := indexOf(headers, colValue)
	if valueIdx < 0 {
		return nil, nil, &ScrapeError{Kind: ErrColumnNotFound, Ticker: ticker, Table: annualTableID, Column: colValue}
	}
	minCells := max(yearIdx, valueIdx) + 1

	records := []models.YearlyDividend{}
	var issues []RowIssue
	bodyRows(table).Each(func(i int, row *goquery.Selection) {
		cells := cellTexts(row.Find("td"))
		if len(cells) < minCells {
			return
		}
		rec, reason := parseYearlyRow(cells, yearIdx, valueIdx)
		if reason != "" {
			issues = append(issues, RowIssue{Table: annualTableID, Row: i + 1, Reason: reason, Cells: cells})
			return
		}
		records = append(records, rec)
	})
	return records, issues, nil
}

func parseYearlyRow(cells []string, yearIdx, valueIdx int) (models.YearlyDividend, string) {
	year, err := parseInt(cells[yearIdx])
	if err != nil {
		return models.YearlyDividend{}, err.Error()
	}
	amount, err := ParseLocaleDecimal(cells[valueIdx])
	if err != nil {
		return models.YearlyDividend{}, err.Error()
	}
	return models.YearlyDividend{Year: year, Amount: amount}, ""
}

// extractMonthly reads the detailed table into records.
//
// The amount and the shares factor are required; a row failing either is
// reported as an issue. Dates are lenient: an invalid date is kept as nil.
func extractMonthly(doc *goquery.Document, ticker string) ([]models.MonthlyDividend, []RowIssue, error) {
	table, headers, err := resultTable(doc, ticker, detailedTableID)
	if err != nil {
		return nil, nil, err
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}
	minCells := len(detailedColumns)
	for _, col := range detailedColumns {
		i, ok := index[col]
		if !ok {
			return nil, nil, &ScrapeError{Kind: ErrColumnNotFound, Ticker: ticker, Table: detailedTableID, Column: col}
		}
		minCells = max(minCells, i+1)
	}

	records := []models.MonthlyDividend{}
	var issues []RowIssue
	bodyRows(table).Each(func(i int, row *goquery.Selection) {
		cells := cellTexts(row.Find("td"))
		if len(cells) < len(detailedColumns) {
			return
		}
		if len(cells) < minCells {
			issues = append(issues, RowIssue{Table: detailedTableID, Row: i + 1, Reason: "row has fewer cells than the header", Cells: cells})
			return
		}
		rec, reason := parseMonthlyRow(cells, index)
		if reason != "" {
			issues = append(issues, RowIssue{Table: detailedTableID, Row: i + 1, Reason: reason, Cells: cells})
			return
		}
		records = append(records, rec)
	})
	return records, issues, nil
}

func parseMonthlyRow(cells []string, index map[string]int) (models.MonthlyDividend, string) {
	amount, err := ParseLocaleDecimal(cells[index[colValue]])
	if err != nil {
		return models.MonthlyDividend{}, err.Error()
	}
	factor, err := parseInt(cells[index[colSharesFactor]])
	if err != nil {
		return models.MonthlyDividend{}, err.Error()
	}

	rec := models.MonthlyDividend{
		Amount:       amount,
		Kind:         cells[index[colKind]],
		SharesFactor: factor,
	}
	if iso, ok := parseProviderDate(cells[index[colExDate]]); ok {
		rec.ExDate = &iso
	}
	if iso, ok := parseProviderDate(cells[index[colPaymentDate]]); ok {
		rec.PaymentDate = &iso
	}
	return rec, ""
}
