package models

import "github.com/shopspring/decimal"

// ISODateLayout is the layout used for every date carried by the dividend records.
const ISODateLayout = "2006-01-02"

// YearlyDividend represents one row of the provider's annual results table
// ("resultado-anual").
//
// Fields:
//   - Year: calendar year the dividends refer to (e.g., 2024).
//   - Amount: total distributed per share in that year.
type YearlyDividend struct {
	Year   int
	Amount decimal.Decimal
}

// MonthlyDividend represents one row of the provider's detailed results table
// ("resultado").
//
// Dates are ISO formatted (YYYY-MM-DD). A nil date means the provider cell
// could not be parsed; the row is still kept because the amount is valid.
//
// Columns (provider header → field):
//
//	Data              → ExDate
//	Valor             → Amount
//	Tipo              → Kind (e.g., "DIVIDENDO", "JRS CAP PROPRIO")
//	Data de Pagamento → PaymentDate
//	Por quantas ações → SharesFactor
type MonthlyDividend struct {
	ExDate       *string
	Amount       decimal.Decimal
	Kind         string
	PaymentDate  *string
	SharesFactor int
}
