package dto

import "github.com/guttosm/b3proventos/internal/domain/models"

// YearlyDividendItem is one entry of GET /api/yearly_dividends/{ticker}.
type YearlyDividendItem struct {
	Year  int     `json:"year" example:"2024"`
	Value float64 `json:"value" example:"1.2345"`
}

// YearlyDividendsResponse wraps the raw yearly series of a ticker.
type YearlyDividendsResponse struct {
	Ticker string               `json:"ticker" example:"PETR4"`
	Data   []YearlyDividendItem `json:"data"`
}

// MonthlyDividendItem is one entry of GET /api/monthly_dividends/{ticker}.
// Dates are YYYY-MM-DD or null when the provider cell was not a valid date.
type MonthlyDividendItem struct {
	ExDate       *string `json:"ex_date" example:"2024-08-21"`
	Value        float64 `json:"value" example:"0.5312"`
	Type         string  `json:"type" example:"DIVIDENDO"`
	PaymentDate  *string `json:"payment_date" example:"2024-09-20"`
	SharesFactor int     `json:"shares_factor" example:"1"`
}

// MonthlyDividendsResponse wraps the raw detailed series of a ticker.
type MonthlyDividendsResponse struct {
	Ticker string                `json:"ticker" example:"ITUB4"`
	Data   []MonthlyDividendItem `json:"data"`
}

// AccumulatedYearlyResponse is returned by GET /api/accumulated_yearly_dividends/{ticker}/{years}.
type AccumulatedYearlyResponse struct {
	Ticker               string  `json:"ticker" example:"PETR4"`
	Years                int     `json:"years" example:"5"`
	AccumulatedDividends float64 `json:"accumulated_dividends" example:"12.34"`
}

// AccumulatedMonthlyResponse is returned by GET /api/accumulated_monthly_dividends/{ticker}/{months}.
type AccumulatedMonthlyResponse struct {
	Ticker               string  `json:"ticker" example:"ITUB4"`
	Months               int     `json:"months" example:"60"`
	AccumulatedDividends float64 `json:"accumulated_dividends" example:"8.76"`
}

// NewYearlyDividendsResponse maps domain records to the wire shape.
func NewYearlyDividendsResponse(ticker string, records []models.YearlyDividend) YearlyDividendsResponse {
	data := make([]YearlyDividendItem, 0, len(records))
	for _, r := range records {
		data = append(data, YearlyDividendItem{Year: r.Year, Value: r.Amount.InexactFloat64()})
	}
	return YearlyDividendsResponse{Ticker: ticker, Data: data}
}

// NewMonthlyDividendsResponse maps domain records to the wire shape.
func NewMonthlyDividendsResponse(ticker string, records []models.MonthlyDividend) MonthlyDividendsResponse {
	data := make([]MonthlyDividendItem, 0, len(records))
	for _, r := range records {
		data = append(data, MonthlyDividendItem{
			ExDate:       r.ExDate,
			Value:        r.Amount.InexactFloat64(),
			Type:         r.Kind,
			PaymentDate:  r.PaymentDate,
			SharesFactor: r.SharesFactor,
		})
	}
	return MonthlyDividendsResponse{Ticker: ticker, Data: data}
}
