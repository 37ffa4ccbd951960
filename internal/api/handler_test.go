package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3proventos/internal/calculator"
	"github.com/guttosm/b3proventos/internal/domain/dto"
	"github.com/guttosm/b3proventos/internal/domain/models"
	"github.com/guttosm/b3proventos/internal/fetcher"
	"github.com/guttosm/b3proventos/internal/scraper"
	"github.com/guttosm/b3proventos/internal/service"
	"github.com/shopspring/decimal"
)

type mockDividendService struct {
	details models.CompanyDetails
	yearly  []models.YearlyDividend
	monthly []models.MonthlyDividend
	acc     *models.Accumulated
	err     error

	gotTicker string
	gotWindow int
}

func (m *mockDividendService) CompanyDetails(_ context.Context, ticker string) (models.CompanyDetails, error) {
	m.gotTicker = ticker
	return m.details, m.err
}

func (m *mockDividendService) YearlyDividends(_ context.Context, ticker string) ([]models.YearlyDividend, error) {
	m.gotTicker = ticker
	return m.yearly, m.err
}

func (m *mockDividendService) MonthlyDividends(_ context.Context, ticker string) ([]models.MonthlyDividend, error) {
	m.gotTicker = ticker
	return m.monthly, m.err
}

func (m *mockDividendService) AccumulatedYearly(_ context.Context, ticker string, years int) (*models.Accumulated, error) {
	m.gotTicker, m.gotWindow = ticker, years
	return m.acc, m.err
}

func (m *mockDividendService) AccumulatedMonthly(_ context.Context, ticker string, months int) (*models.Accumulated, error) {
	m.gotTicker, m.gotWindow = ticker, months
	return m.acc, m.err
}

var _ service.DividendService = (*mockDividendService)(nil)

func setupRouterWithMock(s service.DividendService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	g := r.Group("/api")
	g.GET("/details/:ticker", h.GetDetails)
	g.GET("/yearly_dividends/:ticker", h.GetYearlyDividends)
	g.GET("/monthly_dividends/:ticker", h.GetMonthlyDividends)
	g.GET("/accumulated_yearly_dividends/:ticker/:years", h.GetAccumulatedYearly)
	g.GET("/accumulated_monthly_dividends/:ticker/:months", h.GetAccumulatedMonthly)
	return r
}

func scrapeErr(kind error) error {
	return &scraper.ScrapeError{Kind: kind, Ticker: "PETR4", Table: "resultado", Column: "Valor"}
}

func ptr(s string) *string { return &s }

func TestHandlers_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockDividendService
		path   string
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name:   "details success",
			svc:    &mockDividendService{details: models.CompanyDetails{"PAPEL": "PETR4", "COTAÇÃO": "37,45"}},
			path:   "/api/details/petr4",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out map[string]string
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out["PAPEL"] != "PETR4" || out["COTAÇÃO"] != "37,45" {
					t.Fatalf("unexpected body: %v", out)
				}
			},
		},
		{
			name:   "invalid ticker",
			svc:    &mockDividendService{},
			path:   "/api/details/PE$R",
			status: http.StatusBadRequest,
		},
		{
			name:   "ticker unreachable",
			svc:    &mockDividendService{err: &scraper.ScrapeError{Kind: scraper.ErrTickerUnreachable, Ticker: "XXXX3", Err: &fetcher.TransportError{URL: "u", StatusCode: 404}}},
			path:   "/api/details/XXXX3",
			status: http.StatusNotFound,
			assert: func(t *testing.T, body []byte) {
				var out dto.ErrorResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if !strings.Contains(out.Message, "XXXX3") || out.Timestamp.IsZero() {
					t.Fatalf("unexpected error body: %+v", out)
				}
			},
		},
		{name: "no tables", svc: &mockDividendService{err: scrapeErr(scraper.ErrNoTablesFound)}, path: "/api/details/PETR4", status: http.StatusNotFound},
		{name: "no data", svc: &mockDividendService{err: scrapeErr(scraper.ErrNoDataExtracted)}, path: "/api/details/PETR4", status: http.StatusNotFound},
		{name: "table missing", svc: &mockDividendService{err: scrapeErr(scraper.ErrTableNotFound)}, path: "/api/yearly_dividends/PETR4", status: http.StatusNotFound},
		{name: "header missing", svc: &mockDividendService{err: scrapeErr(scraper.ErrHeaderNotFound)}, path: "/api/monthly_dividends/PETR4", status: http.StatusBadRequest},
		{
			name:   "column missing names the column",
			svc:    &mockDividendService{err: scrapeErr(scraper.ErrColumnNotFound)},
			path:   "/api/monthly_dividends/PETR4",
			status: http.StatusBadRequest,
			assert: func(t *testing.T, body []byte) {
				if !strings.Contains(string(body), `column \"Valor\" not found`) {
					t.Fatalf("missing column not named: %s", body)
				}
			},
		},
		{
			name:   "unexpected error is generic",
			svc:    &mockDividendService{err: errors.New("boom")},
			path:   "/api/yearly_dividends/PETR4",
			status: http.StatusInternalServerError,
			assert: func(t *testing.T, body []byte) {
				var out dto.ErrorResponse
				_ = json.Unmarshal(body, &out)
				if out.Message != "internal server error" || out.ErrorDetails != "boom" {
					t.Fatalf("unexpected error body: %+v", out)
				}
			},
		},
		{
			name:   "yearly success",
			svc:    &mockDividendService{yearly: []models.YearlyDividend{{Year: 2024, Amount: decimal.RequireFromString("2.1234")}}},
			path:   "/api/yearly_dividends/petr4",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.YearlyDividendsResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Ticker != "PETR4" || len(out.Data) != 1 || out.Data[0].Year != 2024 || out.Data[0].Value != 2.1234 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "monthly success keeps null dates",
			svc:    &mockDividendService{monthly: []models.MonthlyDividend{{ExDate: nil, Amount: decimal.RequireFromString("0.5"), Kind: "JCP", PaymentDate: ptr("2024-09-20"), SharesFactor: 1}}},
			path:   "/api/monthly_dividends/itub4",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				if !strings.Contains(string(body), `"ex_date":null`) || !strings.Contains(string(body), `"payment_date":"2024-09-20"`) {
					t.Fatalf("unexpected body: %s", body)
				}
			},
		},
		{
			name:   "accumulated yearly success",
			svc:    &mockDividendService{acc: &models.Accumulated{Ticker: "PETR4", Unit: models.WindowYears, Length: 5, Total: decimal.RequireFromString("12.34")}},
			path:   "/api/accumulated_yearly_dividends/petr4/5",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.AccumulatedYearlyResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Ticker != "PETR4" || out.Years != 5 || out.AccumulatedDividends != 12.34 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{name: "accumulated yearly bad window", svc: &mockDividendService{}, path: "/api/accumulated_yearly_dividends/PETR4/five", status: http.StatusBadRequest},
		{name: "accumulated yearly negative window", svc: &mockDividendService{}, path: "/api/accumulated_yearly_dividends/PETR4/-1", status: http.StatusBadRequest},
		{
			name:   "accumulated monthly success",
			svc:    &mockDividendService{acc: &models.Accumulated{Ticker: "ITUB4", Unit: models.WindowMonths, Length: 60, Total: decimal.RequireFromString("8.76")}},
			path:   "/api/accumulated_monthly_dividends/ITUB4/60",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.AccumulatedMonthlyResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Months != 60 || out.AccumulatedDividends != 8.76 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "accumulated monthly malformed record",
			svc:    &mockDividendService{err: &calculator.MalformedRecordError{Index: 2, Field: "ex_date", Reason: "bad"}},
			path:   "/api/accumulated_monthly_dividends/ITUB4/12",
			status: http.StatusInternalServerError,
			assert: func(t *testing.T, body []byte) {
				if !strings.Contains(string(body), "malformed record #2") {
					t.Fatalf("unexpected body: %s", body)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.status {
				t.Fatalf("status: want %d got %d, body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}

func TestHandlers_PassNormalizedParams(t *testing.T) {
	svc := &mockDividendService{acc: &models.Accumulated{Ticker: "TAEE11", Length: 24}}
	r := setupRouterWithMock(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/accumulated_monthly_dividends/taee11/24", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if svc.gotTicker != "TAEE11" || svc.gotWindow != 24 {
		t.Fatalf("service got ticker=%q window=%d", svc.gotTicker, svc.gotWindow)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{scrapeErr(scraper.ErrTickerUnreachable), http.StatusNotFound},
		{scrapeErr(scraper.ErrNoTablesFound), http.StatusNotFound},
		{scrapeErr(scraper.ErrTableNotFound), http.StatusNotFound},
		{scrapeErr(scraper.ErrNoDataExtracted), http.StatusNotFound},
		{scrapeErr(scraper.ErrHeaderNotFound), http.StatusBadRequest},
		{scrapeErr(scraper.ErrColumnNotFound), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", calculator.ErrInvalidWindow), http.StatusBadRequest},
		{&calculator.MalformedRecordError{}, http.StatusInternalServerError},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("statusFor(%v)=%d, want %d", tc.err, got, tc.want)
		}
	}
}
