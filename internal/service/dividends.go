package service

import (
	"context"

	"github.com/guttosm/b3proventos/internal/calculator"
	"github.com/guttosm/b3proventos/internal/domain/models"
	"github.com/guttosm/b3proventos/internal/scraper"
)

// AccumulatedPlaces is the rounding applied to every accumulated total.
const AccumulatedPlaces = 2

// DividendService defines the business operations exposed by the API and the batch runner.
type DividendService interface {
	CompanyDetails(ctx context.Context, ticker string) (models.CompanyDetails, error)
	YearlyDividends(ctx context.Context, ticker string) ([]models.YearlyDividend, error)
	MonthlyDividends(ctx context.Context, ticker string) ([]models.MonthlyDividend, error)
	AccumulatedYearly(ctx context.Context, ticker string, years int) (*models.Accumulated, error)
	AccumulatedMonthly(ctx context.Context, ticker string, months int) (*models.Accumulated, error)
}

type dividendService struct {
	scraper scraper.Scraper
	calc    *calculator.Calculator
}

// NewDividendService wires a scraper to a calculator. A nil calc uses the wall clock.
func NewDividendService(s scraper.Scraper, calc *calculator.Calculator) DividendService {
	if calc == nil {
		calc = calculator.New()
	}
	return &dividendService{scraper: s, calc: calc}
}

func (s *dividendService) CompanyDetails(ctx context.Context, ticker string) (models.CompanyDetails, error) {
	return s.scraper.CompanyDetails(ctx, ticker)
}

func (s *dividendService) YearlyDividends(ctx context.Context, ticker string) ([]models.YearlyDividend, error) {
	return s.scraper.YearlyDividends(ctx, ticker)
}

func (s *dividendService) MonthlyDividends(ctx context.Context, ticker string) ([]models.MonthlyDividend, error) {
	return s.scraper.MonthlyDividends(ctx, ticker)
}

// AccumulatedYearly sums the yearly series over the last `years` calendar years plus the current one.
func (s *dividendService) AccumulatedYearly(ctx context.Context, ticker string, years int) (*models.Accumulated, error) {
	if err := calculator.CheckWindow("years", years); err != nil {
		return nil, err
	}
	records, err := s.scraper.YearlyDividends(ctx, ticker)
	if err != nil {
		return nil, err
	}
	total, err := s.calc.AccumulatedYearly(records, years)
	if err != nil {
		return nil, err
	}
	return &models.Accumulated{
		Ticker: scraper.NormalizeTicker(ticker),
		Unit:   models.WindowYears,
		Length: years,
		Total:  total.Round(AccumulatedPlaces),
	}, nil
}

// AccumulatedMonthly sums the detailed series whose ex-date lies within the last `months` months.
func (s *dividendService) AccumulatedMonthly(ctx context.Context, ticker string, months int) (*models.Accumulated, error) {
	if err := calculator.CheckWindow("months", months); err != nil {
		return nil, err
	}
	records, err := s.scraper.MonthlyDividends(ctx, ticker)
	if err != nil {
		return nil, err
	}
	total, err := s.calc.AccumulatedMonthly(records, months)
	if err != nil {
		return nil, err
	}
	return &models.Accumulated{
		Ticker: scraper.NormalizeTicker(ticker),
		Unit:   models.WindowMonths,
		Length: months,
		Total:  total.Round(AccumulatedPlaces),
	}, nil
}
