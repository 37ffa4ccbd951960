// Package batch scrapes several tickers concurrently and writes one JSON
// line per ticker.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/guttosm/b3proventos/internal/calculator"
	"github.com/guttosm/b3proventos/internal/domain/dto"
	"github.com/guttosm/b3proventos/internal/domain/models"
	"github.com/guttosm/b3proventos/internal/logger"
	"github.com/guttosm/b3proventos/internal/scraper"
	"github.com/guttosm/b3proventos/internal/service"
	"golang.org/x/sync/errgroup"
)

const maxParallel = 8

// Options tunes a batch run.
type Options struct {
	Years    int  // yearly accumulation window
	Months   int  // monthly accumulation window
	Parallel int  // concurrent tickers; 0 means min(maxParallel, NumCPU)
	FailFast bool // stop every job on the first failed ticker
}

// Result is the JSON line emitted for one ticker.
type Result struct {
	Ticker             string                    `json:"ticker"`
	Details            models.CompanyDetails     `json:"details,omitempty"`
	Yearly             []dto.YearlyDividendItem  `json:"yearly,omitempty"`
	Monthly            []dto.MonthlyDividendItem `json:"monthly,omitempty"`
	Years              int                       `json:"years"`
	AccumulatedYearly  *float64                  `json:"accumulated_yearly,omitempty"`
	Months             int                       `json:"months"`
	AccumulatedMonthly *float64                  `json:"accumulated_monthly,omitempty"`
	Error              string                    `json:"error,omitempty"`
	ElapsedMS          int64                     `json:"elapsed_ms"`
}

// Summary counts the outcome of a run.
type Summary struct {
	Total   int
	Failed  int
	Skipped int // not started because a fail-fast run was cancelled
}

// Runner scrapes tickers through a DividendService. Accumulated sums are
// computed from the already scraped series, so each ticker costs one
// details fetch and two dividends fetches.
type Runner struct {
	svc  service.DividendService
	calc *calculator.Calculator
	out  io.Writer
	mu   sync.Mutex
}

// NewRunner writes results to out. A nil calc uses the wall clock.
func NewRunner(svc service.DividendService, calc *calculator.Calculator, out io.Writer) *Runner {
	if calc == nil {
		calc = calculator.New()
	}
	return &Runner{svc: svc, calc: calc, out: out}
}

// Run scrapes every ticker (normalized, blanks and duplicates dropped).
//
// Behavior:
//   - Runs up to opts.Parallel tickers at a time.
//   - A failed ticker is reported in its own line and does not stop the
//     others, unless opts.FailFast is set: then the first failure cancels
//     the remaining jobs and is returned.
//
// Returns the run summary and, with FailFast, the first error.
func (r *Runner) Run(ctx context.Context, tickers []string, opts Options) (Summary, error) {
	if err := calculator.CheckWindow("years", opts.Years); err != nil {
		return Summary{}, err
	}
	if err := calculator.CheckWindow("months", opts.Months); err != nil {
		return Summary{}, err
	}

	tickers = normalize(tickers)
	parallel := resolveParallel(opts.Parallel)
	logger.L().Info().Int("tickers", len(tickers)).Int("max_parallel", parallel).Bool("fail_fast", opts.FailFast).Msg("batch start")

	var (
		mu      sync.Mutex
		failed  int
		started int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, ticker := range tickers {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			mu.Lock()
			started++
			mu.Unlock()

			start := time.Now()
			res, err := r.scrape(gctx, ticker, opts)
			res.ElapsedMS = time.Since(start).Milliseconds()
			if err != nil {
				res.Error = err.Error()
				mu.Lock()
				failed++
				mu.Unlock()
				logger.L().Error().Int("idx", i+1).Int("total", len(tickers)).Str("ticker", ticker).Err(err).Msg("ticker failed")
			} else {
				logger.L().Info().Int("idx", i+1).Int("total", len(tickers)).Str("ticker", ticker).Int64("elapsed_ms", res.ElapsedMS).Msg("ticker done")
			}

			if werr := r.write(res); werr != nil {
				return fmt.Errorf("write result for %s: %w", ticker, werr)
			}
			if err != nil && opts.FailFast {
				return fmt.Errorf("ticker %s: %w", ticker, err)
			}
			return nil
		})
	}

	err := g.Wait()
	summary := Summary{Total: len(tickers), Failed: failed, Skipped: len(tickers) - started}
	logger.L().Info().Int("total", summary.Total).Int("failed", summary.Failed).Int("skipped", summary.Skipped).Msg("batch done")
	return summary, err
}

func (r *Runner) scrape(ctx context.Context, ticker string, opts Options) (Result, error) {
	res := Result{Ticker: ticker, Years: opts.Years, Months: opts.Months}

	details, err := r.svc.CompanyDetails(ctx, ticker)
	if err != nil {
		return res, err
	}
	yearly, err := r.svc.YearlyDividends(ctx, ticker)
	if err != nil {
		return res, err
	}
	monthly, err := r.svc.MonthlyDividends(ctx, ticker)
	if err != nil {
		return res, err
	}

	accYearly, err := r.calc.AccumulatedYearly(yearly, opts.Years)
	if err != nil {
		return res, err
	}
	accMonthly, err := r.calc.AccumulatedMonthly(monthly, opts.Months)
	if err != nil {
		return res, err
	}

	res.Details = details
	res.Yearly = dto.NewYearlyDividendsResponse(ticker, yearly).Data
	res.Monthly = dto.NewMonthlyDividendsResponse(ticker, monthly).Data
	y := accYearly.Round(service.AccumulatedPlaces).InexactFloat64()
	m := accMonthly.Round(service.AccumulatedPlaces).InexactFloat64()
	res.AccumulatedYearly = &y
	res.AccumulatedMonthly = &m
	return res, nil
}

// write emits one line; lines from concurrent jobs never interleave.
func (r *Runner) write(res Result) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err = r.out.Write(append(b, '\n'))
	return err
}

func normalize(tickers []string) []string {
	seen := make(map[string]struct{}, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = scraper.NormalizeTicker(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// resolveParallel clamps to 1..maxParallel, defaulting to min(maxParallel, NumCPU).
func resolveParallel(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return max(1, min(n, maxParallel))
}
