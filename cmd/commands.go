package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/guttosm/b3proventos/config"
	"github.com/guttosm/b3proventos/internal/app"
	"github.com/guttosm/b3proventos/internal/batch"
	"github.com/guttosm/b3proventos/internal/logger"
	"github.com/spf13/cobra"
)

// Indirections for unit testing.
var (
	initializeApp = app.InitializeApp
	serve         = func(ctx context.Context, router http.Handler, port string, cleanup func()) {
		server := startServer(router, port)
		gracefulShutdown(ctx, server, cleanup)
	}
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "b3proventos",
		Short: "Company details and dividend history of B3 tickers",
		Long: `b3proventos scrapes company indicators and dividend tables of B3 tickers
from Fundamentus and sums dividends over trailing year or month windows.

Run 'b3proventos api' to serve the HTTP API or 'b3proventos scrape' for a one-off batch.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAPICmd(), newScrapeCmd())
	return root
}

func newAPICmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Serve the dividends HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.L().Info().Msg("starting API server")
			router, cleanup, err := initializeApp()
			if err != nil {
				return fmt.Errorf("app init: %w", err)
			}
			serve(cmd.Context(), router, port, cleanup)
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", config.AppConfig.Server.Port, "port to listen on (SERVER_PORT)")
	return cmd
}

func newScrapeCmd() *cobra.Command {
	var (
		opts batch.Options
		file string
	)
	cmd := &cobra.Command{
		Use:   "scrape [TICKER...]",
		Short: "Scrape tickers concurrently and print one JSON line each",
		Example: `  b3proventos scrape PETR4 ITUB4 TAEE11 --years 5 --months 60
  b3proventos scrape --file tickers.txt --parallel 4 --fail-fast`,
		PreRun: func(cmd *cobra.Command, _ []string) {
			logger.InitTo(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			tickers := args
			if file != "" {
				fromFile, err := readTickers(file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				tickers = append(tickers, fromFile...)
			}
			if len(tickers) == 0 {
				return fmt.Errorf("no tickers given, pass them as arguments or with --file")
			}

			f, err := app.NewProviderFetcher(config.AppConfig)
			if err != nil {
				return err
			}
			defer f.CloseIdleConnections()
			svc := app.NewDividendService(config.AppConfig, f)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := batch.NewRunner(svc, nil, cmd.OutOrStdout()).Run(ctx, tickers, opts)
			if err != nil {
				return err
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d tickers failed", summary.Failed, summary.Total)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Years, "years", 5, "yearly accumulation window")
	cmd.Flags().IntVar(&opts.Months, "months", 60, "monthly accumulation window")
	cmd.Flags().IntVar(&opts.Parallel, "parallel", 0, "tickers scraped concurrently (0=auto, max 8)")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop on the first failed ticker")
	cmd.Flags().StringVar(&file, "file", "", "file with one ticker per line ('-' for stdin, '#' starts a comment)")
	return cmd
}

// readTickers reads one ticker per line, skipping blanks and # comments.
func readTickers(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open tickers file: %w", err)
		}
		defer func() { _ = fh.Close() }()
		r = fh
	}

	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tickers file: %w", err)
	}
	return out, nil
}
