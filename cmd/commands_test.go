package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3proventos/config"
)

func TestReadTickers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.txt")
	content := "PETR4\n\n  itub4  # bank\n# comment only\nTAEE11\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := readTickers(path, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if strings.Join(got, ",") != "PETR4,itub4,TAEE11" {
		t.Fatalf("unexpected tickers %v", got)
	}

	got, err = readTickers("-", strings.NewReader("VALE3\n"))
	if err != nil || len(got) != 1 || got[0] != "VALE3" {
		t.Fatalf("stdin: %v %v", got, err)
	}

	if _, err := readTickers(filepath.Join(t.TempDir(), "missing.txt"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestScrapeCmd_NoTickers(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"scrape"})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "no tickers") {
		t.Fatalf("expected no tickers error, got %v", err)
	}
}

func TestScrapeCmd_WritesJSONLines(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("papel") == "NOPE3" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch r.URL.Path {
		case "/detalhes.php":
			_, _ = w.Write([]byte(`<table><tr><td>Papel</td><td>` + r.URL.Query().Get("papel") + `</td></tr></table>`))
		default:
			_, _ = w.Write([]byte(`<table id="resultado-anual"><thead><tr><th>Ano</th><th>Valor</th></tr></thead><tbody></tbody></table>
<table id="resultado"><thead><tr><th>Data</th><th>Valor</th><th>Tipo</th><th>Data de Pagamento</th><th>Por quantas ações</th></tr></thead><tbody></tbody></table>`))
		}
	}))
	defer provider.Close()

	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{Provider: config.ProviderConfig{BaseURL: provider.URL + "/", Timeout: 2 * time.Second, RatePerSec: 1000, Burst: 10}}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"scrape", "petr4", "NOPE3", "--parallel", "2", "--years", "1", "--months", "12"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "1 of 2 tickers failed") {
		t.Fatalf("expected partial failure error, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %q", out.String())
	}
	joined := out.String()
	if !strings.Contains(joined, `"ticker":"PETR4"`) || !strings.Contains(joined, `"PAPEL":"PETR4"`) || !strings.Contains(joined, `"accumulated_yearly":0`) {
		t.Fatalf("unexpected success line: %s", joined)
	}
	if !strings.Contains(joined, `"ticker":"NOPE3"`) || !strings.Contains(joined, `"error":`) {
		t.Fatalf("unexpected failure line: %s", joined)
	}
}

func TestAPICmd_UsesInitializedRouter(t *testing.T) {
	oldInit, oldServe := initializeApp, serve
	t.Cleanup(func() { initializeApp, serve = oldInit, oldServe })

	cleaned := false
	initializeApp = func() (*gin.Engine, func(), error) {
		return gin.New(), func() { cleaned = true }, nil
	}
	var gotPort string
	serve = func(_ context.Context, router http.Handler, port string, cleanup func()) {
		if router == nil {
			t.Errorf("nil router")
		}
		gotPort = port
		cleanup()
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"api", "--port", "9999"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotPort != "9999" || !cleaned {
		t.Fatalf("port=%q cleaned=%v", gotPort, cleaned)
	}
}

func TestAPICmd_InitFailure(t *testing.T) {
	oldInit := initializeApp
	t.Cleanup(func() { initializeApp = oldInit })
	initializeApp = func() (*gin.Engine, func(), error) { return nil, nil, errors.New("boom") }

	cmd := newRootCmd()
	cmd.SetArgs([]string{"api"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected init error, got %v", err)
	}
}
