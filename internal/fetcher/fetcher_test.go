package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestHTTPFetcher_Fetch_TableDriven(t *testing.T) {
	cases := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		wantStatus int
		wantText   string
	}{
		{
			name: "ok utf-8",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_, _ = w.Write([]byte(`<html><body><span id="x">Cotação</span></body></html>`))
			},
			wantText: "Cotação",
		},
		{
			name: "iso-8859-1 decoded",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
				// "Cotação" in latin-1
				_, _ = w.Write([]byte("<html><body><span id=\"x\">Cota\xe7\xe3o</span></body></html>"))
			},
			wantText: "Cotação",
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantErr:    true,
			wantStatus: http.StatusNotFound,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr:    true,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			f := NewHTTPFetcher(srv.URL + "/")
			doc, err := f.Fetch(context.Background(), "detalhes.php?papel=PETR4", nil)
			if tc.wantErr {
				var te *TransportError
				if !errors.As(err, &te) {
					t.Fatalf("expected *TransportError, got %v", err)
				}
				if !errors.Is(err, ErrTransport) {
					t.Fatalf("expected errors.Is(err, ErrTransport)")
				}
				if te.StatusCode != tc.wantStatus {
					t.Fatalf("status: want %d got %d", tc.wantStatus, te.StatusCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got := strings.TrimSpace(doc.Find("#x").Text()); got != tc.wantText {
				t.Fatalf("text: want %q got %q", tc.wantText, got)
			}
		})
	}
}

func TestHTTPFetcher_HeadersAndPath(t *testing.T) {
	var gotUA, gotLang, gotCustom, gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		gotCustom = r.Header.Get("X-Custom")
		gotURI = r.URL.RequestURI()
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL+"/", WithUserAgent("test-agent"))
	override := http.Header{}
	override.Set("Accept-Language", "en")
	override.Set("X-Custom", "1")
	if _, err := f.Fetch(context.Background(), "proventos.php?papel=ITUB4", override); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotUA != "test-agent" {
		t.Fatalf("user agent: got %q", gotUA)
	}
	if gotLang != "en" || gotCustom != "1" {
		t.Fatalf("override not applied: lang=%q custom=%q", gotLang, gotCustom)
	}
	if gotURI != "/proventos.php?papel=ITUB4" {
		t.Fatalf("unexpected request uri %q", gotURI)
	}

	// defaults are not mutated by per-call overrides
	if _, err := f.Fetch(context.Background(), "", nil); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotLang != DefaultHeaders().Get("Accept-Language") || gotCustom != "" {
		t.Fatalf("defaults leaked overrides: lang=%q custom=%q", gotLang, gotCustom)
	}
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	f := NewHTTPFetcher(srv.URL+"/", WithTimeout(50*time.Millisecond))
	start := time.Now()
	_, err := f.Fetch(context.Background(), "", nil)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not applied")
	}
}

func TestHTTPFetcher_RateLimiterHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	lim := rate.NewLimiter(rate.Every(time.Hour), 1)
	f := NewHTTPFetcher(srv.URL+"/", WithRateLimiter(lim))
	if err := f.Probe(context.Background()); err != nil {
		t.Fatalf("first probe: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := f.Probe(ctx); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected limiter wait to fail as transport error, got %v", err)
	}
}

func TestTransportError_Message(t *testing.T) {
	e := &TransportError{URL: "http://x/", StatusCode: 404}
	if e.Error() != "GET http://x/: status 404" {
		t.Fatalf("unexpected %q", e.Error())
	}
	e2 := &TransportError{URL: "http://x/", Err: errors.New("dial")}
	if e2.Error() != "GET http://x/: dial" || !errors.Is(e2, e2.Err) {
		t.Fatalf("unexpected %q", e2.Error())
	}
}
