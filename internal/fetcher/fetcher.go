package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every fetch attempt.
const DefaultTimeout = 10 * time.Second

// ErrTransport is matched by every TransportError via errors.Is.
var ErrTransport = errors.New("transport error")

// TransportError reports a failed fetch. A missing page and a network fault
// are not distinguished at this layer.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets callers match any transport failure with errors.Is(err, ErrTransport).
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// Fetcher returns the parsed markup of a provider page.
type Fetcher interface {
	Fetch(ctx context.Context, path string, headers http.Header) (*goquery.Document, error)
}

// HTTPFetcher fetches pages below BaseURL with a browser-like header set,
// a per-attempt timeout and a shared outbound rate limit.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	headers http.Header
	limiter *rate.Limiter
	timeout time.Duration
}

// Option customizes an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.headers.Set("User-Agent", ua)
		}
	}
}

// WithRateLimiter sets the limiter every request waits on before being sent.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(f *HTTPFetcher) { f.limiter = l }
}

// NewHTTPFetcher builds a fetcher rooted at baseURL (e.g., "http://fundamentus.com.br/").
func NewHTTPFetcher(baseURL string, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		baseURL: baseURL,
		client:  &http.Client{},
		headers: DefaultHeaders(),
		limiter: rate.NewLimiter(rate.Inf, 1),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// DefaultHeaders is the identification set sent unless overridden per call.
func DefaultHeaders() http.Header {
	h := http.Header{}
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
	return h
}

// Fetch requests baseURL+path and parses the body as HTML.
//
// Behavior:
//   - Waits on the rate limiter (honors ctx).
//   - Applies the per-attempt timeout on top of ctx.
//   - Headers passed in override the defaults key by key.
//   - Decodes the body to UTF-8 from the charset the page announces.
//
// Any failure is returned as *TransportError.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string, headers http.Header) (*goquery.Document, error) {
	url := f.baseURL + path

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	for k, v := range f.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	for k, v := range headers {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("decode charset: %w", err)}
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("parse html: %w", err)}
	}
	return doc, nil
}

// Probe checks the provider root answers with a 2xx status. Used by readiness checks.
func (f *HTTPFetcher) Probe(ctx context.Context) error {
	_, err := f.Fetch(ctx, "", nil)
	return err
}

// CloseIdleConnections releases keep-alive connections held by the client.
func (f *HTTPFetcher) CloseIdleConnections() {
	f.client.CloseIdleConnections()
}
