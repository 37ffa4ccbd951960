package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3proventos/internal/logger"
)

func TestToString(t *testing.T) {
	if s := toString(nil); s != "" {
		t.Fatalf("nil -> %q, want empty", s)
	}
	if s := toString("abc"); s != "abc" {
		t.Fatalf("string -> %q, want 'abc'", s)
	}
	if s := toString(123); s != "" {
		t.Fatalf("non-string -> %q, want empty", s)
	}
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("LOG_FILE", "")
	t.Cleanup(logger.Init)

	cases := []struct {
		name       string
		status     int
		cause      error
		wantLevel  string
		wantErrors bool
	}{
		{name: "ok is info", status: http.StatusOK, wantLevel: "info"},
		{name: "not found is warn", status: http.StatusNotFound, wantLevel: "warn"},
		{name: "bad request is warn", status: http.StatusBadRequest, wantLevel: "warn"},
		{name: "server error is error", status: http.StatusInternalServerError, cause: errors.New("boom"), wantLevel: "error", wantErrors: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger.InitTo(&buf)

			router := gin.New()
			router.Use(RequestID(), RequestLogger())
			router.GET("/api/details/:ticker", func(c *gin.Context) {
				if tc.cause != nil {
					_ = c.Error(tc.cause)
				}
				c.Status(tc.status)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/details/PETR4", nil)
			req.Header.Set(RequestIDHeader, "rid-1")
			router.ServeHTTP(w, req)

			var line map[string]any
			if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
				t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
			}
			if line["level"] != tc.wantLevel {
				t.Fatalf("level: want %q got %v", tc.wantLevel, line["level"])
			}
			if line["msg"] != "http_request" || line["request_id"] != "rid-1" || line["path"] != "/api/details/PETR4" {
				t.Fatalf("unexpected log line %v", line)
			}
			if int(line["status"].(float64)) != tc.status {
				t.Fatalf("status: want %d got %v", tc.status, line["status"])
			}
			if _, ok := line["errors"]; ok != tc.wantErrors {
				t.Fatalf("errors field present=%v, want %v", ok, tc.wantErrors)
			}
		})
	}
}
