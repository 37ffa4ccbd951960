package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name  string
		probe func(ctx context.Context) error
		path  string
		want  int
	}{
		{name: "healthz ok", path: "/healthz", want: 200},
		{name: "readyz without probe", path: "/readyz", want: 200},
		{name: "readyz ok", probe: func(context.Context) error { return nil }, path: "/readyz", want: 200},
		{name: "readyz degraded", probe: func(context.Context) error { return assertErr{} }, path: "/readyz", want: 503},
		{
			name: "readyz probe gets a deadline",
			probe: func(ctx context.Context) error {
				if _, ok := ctx.Deadline(); !ok {
					return assertErr{}
				}
				return nil
			},
			path: "/readyz",
			want: 200,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler(tc.probe).Register(r)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("want %d got %d", tc.want, w.Code)
			}
		})
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "err" }
