package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lociview/lociview/pkg/config"
	"github.com/lociview/lociview/pkg/pipeline"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := config.Parse(`
[[track]]
type = "XAxis"
`)
	if err != nil {
		t.Fatal(err)
	}
	c := New(io.Discard, LogInfo)
	runner := pipeline.NewRunner(nil, c.Logger)
	return c.newRouter(runner, cfg, false)
}

func TestServeHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestServeView(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/view?range=chr1:0-1000000", nil)
	testRouter(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("content type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("body is not an SVG document")
	}
}

func TestServeViewBadRequests(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"missing range", "/view"},
		{"bad range", "/view?range=nope"},
		{"bad format", "/view?range=chr1:0-1000&format=gif"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.url, nil))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}
