package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			if _, err := io.Copy(io.Discard, r.Body); err != nil {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	h := NewCORSMiddleware([]string{"https://leafwall.example"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/leaves", nil)
	req.Header.Set("Origin", "https://leafwall.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "https://leafwall.example" {
		t.Error("allowed origin should be echoed")
	}
}

func TestCORSIgnoresUnlistedOrigin(t *testing.T) {
	h := NewCORSMiddleware([]string{"https://leafwall.example"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/leaves", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unlisted origin should not receive CORS headers")
	}
}

func TestCORSWildcardAllowsAll(t *testing.T) {
	h := NewCORSMiddleware([]string{"*"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anything.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "https://anything.example" {
		t.Error("wildcard config should allow any origin")
	}
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	h := NewRateLimiter(1, 2, nil).Handler(okHandler())

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/leaves", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		statuses = append(statuses, rr.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first requests should pass, got %v", statuses)
	}
	if statuses[3] != http.StatusTooManyRequests {
		t.Errorf("burst exceeded should return 429, got %v", statuses)
	}
}

func TestRateLimiterKeysByClient(t *testing.T) {
	h := NewRateLimiter(1, 1, nil).Handler(okHandler())

	for i, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("request %d from %s: status = %d, want 200", i, addr, rr.Code)
		}
	}
}

func TestBodyLimitRejectsOversizedBody(t *testing.T) {
	h := BodyLimit(16)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/leaves", strings.NewReader(strings.Repeat("x", 64)))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rr.Code)
	}
}

func TestTracingGeneratesTraceID(t *testing.T) {
	h := NewTracingMiddleware(nil).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get(TraceIDHeader) == "" {
		t.Error("trace ID should be generated when absent")
	}
}

func TestTracingPropagatesTraceID(t *testing.T) {
	h := NewTracingMiddleware(nil).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "trace-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get(TraceIDHeader); got != "trace-123" {
		t.Errorf("trace ID = %s, want trace-123", got)
	}
}
