package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	limited := 0
	rl.OnLimited = func() { limited++ }

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send("10.0.0.1:1111"); code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", code)
	}

	// Same host, different source port.
	if code := send("10.0.0.1:2222"); code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", code)
	}

	if code := send("10.0.0.2:1111"); code != http.StatusOK {
		t.Fatalf("expected other IP to pass, got %d", code)
	}

	if limited != 1 {
		t.Fatalf("expected one limited callback, got %d", limited)
	}
}

func TestRateLimiter_CleanupLimiters(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(time.Hour)
	rl.getLimiter("10.0.0.2")

	if removed := rl.CleanupLimiters(30 * time.Minute); removed != 1 {
		t.Fatalf("expected one idle visitor removed, got %d", removed)
	}

	if _, ok := rl.visitors["10.0.0.2"]; !ok {
		t.Fatalf("expected active visitor to be kept")
	}
}
