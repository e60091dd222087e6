package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func TestLoggingMiddleware_AttachesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	mw := NewLoggingMiddleware(zerolog.New(&buf))

	handler := chimiddleware.RequestID(mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Warn().Msg("from handler")
		w.WriteHeader(http.StatusBadGateway)
	})))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected two log lines, got %q", buf.String())
	}

	var first, access map[string]any
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatalf("decode handler line: %v", err)
	}
	if err := json.Unmarshal(lines[1], &access); err != nil {
		t.Fatalf("decode access line: %v", err)
	}

	if first["request_id"] == "" || first["request_id"] != access["request_id"] {
		t.Fatalf("expected shared request id, got %v and %v", first["request_id"], access["request_id"])
	}

	if access["level"] != "error" || access["status"] != float64(http.StatusBadGateway) {
		t.Fatalf("unexpected access line %v", access)
	}
}

func TestRecovery_ReturnsInternalServerError(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	if rr.Body.String() != `{"error":"internal server error"}` {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	handler := NewCORS([]string{"https://office.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/api/receipts", nil)
	req.Header.Set("Origin", "https://office.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://office.example" {
		t.Fatalf("expected origin to be allowed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/receipts", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected foreign origin to be refused, got %q", got)
	}
}
