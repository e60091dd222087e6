package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iho/clearledger/internal/adapter/http/dto"
)

func newTestClient(url string) *Client {
	return New(url, WithRetry(time.Millisecond, 200*time.Millisecond))
}

func TestClient_Statement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/clients/CL-1/account" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(dto.StatementResponse{Balance: "100.00"})
	}))
	defer srv.Close()

	s, err := newTestClient(srv.URL+"/").Statement(context.Background(), "CL-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Balance != "100.00" {
		t.Fatalf("unexpected balance %s", s.Balance)
	}
}

func TestClient_ListClients_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "noor" {
			t.Errorf("expected q=noor, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(dto.ListClientsResponse{Clients: []*dto.ClientResponse{{ID: "CL-1"}}})
	}))
	defer srv.Close()

	list, err := newTestClient(srv.URL).ListClients(context.Background(), "noor", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(list.Clients) != 1 {
		t.Fatalf("expected one client, got %d", len(list.Clients))
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(dto.StatsResponse{ClientsCount: 2})
	}))
	defer srv.Close()

	stats, err := newTestClient(srv.URL).Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.ClientsCount != 2 || calls.Load() != 3 {
		t.Fatalf("unexpected result %+v after %d calls", stats, calls.Load())
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "client not found"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Statement(context.Background(), "missing")

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "client not found" {
		t.Fatalf("expected 404 APIError, got %v", err)
	}

	if calls.Load() != 1 {
		t.Fatalf("expected a single call, got %d", calls.Load())
	}
}

func TestClient_NoRetryBudget(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithRetry(0, 0)).Reconciliation(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	if calls.Load() != 1 {
		t.Fatalf("expected a single call, got %d", calls.Load())
	}
}
