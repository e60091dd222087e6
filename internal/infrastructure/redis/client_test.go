package redis

import (
	"context"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClient_SelectsDatabaseFromURL(t *testing.T) {
	s := miniredis.RunT(t)

	ctx := context.Background()
	client, err := NewClient(ctx, "redis://"+s.Addr()+"/2")
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	if db := client.Options().DB; db != 2 {
		t.Fatalf("expected database 2, got %d", db)
	}

	if err := client.Set(ctx, "clearledger:cache:stats:v1:0", "1", 0).Err(); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	s.Select(2)
	if !s.Exists("clearledger:cache:stats:v1:0") {
		t.Fatal("expected key in database 2")
	}
}

func TestNewClient_Errors(t *testing.T) {
	down := miniredis.RunT(t)
	downURL := "redis://" + down.Addr()
	down.Close()

	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"not a url", "://bad-url", "parse redis URL"},
		{"wrong scheme", "http://localhost:6379", "parse redis URL"},
		{"server down", downURL, "ping redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(context.Background(), tt.url)
			if err == nil {
				client.Close()
				t.Fatalf("expected error for %s", tt.url)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected %q in error, got %v", tt.wantErr, err)
			}
		})
	}
}
