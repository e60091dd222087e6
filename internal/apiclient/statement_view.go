package apiclient

import (
	"context"
	"errors"
	"sync"

	"github.com/iho/clearledger/internal/adapter/http/dto"
)

// ErrStale is returned by StatementView.Refresh when a newer refresh for
// the same client was issued while this one was in flight.
var ErrStale = errors.New("statement superseded by a newer request")

// StatementFetcher loads a statement.
type StatementFetcher interface {
	Statement(ctx context.Context, clientID string) (*dto.StatementResponse, error)
}

// StatementView keeps the latest statement per client. Only the response of
// the most recently issued request for a client is accepted.
type StatementView struct {
	fetcher StatementFetcher

	mu      sync.Mutex
	seq     map[string]uint64
	current map[string]*dto.StatementResponse
}

// NewStatementView creates a view backed by fetcher.
func NewStatementView(fetcher StatementFetcher) *StatementView {
	return &StatementView{
		fetcher: fetcher,
		seq:     make(map[string]uint64),
		current: make(map[string]*dto.StatementResponse),
	}
}

// Refresh fetches the statement of clientID. It returns ErrStale if another
// Refresh for the same client started after this one.
func (v *StatementView) Refresh(ctx context.Context, clientID string) (*dto.StatementResponse, error) {
	v.mu.Lock()
	v.seq[clientID]++
	issued := v.seq[clientID]
	v.mu.Unlock()

	statement, err := v.fetcher.Statement(ctx, clientID)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.seq[clientID] != issued {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}

	v.current[clientID] = statement
	return statement, nil
}

// Current returns the last accepted statement of clientID.
func (v *StatementView) Current(clientID string) (*dto.StatementResponse, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	s, ok := v.current[clientID]
	return s, ok
}
