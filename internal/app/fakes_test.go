package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/neomorfeo/tourify/internal/domain"
)

var errStoreDown = errors.New("store down")

// --- Fakes ---

type fakeStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	failGet bool
	failSet bool
	sets    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return nil, errStoreDown
	}
	return s.data[key], nil
}

func (s *fakeStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errStoreDown
	}
	s.sets++
	s.data[key] = value
	return nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errStoreDown
	}
	delete(s.data, key)
	return nil
}

type fakePublisher struct {
	events []domain.ChangeEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e domain.ChangeEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
