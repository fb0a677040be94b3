package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/neomorfeo/tourify/internal/domain"
)

// Store implements domain.Store in process memory. Values never expire; the
// data lives as long as the process, like browser local storage lives with
// its tab.
type Store struct{ c *gocache.Cache }

// Compile-time check: Store implements domain.Store.
var _ domain.Store = (*Store)(nil)

func New() *Store {
	return &Store{c: gocache.New(gocache.NoExpiration, time.Minute)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, nil
	}
	b, _ := v.([]byte)
	return append([]byte(nil), b...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.c.Set(key, append([]byte(nil), value...), gocache.NoExpiration)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}
