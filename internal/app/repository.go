package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/neomorfeo/tourify/internal/domain"
)

// Repository owns the canonical in-memory snapshot of one entity kind.
//
// Writes go straight to the store and never patch the snapshot; callers
// observe a write by calling List, which re-reads the whole collection.
// Concurrent writes are not serialized: the last one to reach the store wins.
type Repository[T domain.Entity[T]] struct {
	kind      string
	store     domain.Store
	publisher domain.EventPublisher
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.RWMutex
	snapshot []T
}

// Option configures a Repository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewRepository creates a repository for the collection stored under key.
func NewRepository[T domain.Entity[T]](key string, store domain.Store, publisher domain.EventPublisher, logger *slog.Logger, opts ...Option) *Repository[T] {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	return &Repository[T]{
		kind:      key,
		store:     store,
		publisher: publisher,
		logger:    logger.With("kind", key),
		now:       o.now,
		snapshot:  []T{},
	}
}

// List re-reads the collection, replaces the snapshot and returns a copy of
// it. A storage failure is logged and yields an empty collection.
func (r *Repository[T]) List(ctx context.Context) []T {
	items, err := r.load(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "listing collection", "error", err)
		items = []T{}
	}

	r.mu.Lock()
	r.snapshot = items
	r.mu.Unlock()

	return slices.Clone(items)
}

// Snapshot returns a copy of the last listed collection without touching the store.
func (r *Repository[T]) Snapshot() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.snapshot)
}

// Get reads the record with the given id straight from the store. Unlike
// List it reports storage failures and leaves the snapshot alone.
func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := r.load(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "reading record", "id", id, "error", err)
		return zero, err
	}
	i := slices.IndexFunc(items, func(item T) bool { return item.Identity() == id })
	if i < 0 {
		return zero, domain.ErrNotFound
	}
	return items[i], nil
}

// Create stamps draft with a fresh id and creation time and appends it to
// the stored collection. Any id or creation time on draft is discarded.
func (r *Repository[T]) Create(ctx context.Context, draft T) error {
	id, err := generateID()
	if err != nil {
		return fmt.Errorf("generating %s id: %w", r.kind, err)
	}
	record := draft.WithIdentity(id, r.now())

	err = r.modify(ctx, func(items []T) ([]T, bool) {
		return append(items, record), true
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "creating record", "error", err)
		return err
	}

	r.publish(ctx, domain.ActionCreated, id)
	return nil
}

// Update replaces the mutable fields of the record with the given id. The
// stored id and creation time always win over the ones in patch. An unknown
// id is a no-op. A storage failure is logged and leaves the stored
// collection as it was; callers see it on their next List.
func (r *Repository[T]) Update(ctx context.Context, id string, patch T) {
	found := false
	err := r.modify(ctx, func(items []T) ([]T, bool) {
		i := slices.IndexFunc(items, func(item T) bool { return item.Identity() == id })
		if i < 0 {
			return items, false
		}
		found = true
		items[i] = patch.WithIdentity(items[i].Identity(), items[i].Created())
		return items, true
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "updating record", "id", id, "error", err)
		return
	}

	if !found {
		r.logger.WarnContext(ctx, "update of unknown record ignored", "id", id)
		return
	}

	r.publish(ctx, domain.ActionUpdated, id)
}

// Delete removes the record with the given id. Deleting an unknown id is not
// an error.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	removed := false
	err := r.modify(ctx, func(items []T) ([]T, bool) {
		kept := slices.DeleteFunc(items, func(item T) bool { return item.Identity() == id })
		removed = len(kept) != len(items)
		return kept, removed
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "deleting record", "id", id, "error", err)
		return err
	}

	if removed {
		r.publish(ctx, domain.ActionDeleted, id)
	}
	return nil
}

// modify is the read-modify-write helper behind every write. fn reports
// whether the collection changed; unchanged collections are not written back.
func (r *Repository[T]) modify(ctx context.Context, fn func([]T) ([]T, bool)) error {
	items, err := r.load(ctx)
	if err != nil {
		return err
	}

	items, changed := fn(items)
	if !changed {
		return nil
	}
	return r.save(ctx, items)
}

func (r *Repository[T]) load(ctx context.Context) ([]T, error) {
	raw, err := r.store.Get(ctx, r.kind)
	if err != nil {
		return nil, &domain.StorageUnavailableError{Op: "get", Key: r.kind, Err: err}
	}
	if len(raw) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &domain.StorageUnavailableError{Op: "decode", Key: r.kind, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Repository[T]) save(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", r.kind, err)
	}
	if err := r.store.Set(ctx, r.kind, raw); err != nil {
		return &domain.StorageUnavailableError{Op: "set", Key: r.kind, Err: err}
	}
	return nil
}

func (r *Repository[T]) publish(ctx context.Context, action domain.Action, id string) {
	if r.publisher == nil {
		return
	}
	event := domain.ChangeEvent{Kind: r.kind, Action: action, ID: id}
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.logger.WarnContext(ctx, "publishing change event", "action", action, "id", id, "error", err)
	}
}
