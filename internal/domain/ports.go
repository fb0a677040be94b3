package domain

import "context"

// Store is the persistence gateway: a key to serialized-collection store.
// Get returns nil and no error for a key that was never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Well-known store keys.
const (
	KeyProspects    = "prospects"
	KeyTransactions = "transactions"
	KeyTours        = "tours"
	KeyCurrentUser  = "currentUser"
)

// Action names a completed repository write.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ChangeEvent describes a completed write on one entity collection.
type ChangeEvent struct {
	Kind   string
	Action Action
	ID     string
}

// EventPublisher defines the contract for emitting change events.
type EventPublisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}

// StatusMover decides whether a prospect may move from one status to another
// and returns the resulting status.
type StatusMover interface {
	Move(ctx context.Context, current, target Status) (Status, error)
}
