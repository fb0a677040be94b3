package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/tourify/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// ChangeJobArgs carries a completed repository write into the job queue.
// River serializes this as JSON into its job queue table.
type ChangeJobArgs struct {
	Collection string `json:"kind"`
	Action     string `json:"action"`
	ID         string `json:"id"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (ChangeJobArgs) Kind() string { return "record.changed" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a change event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.ChangeEvent) error {
	_, err := p.client.Insert(ctx, ChangeJobArgs{
		Collection: event.Kind,
		Action:     string(event.Action),
		ID:         event.ID,
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing change job: %w", err)
	}
	return nil
}
