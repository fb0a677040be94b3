package app

import (
	"context"

	"github.com/neomorfeo/tourify/internal/domain"
)

// Pipeline moves prospects between sales stages.
type Pipeline struct {
	prospects *Repository[domain.Prospect]
	mover     domain.StatusMover
}

// NewPipeline creates a pipeline over the prospect repository.
func NewPipeline(prospects *Repository[domain.Prospect], mover domain.StatusMover) *Pipeline {
	return &Pipeline{prospects: prospects, mover: mover}
}

// Move sets the status of a prospect after checking the move is allowed.
// Moving a prospect to the status it already has writes nothing.
func (p *Pipeline) Move(ctx context.Context, id string, target domain.Status) error {
	current, err := p.prospects.Get(ctx, id)
	if err != nil {
		return err
	}

	next, err := p.mover.Move(ctx, current.Status, target)
	if err != nil {
		return err
	}
	if next == current.Status {
		return nil
	}

	current.Status = next
	p.prospects.Update(ctx, id, current)
	return nil
}
