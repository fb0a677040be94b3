package fsm

import (
	"context"
	"errors"

	loopfsm "github.com/looplab/fsm"

	"github.com/neomorfeo/tourify/internal/domain"
)

// Compile-time check: Mover implements domain.StatusMover.
var _ domain.StatusMover = (*Mover)(nil)

// Mover implements domain.StatusMover using looplab/fsm.
//
// The board allows dragging a prospect into any column, so every status gets
// one event ("to:<status>") reachable from every other status. Statuses that
// are not on the board have no event and no source entry.
type Mover struct {
	events []loopfsm.EventDesc
}

// New creates a mover for the given board statuses.
func New(statuses []domain.Status) *Mover {
	src := make([]string, len(statuses))
	for i, s := range statuses {
		src[i] = string(s)
	}

	events := make([]loopfsm.EventDesc, 0, len(statuses))
	for _, s := range statuses {
		events = append(events, loopfsm.EventDesc{
			Name: eventName(s),
			Src:  src,
			Dst:  string(s),
		})
	}
	return &Mover{events: events}
}

func eventName(s domain.Status) string {
	return "to:" + string(s)
}

// Move returns target when the move is allowed. A move onto the current
// status returns it unchanged. It creates a short-lived FSM per call because
// looplab/fsm tracks the current state internally.
func (m *Mover) Move(ctx context.Context, current, target domain.Status) (domain.Status, error) {
	machine := loopfsm.NewFSM(string(current), m.events, nil)

	if err := machine.Event(ctx, eventName(target)); err != nil {
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &noTransition) {
			return current, nil
		}
		var invalidEvent loopfsm.InvalidEventError
		var unknownEvent loopfsm.UnknownEventError
		if errors.As(err, &invalidEvent) || errors.As(err, &unknownEvent) {
			return "", &domain.TransitionError{Current: current, Target: target}
		}
		return "", err
	}

	return domain.Status(machine.Current()), nil
}
