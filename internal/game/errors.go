package game

import (
	"errors"
	"fmt"
)

// ErrPotImbalance is returned when distribution would pay out a different
// total than was contributed. It indicates a logic defect, never a
// user-facing condition; the round must abort with a diagnostic rather than
// silently under- or over-pay.
var ErrPotImbalance = errors.New("pot distribution does not balance contributions")

// ErrTableFull is returned when a player joins a table at capacity.
var ErrTableFull = errors.New("table is full")

// ErrDuplicateName is returned when a joining player's name is already taken.
var ErrDuplicateName = errors.New("player name already taken")

// IllegalActionError rejects an action before any state mutation. The caller
// may re-prompt the actor or fold them out, per policy.
type IllegalActionError struct {
	Action BetAction
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %s: %s", e.Action, e.Reason)
}

func illegalActionf(action BetAction, format string, args ...any) error {
	return &IllegalActionError{Action: action, Reason: fmt.Sprintf(format, args...)}
}
