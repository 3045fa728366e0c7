package server

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/protocol"
)

// sender is the slice of Conn the actor needs; tests substitute a fake.
type sender interface {
	Send(data []byte) error
}

// RemoteActor proxies one seat's decisions over a connection. Bet requests
// go out as action_request messages and block until the client answers, the
// action timeout fires, or the connection dies; the latter two resolve to a
// fold so a stalled client can't wedge the table.
type RemoteActor struct {
	name      string
	conn      sender
	logger    *log.Logger
	timeout   time.Duration
	clock     quartz.Clock
	decisions chan game.BetAction
}

// NewRemoteActor creates the actor for a connected player. A zero timeout
// waits indefinitely.
func NewRemoteActor(name string, conn sender, logger *log.Logger, timeout time.Duration, clock quartz.Clock) *RemoteActor {
	return &RemoteActor{
		name:      name,
		conn:      conn,
		logger:    logger.WithPrefix("remote").With("player", name),
		timeout:   timeout,
		clock:     clock,
		decisions: make(chan game.BetAction, 1),
	}
}

// PlaceBet implements game.Actor.
func (ra *RemoteActor) PlaceBet(ctx context.Context, req game.BetRequest) (game.BetAction, error) {
	// Drop any answer left over from a previous prompt.
	select {
	case <-ra.decisions:
	default:
	}

	data, err := protocol.Marshal(protocol.NewActionRequest(req))
	if err != nil {
		return game.BetAction{}, err
	}
	if err := ra.conn.Send(data); err != nil {
		return game.BetAction{}, fmt.Errorf("sending action request: %w", err)
	}

	var timedOut <-chan struct{}
	if ra.timeout > 0 {
		fired := make(chan struct{})
		timer := ra.clock.AfterFunc(ra.timeout, func() { close(fired) })
		defer timer.Stop()
		timedOut = fired
	}

	select {
	case action := <-ra.decisions:
		ra.logger.Debug("decision received", "action", action)
		return action, nil

	case <-timedOut:
		ra.logger.Warn("decision timeout, folding", "timeout", ra.timeout)
		return game.BetAction{Type: game.Fold}, nil

	case <-ctx.Done():
		return game.BetAction{}, ctx.Err()
	}
}

// HandleAction feeds a client's answer to the pending bet request. Answers
// arriving when no request is pending are dropped.
func (ra *RemoteActor) HandleAction(msg *protocol.Action) error {
	action, err := msg.BetAction()
	if err != nil {
		return err
	}

	select {
	case ra.decisions <- action:
		return nil
	default:
		ra.logger.Debug("unsolicited action dropped", "action", msg.Action)
		return nil
	}
}

// Update implements game.Actor by forwarding events to the client. Delivery
// is best-effort; a dead connection surfaces at the next bet request.
func (ra *RemoteActor) Update(ev game.Event) {
	msg, err := protocol.FromEvent(ev)
	if err != nil {
		ra.logger.Error("unencodable event", "error", err)
		return
	}
	data, err := protocol.Marshal(msg)
	if err != nil {
		ra.logger.Error("marshalling event", "error", err)
		return
	}
	if err := ra.conn.Send(data); err != nil {
		ra.logger.Debug("event dropped", "error", err)
	}
}
