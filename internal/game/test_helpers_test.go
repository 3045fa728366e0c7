package game

import (
	"context"
	"errors"
)

// scriptedActor replays a fixed sequence of actions, then checks/calls.
type scriptedActor struct {
	script []BetAction
	next   int
	events []Event
}

func script(actions ...BetAction) *scriptedActor {
	return &scriptedActor{script: actions}
}

func (a *scriptedActor) PlaceBet(_ context.Context, req BetRequest) (BetAction, error) {
	if a.next < len(a.script) {
		action := a.script[a.next]
		a.next++
		return action, nil
	}
	if req.Call == 0 {
		return BetAction{Type: Check}, nil
	}
	return BetAction{Type: Call}, nil
}

func (a *scriptedActor) Update(ev Event) {
	a.events = append(a.events, ev)
}

// failingActor errors on every bet request, as a disconnected remote would.
type failingActor struct{}

func (failingActor) PlaceBet(context.Context, BetRequest) (BetAction, error) {
	return BetAction{}, errors.New("actor unavailable")
}

func (failingActor) Update(Event) {}

// callingActor always checks or calls.
type callingActor struct{}

func (callingActor) PlaceBet(_ context.Context, req BetRequest) (BetAction, error) {
	if req.Call == 0 {
		return BetAction{Type: Check}, nil
	}
	return BetAction{Type: Call}, nil
}

func (callingActor) Update(Event) {}

func fold() BetAction          { return BetAction{Type: Fold} }
func check() BetAction         { return BetAction{Type: Check} }
func call() BetAction          { return BetAction{Type: Call} }
func raiseTo(n int) BetAction  { return BetAction{Type: Raise, Amount: n} }
func allIn() BetAction         { return BetAction{Type: AllIn} }
