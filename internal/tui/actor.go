package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
)

// InteractiveActor is the game.Actor half of the TUI: the engine blocks in
// PlaceBet while the player types their move into the running program.
type InteractiveActor struct {
	program *tea.Program
	logger  *log.Logger
}

// NewProgram builds the table view for the named player and the actor that
// drives it. The caller runs the returned program on its own goroutine.
func NewProgram(name string, logger *log.Logger) (*tea.Program, *InteractiveActor) {
	model := NewModel(name, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	return program, &InteractiveActor{program: program, logger: logger.WithPrefix("tui")}
}

// PlaceBet implements game.Actor.
func (a *InteractiveActor) PlaceBet(ctx context.Context, req game.BetRequest) (game.BetAction, error) {
	reply := make(chan game.BetAction, 1)
	a.program.Send(promptMsg{req: req, reply: reply})

	select {
	case action := <-reply:
		return action, nil
	case <-ctx.Done():
		return game.BetAction{}, ctx.Err()
	}
}

// Update implements game.Actor.
func (a *InteractiveActor) Update(ev game.Event) {
	a.program.Send(eventMsg{ev: ev})
}
