// Package bot provides algorithmic actors that can fill seats at a table.
// Every bot decides synchronously from the bet request alone, so games made
// entirely of bots run as fast as the engine can deal.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
)

// ByName constructs a bot by its strategy name, as used in server
// configuration and on the command line.
func ByName(name string, rng *rand.Rand, logger *log.Logger) (game.Actor, error) {
	switch name {
	case "caller":
		return NewCaller(logger), nil
	case "modest":
		return NewModest(logger), nil
	case "sixmax":
		return NewSixMax(logger), nil
	case "random":
		return NewRandom(rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown bot strategy %q", name)
	}
}

// Strategies lists the available strategy names.
func Strategies() []string {
	return []string{"caller", "modest", "sixmax", "random"}
}

// quiet provides the no-op event half of game.Actor; bots decide from the
// bet request alone and don't track table history.
type quiet struct{}

func (quiet) Update(game.Event) {}
