package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem/internal/game"
)

// ParseAction parses the player's typed action. Verbs follow the prompt:
// R(aise) <amount>, C(all), Ch(eck), A(ll in), F(old); full words work too
// and case doesn't matter. A raise amount is the new total bet for the
// stage.
func ParseAction(input string) (game.BetAction, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return game.BetAction{}, fmt.Errorf("enter an action")
	}

	verb := strings.ToLower(fields[0])
	switch verb {
	case "r", "raise":
		if len(fields) < 2 {
			return game.BetAction{}, fmt.Errorf("raise needs an amount, e.g. R 40")
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil || amount <= 0 {
			return game.BetAction{}, fmt.Errorf("invalid raise amount %q", fields[1])
		}
		return game.BetAction{Type: game.Raise, Amount: amount}, nil

	case "c", "call":
		return game.BetAction{Type: game.Call}, nil

	case "ch", "check":
		return game.BetAction{Type: game.Check}, nil

	case "a", "allin", "all-in":
		return game.BetAction{Type: game.AllIn}, nil

	case "f", "fold":
		return game.BetAction{Type: game.Fold}, nil

	default:
		return game.BetAction{}, fmt.Errorf("unknown action %q", fields[0])
	}
}
