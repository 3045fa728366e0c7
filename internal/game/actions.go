package game

import "fmt"

// Stage represents the betting stage of a round
type Stage int

const (
	PreFlop Stage = iota
	Flop
	Turn
	River
	Showdown
)

func (s Stage) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// ParseStage parses the wire form of a stage name.
func ParseStage(s string) (Stage, error) {
	for st := PreFlop; st <= Showdown; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return PreFlop, fmt.Errorf("invalid stage %q", s)
}

// ActionType represents a kind of player action
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Raise
	AllIn
)

func (a ActionType) String() string {
	return [...]string{"fold", "check", "call", "raise", "allin"}[a]
}

// ParseActionType parses the wire form of an action type.
func ParseActionType(s string) (ActionType, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	case "allin":
		return AllIn, nil
	default:
		return Fold, fmt.Errorf("invalid action %q", s)
	}
}

// BetAction is a player's decision for one turn. For Raise, Amount is the new
// total bet level for the stage; for every other action the engine computes
// the chips moved itself.
type BetAction struct {
	Type   ActionType
	Amount int
}

func (a BetAction) String() string {
	if a.Type == Raise || a.Type == AllIn {
		return fmt.Sprintf("%s %d", a.Type, a.Amount)
	}
	return a.Type.String()
}
