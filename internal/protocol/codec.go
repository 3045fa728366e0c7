package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownMessageType is returned when a message's type discriminator
// doesn't match any known message.
var ErrUnknownMessageType = errors.New("unknown message type")

// Marshal serializes a message to its JSON wire form.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode parses a wire message into its concrete type, dispatching on the
// "type" discriminator.
func Decode(data []byte) (any, error) {
	var head struct {
		Type MessageType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decoding message header: %w", err)
	}

	var msg any
	switch head.Type {
	case TypeJoin:
		msg = &Join{}
	case TypeAction:
		msg = &Action{}
	case TypeActionRequest:
		msg = &ActionRequest{}
	case TypePlayerJoined:
		msg = &PlayerJoined{}
	case TypeRoundStart:
		msg = &RoundStart{}
	case TypeHoleCards:
		msg = &HoleCards{}
	case TypeStageChange:
		msg = &StageChange{}
	case TypeBetPlaced:
		msg = &BetPlaced{}
	case TypeRoundResult:
		msg = &RoundResult{}
	case TypePlayerEliminated:
		msg = &PlayerEliminated{}
	case TypeGameWinner:
		msg = &GameWinner{}
	case TypeError:
		msg = &Error{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, head.Type)
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", head.Type, err)
	}
	return msg, nil
}
