package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownMessageType is returned for a payload whose type field does
// not name a known message.
var ErrUnknownMessageType = errors.New("unknown message type")

// Marshal serializes a message to JSON. Only the known message structs
// are accepted; anything else is a programming error.
func Marshal(v interface{}) ([]byte, error) {
	switch v.(type) {
	case *Join, *Action, *Chat, *SitOut, *SitIn,
		*GameState, *ActionRequired, *HoleCards,
		*Showdown, *HandComplete, *Error:
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownMessageType, v)
	}
}

// Decode parses a payload by its type field and returns the concrete
// message struct.
func Decode(data []byte) (interface{}, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	var msg interface{}
	switch envelope.Type {
	case TypeJoin:
		msg = &Join{}
	case TypeAction:
		msg = &Action{}
	case TypeChat:
		msg = &Chat{}
	case TypeSitOut:
		msg = &SitOut{}
	case TypeSitIn:
		msg = &SitIn{}
	case TypeGameState:
		msg = &GameState{}
	case TypeActionRequired:
		msg = &ActionRequired{}
	case TypeHoleCards:
		msg = &HoleCards{}
	case TypeShowdown:
		msg = &Showdown{}
	case TypeHandComplete:
		msg = &HandComplete{}
	case TypeError:
		msg = &Error{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, envelope.Type)
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", envelope.Type, err)
	}
	return msg, nil
}
