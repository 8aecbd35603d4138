package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	apperrors "github.com/tiny-panda1966/supportdesk/internal/core/errors"
)

// envelope is the discriminator every host frame carries next to its
// payload fields.
type envelope struct {
	Action domain.Action `json:"action"`
}

// DecodeInbound parses one host frame. Frames that are not a JSON object
// with a string action fail with ErrMalformedEnvelope. Unknown actions
// decode to *domain.Ignored.
func DecodeInbound(data []byte) (domain.Inbound, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedEnvelope, err)
	}
	if env.Action == "" {
		return nil, fmt.Errorf("%w: missing action", apperrors.ErrMalformedEnvelope)
	}

	msg, ok := domain.NewInbound(env.Action)
	if !ok {
		return &domain.Ignored{Name: string(env.Action)}, nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrMalformedEnvelope, env.Action, err)
	}
	return msg, nil
}

// EncodeOutbound renders msg as a flat envelope: the payload fields with
// the action name beside them.
func EncodeOutbound(msg domain.Outbound) ([]byte, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}

	action, err := json.Marshal(msg.Action())
	if err != nil {
		return nil, err
	}
	fields["action"] = action

	return json.Marshal(fields)
}
