package payment

import (
	"encoding/json"
	"errors"
)

var ErrMalformedEvent = errors.New("malformed payment event payload")

// AuthorizationStatus is the gateway-side state of a payment authorization.
// The service never persists it, only the identifier and what the last event
// implied.
type AuthorizationStatus string

const (
	StatusRequiresAction AuthorizationStatus = "requires_action"
	StatusProcessing     AuthorizationStatus = "processing"
	StatusSucceeded      AuthorizationStatus = "succeeded"
	StatusFailed         AuthorizationStatus = "failed"
)

// Event is the closed set of inbound gateway events. Decoding happens once at
// the boundary so the processor can switch exhaustively instead of inspecting
// a dynamic payload.
type Event interface {
	isEvent()
}

type AuthorizationSucceeded struct {
	EventID         string
	AuthorizationID string
}

type AuthorizationFailed struct {
	EventID         string
	AuthorizationID string
	Reason          string
}

// Unknown covers every event kind this service does not handle. The gateway
// delivers a superset of kinds; unknown ones are acknowledged and dropped.
type Unknown struct {
	EventID string
	Kind    string
}

func (AuthorizationSucceeded) isEvent() {}
func (AuthorizationFailed) isEvent()    {}
func (Unknown) isEvent()                {}

const (
	kindAuthorizationSucceeded = "authorization.succeeded"
	kindAuthorizationFailed    = "authorization.failed"
)

type wireEvent struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Data struct {
		AuthorizationID string `json:"authorization_id"`
		FailureReason   string `json:"failure_reason"`
	} `json:"data"`
}

// DecodeEvent parses a raw webhook body into the event union. Payloads that
// are not JSON objects or carry no kind are rejected; kinds outside the
// handled set decode to Unknown.
func DecodeEvent(body []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, ErrMalformedEvent
	}
	if w.Kind == "" {
		return nil, ErrMalformedEvent
	}

	switch w.Kind {
	case kindAuthorizationSucceeded:
		if w.Data.AuthorizationID == "" {
			return nil, ErrMalformedEvent
		}
		return AuthorizationSucceeded{EventID: w.ID, AuthorizationID: w.Data.AuthorizationID}, nil
	case kindAuthorizationFailed:
		if w.Data.AuthorizationID == "" {
			return nil, ErrMalformedEvent
		}
		return AuthorizationFailed{EventID: w.ID, AuthorizationID: w.Data.AuthorizationID, Reason: w.Data.FailureReason}, nil
	default:
		return Unknown{EventID: w.ID, Kind: w.Kind}, nil
	}
}
