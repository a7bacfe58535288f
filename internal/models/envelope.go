package models

import (
	"encoding/json"
)

// Envelope is the result of one tool invocation: either the upstream JSON
// payload passed through unmodified, or a Failure.
type Envelope struct {
	Payload json.RawMessage
	Failure *Failure
}

// Failure is the error half of an Envelope. It serializes as
// {"error": "...", "status": n}.
type Failure struct {
	Message string `json:"error"`
	Status  int    `json:"status"`
}

// Success wraps an upstream payload.
func Success(payload json.RawMessage) Envelope {
	return Envelope{Payload: payload}
}

// Fail builds a Failure envelope.
func Fail(message string, status int) Envelope {
	return Envelope{Failure: &Failure{Message: message, Status: status}}
}

// OK reports whether the envelope carries a payload.
func (e Envelope) OK() bool { return e.Failure == nil }

// Status is the failure status, or 200 on success.
func (e Envelope) Status() int {
	if e.Failure == nil {
		return 200
	}
	return e.Failure.Status
}

// Text renders the envelope as the text content returned to callers.
func (e Envelope) Text() string {
	if e.Failure != nil {
		b, err := json.Marshal(e.Failure)
		if err != nil {
			return `{"error":"failed to encode error","status":500}`
		}
		return string(b)
	}
	if len(e.Payload) == 0 {
		return "null"
	}
	return string(e.Payload)
}

// MarshalJSON encodes the payload verbatim on success and the Failure
// otherwise.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return []byte(e.Text()), nil
}
