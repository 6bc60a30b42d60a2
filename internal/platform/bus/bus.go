// Package bus implements a request/reply channel over Redis lists. A client
// pushes an envelope carrying an operation name and a JSON payload onto the
// service's request list; the serving process pops it, dispatches by
// operation, and pushes exactly one correlated reply onto a per-request
// reply list the client is blocked on. There is no client-side retry: a
// timed out or unreachable channel is reported to the caller as-is.
package bus

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when no reply arrives within the client timeout.
	ErrTimeout = errors.New("bus: call timed out")
	// ErrChannel is returned when the channel itself cannot be used.
	ErrChannel = errors.New("bus: channel failure")
)

// RemoteError carries a failure reported by the remote handler.
type RemoteError struct {
	Op      string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("bus: remote %s: %s", e.Op, e.Message)
}

// envelope is the wire form of a request.
type envelope struct {
	ID      string          `json:"id"`
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload"`
}

// reply is the wire form of a response.
type reply struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Err    string          `json:"err,omitempty"`
}

func requestKey(service string) string {
	return "bus:" + service + ":req"
}

func replyKey(service, id string) string {
	return "bus:" + service + ":rep:" + id
}
