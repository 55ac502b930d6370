package inference

import (
	"encoding/json"
	"fmt"
)

// The client reports three distinct failure kinds so callers can separate
// a failed request from a remote-reported error and from a response the
// client does not understand.

// TransportError wraps a network, timeout or request-construction failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("inference: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ModelError carries an error message reported by the remote endpoint
// itself, e.g. a model that is still loading or an invalid input.
type ModelError struct {
	Message string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("inference: model error: %s", e.Message)
}

// UnexpectedResponseError is returned when the response body matches
// neither the success shape nor the error shape. Raw keeps the payload
// for logging.
type UnexpectedResponseError struct {
	Raw json.RawMessage
}

func (e *UnexpectedResponseError) Error() string {
	return "inference: unexpected response format"
}
