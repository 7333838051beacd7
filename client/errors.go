package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAborted is returned when a call's ctx is already canceled before
// dispatch, or is canceled mid-flight.
var ErrAborted = errors.New("tango: call aborted")

// TransportError is the client-side failure carrying enough context for a
// caller to branch on status (notably 422 validation issues).
type TransportError struct {
	Status   int
	Response *http.Response
	Data     any
	Message  string
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("tango: server error: %d %s", e.Status, http.StatusText(e.Status))
}

func newServerError(resp *http.Response, data any) *TransportError {
	return &TransportError{Status: resp.StatusCode, Response: resp, Data: data}
}
