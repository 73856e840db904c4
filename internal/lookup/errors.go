package lookup

import "fmt"

// TransportError covers connection failures, timeouts, and non-2xx statuses.
// Fatal for the current call; never retried.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend request %s: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError means the response body could not be decoded.
type MalformedResponseError struct {
	Path string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Path, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// BusinessError is a non-success envelope code from the backend. The message
// is whatever the backend put in msg.
type BusinessError struct {
	Path string
	Code int
	Msg  string
}

func (e *BusinessError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("backend error (code %d)", e.Code)
	}
	return fmt.Sprintf("backend error: %s", e.Msg)
}
