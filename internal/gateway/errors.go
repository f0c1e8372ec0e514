package gateway

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks a 401 from the service. By the time a caller sees
// it the stored credential has already been cleared; what to do next
// (prompt for login) is the caller's decision.
var ErrUnauthorized = errors.New("unauthorized")

// RemoteError wraps any failed gateway call: transport errors, non-2xx
// statuses, timeouts. Status is 0 when no response was received.
type RemoteError struct {
	Op     string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
