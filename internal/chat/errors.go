package chat

import "errors"

var (
	// ErrEmptyMessage is returned when a send is requested with nothing
	// but whitespace. Callers treat it as a no-op, not a failure.
	ErrEmptyMessage = errors.New("empty message")

	// ErrSendInFlight is returned when a send is requested while another
	// one is still pending. Sends are never queued.
	ErrSendInFlight = errors.New("send already in flight")
)
