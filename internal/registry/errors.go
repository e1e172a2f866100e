package registry

import "errors"

var (
	// ErrEmptyIdentifier is returned when Lookup is called with an empty identifier
	ErrEmptyIdentifier = errors.New("empty identifier")
	// ErrRequestFailed is returned when the registry request could not be completed
	ErrRequestFailed = errors.New("registry request failed")
	// ErrUnexpectedStatus is returned when the registry responds with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected registry status")
)
