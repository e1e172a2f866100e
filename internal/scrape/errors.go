package scrape

import "errors"

var (
	// ErrFetchFailed is returned when a page could not be retrieved
	ErrFetchFailed = errors.New("page fetch failed")
	// ErrUnexpectedStatus is returned when a page responds with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected page status")
)
