package techstack

import "errors"

var (
	// ErrFetchFailed is returned when the fingerprinting fetch could not be completed
	ErrFetchFailed = errors.New("fingerprint fetch failed")
	// ErrTooManyRedirects is returned when the fetch exceeds the redirect limit
	ErrTooManyRedirects = errors.New("too many redirects")
)
