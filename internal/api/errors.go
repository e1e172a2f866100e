package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrInputRequired is returned when neither url nor text is provided
	ErrInputRequired = errors.New("url or text required")
	// ErrURLRequired is returned when no url is provided for technology detection
	ErrURLRequired = errors.New("url required")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
	// ErrAssemblerNotConfigured is returned when the dossier assembler is nil
	ErrAssemblerNotConfigured = errors.New("dossier assembly not configured")
	// ErrDetectorNotConfigured is returned when the technology detector is nil
	ErrDetectorNotConfigured = errors.New("technology detection not configured")
)
