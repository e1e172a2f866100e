package dossier

import "errors"

var (
	// ErrEmptyInput is returned when Assemble is called with nothing to analyze
	ErrEmptyInput = errors.New("empty input")
	// ErrNilFetcher is returned when the assembler is built without a page fetcher
	ErrNilFetcher = errors.New("nil page fetcher")
	// ErrNilDiscoverer is returned when the assembler is built without a link discoverer
	ErrNilDiscoverer = errors.New("nil link discoverer")
	// ErrNilRegistry is returned when the assembler is built without a registry client
	ErrNilRegistry = errors.New("nil registry client")
)
