package source

import "errors"

var (
	// ErrSourceUnavailable is returned when the remote store cannot be
	// reached or queried. The pipeline surfaces it as a hard stop and does
	// not retry.
	ErrSourceUnavailable = errors.New("record source unavailable")

	// ErrEmptyResult is returned when the backend is reachable but holds
	// zero records.
	ErrEmptyResult = errors.New("record source returned no rows")

	// ErrFileNotFound is returned when the flat-file path does not exist.
	ErrFileNotFound = errors.New("data file not found")
)
