package main

import (
	"errors"

	"radiru/internal/radiru"
	"radiru/internal/recorder"
)

// Process exit codes, one per failure class so scripts can tell them apart.
const (
	exitOK        = 0
	exitError     = 1
	exitUsage     = 2
	exitNetwork   = 3
	exitCache     = 4
	exitMalformed = 5
	exitNoRecord  = 6
	exitNoStream  = 7
	exitRecording = 8
)

// usageError marks bad command-line input.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ue),
		errors.Is(err, radiru.ErrUnknownLocation),
		errors.Is(err, radiru.ErrUnknownChannel):
		return exitUsage
	case errors.Is(err, radiru.ErrNetwork):
		return exitNetwork
	case errors.Is(err, radiru.ErrCacheWrite), errors.Is(err, radiru.ErrCacheRead):
		return exitCache
	case errors.Is(err, radiru.ErrMalformedDocument):
		return exitMalformed
	case errors.Is(err, radiru.ErrDocumentExhausted):
		return exitNoRecord
	case errors.Is(err, radiru.ErrEmptyEndpoint):
		return exitNoStream
	case errors.Is(err, recorder.ErrTimeout), errors.Is(err, recorder.ErrRecording):
		return exitRecording
	default:
		return exitError
	}
}
