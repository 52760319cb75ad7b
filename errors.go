package gareporter

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means a hit was dropped because Configure has not been called.
	ErrNotConfigured = errors.New("tracker ID is not set; call Configure with a UA-XXXXX-XX tracker ID")
	// ErrOptedOut means a hit was dropped because the user opted out of analytics.
	ErrOptedOut = errors.New("user opted out from analytics")
)

// EncodingErrorKind classifies an EncodingError.
type EncodingErrorKind string

// InvalidURL means the encoded hit could not be resolved to an absolute URL.
const InvalidURL EncodingErrorKind = "invalid URL"

// EncodingError is returned when a parameter set cannot be turned into a request URL.
type EncodingError struct {
	Kind EncodingErrorKind
	Path string
	Base string
	Err  error
}

func (e *EncodingError) Error() string {
	msg := fmt.Sprintf("%s: could not resolve %q relative to %q", e.Kind, e.Path, e.Base)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EncodingError) Unwrap() error { return e.Err }

// PersistenceError is reported when the anonymous client ID could not be saved. The
// identifier is still used for the rest of the process but will not survive a restart.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s: %s", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
