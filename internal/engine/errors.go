package engine

import "errors"

// Sentinel errors returned by the token engine. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNetwork is returned when the enrollment service cannot be reached
	// or answers with an unexpected status or payload.
	ErrNetwork = errors.New("enrollment service request failed")

	// ErrRestore is returned when a restore attempt fails: malformed restore
	// code, rejected proof, or an unusable server response.
	ErrRestore = errors.New("restore failed")
)
