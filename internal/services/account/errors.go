package account

import "errors"

// Sentinel errors returned by lifecycle operations. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrSecretExists is returned when a restore targets a serial that
	// already has a stored secret. Delete the account first to replace it.
	ErrSecretExists = errors.New("a secret already exists for this serial")

	// ErrNoDefaultSerial is returned when no serial was given and the store
	// has accounts but no default pointer.
	ErrNoDefaultSerial = errors.New("no default serial set")

	// ErrNoAuthenticators is returned when no serial was given and the
	// store is entirely empty.
	ErrNoAuthenticators = errors.New("no authenticators configured")
)
