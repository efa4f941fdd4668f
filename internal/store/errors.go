package store

import "errors"

// Sentinel errors returned by the config store. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrConfigParse is returned when the config file exists but cannot be
	// parsed, or when a stored secret is not a valid hex string.
	ErrConfigParse = errors.New("malformed config file")

	// ErrWrite is returned when the config file cannot be written back to
	// disk (permissions, missing directory, disk full).
	ErrWrite = errors.New("cannot write config file")

	// ErrNoSuchSerial is returned when an operation targets a serial that
	// has no stored account.
	ErrNoSuchSerial = errors.New("no such serial")
)
