package domain

import "context"

// AccountStore persists authenticator accounts and the default-serial pointer.
// Implementations must persist every mutation before returning.
type AccountStore interface {
	// Secret returns the secret for a normalized serial. The second return
	// is false when no account exists; absence is not an error.
	Secret(serial Serial) (Secret, bool)

	// SetSecret inserts or overwrites the account for serial and persists.
	SetSecret(serial Serial, secret Secret) error

	// DeleteAccount removes the account for serial and persists. When the
	// default pointer references serial it is cleared in the same write.
	DeleteAccount(serial Serial) error

	// DefaultSerial reports the default account, if one is set.
	DefaultSerial() (Serial, bool)

	// SetDefaultSerial points the default at an existing account and persists.
	SetDefaultSerial(serial Serial) error

	// Serials lists all stored serials in file order.
	Serials() []Serial
}

// TokenEngine produces one-time codes and talks to the enrollment service.
// It is stateless with respect to the store; all persistence goes through
// AccountStore.
type TokenEngine interface {
	// Token returns the current 8-digit code for secret and how many seconds
	// it remains valid.
	Token(secret Secret) (code int, remaining int, err error)

	// RequestNewSerial provisions a fresh authenticator from the region's
	// enrollment service.
	RequestNewSerial(ctx context.Context, region string) (Account, error)

	// Restore re-derives the secret for serial from its restore code via the
	// enrollment service.
	Restore(ctx context.Context, serial Serial, restoreCode string) (Secret, error)

	// RestoreCode derives the recovery string for an account.
	RestoreCode(serial Serial, secret Secret) string

	// OtpauthURL renders the account as a standard otpauth:// URL.
	OtpauthURL(serial Serial, secret Secret) (string, error)
}
