package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Serial is a normalized authenticator identifier: an upper-case region
// prefix followed by twelve digits, no separators (e.g. "US140212345678").
type Serial string

// NormalizeSerial canonicalizes raw user input into a Serial. Separators and
// surrounding whitespace are dropped and letters upper-cased. The function is
// idempotent: normalizing an already-normalized serial is a no-op.
func NormalizeSerial(raw string) Serial {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '\t':
			return -1
		}
		return r
	}, raw)
	return Serial(strings.ToUpper(cleaned))
}

// Pretty returns the display form of a serial, regrouped as
// "XX-NNNN-NNNN-NNNN". Serials of unexpected length are returned unchanged.
func (s Serial) Pretty() string {
	if len(s) != 14 {
		return string(s)
	}
	return fmt.Sprintf("%s-%s-%s-%s", s[:2], s[2:6], s[6:10], s[10:])
}

// Region returns the two-letter region prefix of the serial.
func (s Serial) Region() string {
	if len(s) < 2 {
		return ""
	}
	return string(s[:2])
}

// Secret is the raw key material for one authenticator. It is persisted on
// disk as a hexadecimal string.
type Secret []byte

// SecretFromHex decodes the persisted hex representation of a secret.
func SecretFromHex(h string) (Secret, error) {
	b, err := hex.DecodeString(h)
	if err != nil {
		return nil, fmt.Errorf("decode secret: %w", err)
	}
	return Secret(b), nil
}

// Hex returns the persisted representation of the secret.
func (s Secret) Hex() string { return hex.EncodeToString(s) }

// Account pairs one normalized serial with its secret.
type Account struct {
	Serial Serial
	Secret Secret
}
