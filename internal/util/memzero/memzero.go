package memzero

import "crypto/subtle"

// Zero overwrites b with zeros so key material does not linger in memory.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
