package engine

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"fmt"
	"strings"

	"bna/internal/domain"
	"bna/internal/util/memzero"
)

const (
	restoreCodeLength   = 10
	restoreChallengeLen = 32
)

// RestoreCode implements domain.TokenEngine. The code is the last ten bytes
// of SHA1(serial ‖ secret), each byte's low five bits mapped to a
// base32-style alphabet that skips the ambiguous letters I, L, O and S.
func (e *Engine) RestoreCode(serial domain.Serial, secret domain.Secret) string {
	msg := make([]byte, 0, len(serial)+len(secret))
	msg = append(msg, serial...)
	msg = append(msg, secret...)
	sum := sha1.Sum(msg)

	tail := sum[len(sum)-restoreCodeLength:]
	code := make([]byte, restoreCodeLength)
	for i, b := range tail {
		code[i] = encodeRestoreByte(b)
	}
	return string(code)
}

// Restore implements domain.TokenEngine. It proves knowledge of the restore
// code to the enrollment service and unwraps the returned secret.
func (e *Engine) Restore(ctx context.Context, serial domain.Serial, restoreCode string) (domain.Secret, error) {
	key, err := decodeRestoreCode(restoreCode)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	base := e.mobileServiceURL(serial.Region())
	challenge, err := e.post(ctx, base+initiateRestorePath, []byte(serial))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if len(challenge) != restoreChallengeLen {
		return nil, fmt.Errorf("%w: unexpected challenge length %d", ErrRestore, len(challenge))
	}

	mac := hmac.New(sha1.New, key)
	mac.Write([]byte(serial))
	mac.Write(challenge)
	proof := mac.Sum(nil)

	pad := make([]byte, secretLength)
	if _, err := rand.Read(pad); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRestore, err)
	}
	defer memzero.Zero(pad)

	payload := make([]byte, 0, len(proof)+len(pad))
	payload = append(payload, proof...)
	payload = append(payload, pad...)

	body := append([]byte(serial), rsaEncrypt(payload)...)
	resp, err := e.post(ctx, base+validateRestorePath, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRestore, err)
	}
	if len(resp) != secretLength {
		return nil, fmt.Errorf("%w: restore code rejected", ErrRestore)
	}
	return domain.Secret(xorBytes(resp, pad)), nil
}

// encodeRestoreByte maps the low five bits of b onto the restore-code
// alphabet 0-9 then A-Z without I, L, O, S.
func encodeRestoreByte(b byte) byte {
	v := b & 0x1f
	if v < 10 {
		return '0' + v
	}
	c := 'A' + v - 10
	for _, skip := range [...]byte{'I', 'L', 'O', 'S'} {
		if c >= skip {
			c++
		}
	}
	return c
}

// decodeRestoreCode inverts encodeRestoreByte for a full code.
func decodeRestoreCode(code string) ([]byte, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != restoreCodeLength {
		return nil, fmt.Errorf("%w: restore code must be %d characters", ErrRestore, restoreCodeLength)
	}
	out := make([]byte, restoreCodeLength)
	for i := 0; i < len(code); i++ {
		v, err := decodeRestoreChar(code[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func decodeRestoreChar(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c == 'I' || c == 'L' || c == 'O' || c == 'S':
		// Never produced by encodeRestoreByte.
		return 0, fmt.Errorf("%w: restore code contains %q", ErrRestore, c)
	case c >= 'A' && c <= 'Z':
		v := c - 'A' + 10
		for _, skip := range [...]byte{'I', 'L', 'O', 'S'} {
			if c > skip {
				v--
			}
		}
		return v, nil
	default:
		return 0, fmt.Errorf("%w: restore code contains %q", ErrRestore, c)
	}
}
