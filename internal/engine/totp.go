package engine

import (
	"encoding/base32"
	"fmt"
	"strconv"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"bna/internal/domain"
)

const (
	// tokenPeriod is the validity window of one code, in seconds.
	tokenPeriod = 30

	otpauthIssuer = "Battle.net"
)

var base32NoPad = base32.StdEncoding.WithPadding(base32.NoPadding)

// Token implements domain.TokenEngine. Codes are standard 8-digit TOTP over
// HMAC-SHA1 with a 30-second period.
func (e *Engine) Token(secret domain.Secret) (int, int, error) {
	now := e.now()
	code, err := totp.GenerateCodeCustom(base32NoPad.EncodeToString(secret), now, totp.ValidateOpts{
		Period:    tokenPeriod,
		Digits:    otp.DigitsEight,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("generate token: %w", err)
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, 0, fmt.Errorf("generate token: %w", err)
	}
	remaining := tokenPeriod - int(now.Unix()%tokenPeriod)
	return n, remaining, nil
}

// OtpauthURL implements domain.TokenEngine. The URL carries the same
// parameters Token uses, so generic OTP apps produce identical codes.
func (e *Engine) OtpauthURL(serial domain.Serial, secret domain.Secret) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      otpauthIssuer,
		AccountName: serial.Pretty(),
		Period:      tokenPeriod,
		Secret:      secret,
		Digits:      otp.DigitsEight,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("build otpauth url: %w", err)
	}
	return key.String(), nil
}
