package engine

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"bna/internal/domain"
	"bna/internal/util/memzero"
)

const (
	enrollPath          = "/enrollment/enroll.htm"
	initiateRestorePath = "/enrollment/initiatePaperRestore.htm"
	validateRestorePath = "/enrollment/validatePaperRestore.htm"

	// enrollModel is the device model reported during enrollment; the
	// service expects a fixed-width 16-byte field.
	enrollModel = "Motorola RAZR v3"

	secretLength = 20
	// enrollPadLength covers the 20-byte secret plus the 17-byte display
	// serial in the enrollment response.
	enrollPadLength = 37
	// enrollResponseLen is 8 bytes of server time plus the padded payload.
	enrollResponseLen = 8 + enrollPadLength
)

// Public key of the enrollment service. Request payloads are raw-RSA
// encrypted under it; responses come back XORed with the client's pad.
var (
	enrollModulus, _ = new(big.Int).SetString(
		"955e4bd989f3917d2f15544a7e0504eb9d7bb66b6f8a2fe470e453c779200e5e"+
			"3ad2e43a02d06c4adbd8d328f1a426b83658e88bfd949b2af4eaf30054673a14"+
			"19a250fa4cc1278d12855b5b25818d162c6e6ee2ab4a350d401d78f6ddb99711"+
			"e72626b48bd8b5b0b7f3acf9ea3c9e0005fee59e19136cdb7c83f2ab8b0a2a99", 16)
	enrollExponent = big.NewInt(0x101)
)

// RequestNewSerial implements domain.TokenEngine. It provisions a fresh
// authenticator from the region's mobile service.
func (e *Engine) RequestNewSerial(ctx context.Context, region string) (domain.Account, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if len(region) != 2 {
		return domain.Account{}, fmt.Errorf("%w: invalid region %q", ErrNetwork, region)
	}

	pad := make([]byte, enrollPadLength)
	if _, err := rand.Read(pad); err != nil {
		return domain.Account{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer memzero.Zero(pad)

	payload := make([]byte, 0, 1+enrollPadLength+2+len(enrollModel))
	payload = append(payload, 1)
	payload = append(payload, pad...)
	payload = append(payload, region...)
	payload = append(payload, enrollModel...)

	resp, err := e.post(ctx, e.mobileServiceURL(region)+enrollPath, rsaEncrypt(payload))
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if len(resp) != enrollResponseLen {
		return domain.Account{}, fmt.Errorf("%w: unexpected enrollment response length %d", ErrNetwork, len(resp))
	}

	// resp[:8] is the server clock; codes are derived from local time.
	plain := xorBytes(resp[8:], pad)
	secret := domain.Secret(plain[:secretLength])
	serial := domain.NormalizeSerial(string(plain[secretLength:]))

	e.log.Debug().Str("serial", serial.Pretty()).Msg("enrolled new serial")
	return domain.Account{Serial: serial, Secret: secret}, nil
}

// mobileServiceURL picks the enrollment host for a region. China runs its
// own service; every other region is served by the global host.
func (e *Engine) mobileServiceURL(region string) string {
	if e.baseURL != "" {
		return e.baseURL
	}
	if strings.EqualFold(region, "CN") {
		return "http://mobile-service.battlenet.com.cn"
	}
	return "http://mobile-service.blizzard.com"
}

// rsaEncrypt applies the service's textbook-RSA transform to payload.
func rsaEncrypt(payload []byte) []byte {
	m := new(big.Int).SetBytes(payload)
	c := new(big.Int).Exp(m, enrollExponent, enrollModulus)
	out := make([]byte, enrollModulus.BitLen()/8)
	return c.FillBytes(out)
}
