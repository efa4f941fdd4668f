// Package engine implements the authenticator token engine: current-code
// generation (8-digit TOTP over HMAC-SHA1), otpauth URL rendering, restore
// code derivation, and the enrollment-service protocol for provisioning and
// restoring accounts.
//
// The engine is stateless; persistence is the store's job. Network payloads
// are raw-RSA encrypted under the enrollment service's public key and
// unwrapped with a single-use pad, matching the mobile service's wire format.
package engine
