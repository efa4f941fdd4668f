// Package store provides file-based persistence for authenticator accounts.
//
// The on-disk format is a section-based key/value file: one section per
// serial holding the secret as hex, plus a reserved [bna] section for global
// settings (currently just default_serial). The whole file is parsed on load
// and rewritten on every mutation, so keys and sections this version does not
// understand survive round-trips.
package store
