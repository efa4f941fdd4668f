package account

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"bna/internal/domain"
	"bna/internal/store"
)

// Service manages authenticator accounts using a backing store and the
// token engine for provisioning and restore derivation.
type Service struct {
	store  domain.AccountStore
	engine domain.TokenEngine
	log    zerolog.Logger
}

// New returns an account service backed by the given store and engine.
func New(st domain.AccountStore, eng domain.TokenEngine, log zerolog.Logger) *Service {
	return &Service{store: st, engine: eng, log: log}
}

// ListEntry is one row of List output.
type ListEntry struct {
	Serial  domain.Serial
	Default bool
}

// Add stores an account. The account becomes the default when makeDefault is
// set, or automatically when no default exists yet (the first added account).
func (s *Service) Add(serial domain.Serial, secret domain.Secret, makeDefault bool) error {
	if err := s.store.SetSecret(serial, secret); err != nil {
		return err
	}
	if _, ok := s.store.DefaultSerial(); makeDefault || !ok {
		if err := s.store.SetDefaultSerial(serial); err != nil {
			return err
		}
	}
	s.log.Debug().Str("serial", serial.Pretty()).Msg("stored account")
	return nil
}

// Delete removes the account for raw (normalized first) and returns the
// normalized serial for confirmation output.
func (s *Service) Delete(raw string) (domain.Serial, error) {
	serial := domain.NormalizeSerial(raw)
	if err := s.store.DeleteAccount(serial); err != nil {
		return "", err
	}
	s.log.Debug().Str("serial", serial.Pretty()).Msg("deleted account")
	return serial, nil
}

// Restore re-derives and stores the secret for a serial from its restore
// code. A serial that already has a secret is refused so an existing account
// is never overwritten silently.
func (s *Service) Restore(ctx context.Context, raw, restoreCode string) (domain.Account, error) {
	serial := domain.NormalizeSerial(raw)
	if _, ok := s.store.Secret(serial); ok {
		return domain.Account{}, fmt.Errorf("%w: %s (delete it first)", ErrSecretExists, serial.Pretty())
	}
	secret, err := s.engine.Restore(ctx, serial, restoreCode)
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.Add(serial, secret, false); err != nil {
		return domain.Account{}, err
	}
	return domain.Account{Serial: serial, Secret: secret}, nil
}

// ProvisionNew requests a fresh serial and secret from the region's
// enrollment service and stores it.
func (s *Service) ProvisionNew(ctx context.Context, region string) (domain.Account, error) {
	acct, err := s.engine.RequestNewSerial(ctx, region)
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.Add(acct.Serial, acct.Secret, false); err != nil {
		return domain.Account{}, err
	}
	return acct, nil
}

// List enumerates all stored accounts in store order, marking the default.
func (s *Service) List() []ListEntry {
	def, _ := s.store.DefaultSerial()
	serials := s.store.Serials()
	entries := make([]ListEntry, 0, len(serials))
	for _, serial := range serials {
		entries = append(entries, ListEntry{Serial: serial, Default: serial == def})
	}
	return entries
}

// SetDefault points the default at an existing account.
func (s *Service) SetDefault(serial domain.Serial) error {
	return s.store.SetDefaultSerial(serial)
}

// Resolve picks the account to operate on: the explicit argument when given,
// the default otherwise. With no default it distinguishes an empty store
// from a store that merely lacks a default pointer.
func (s *Service) Resolve(explicit string) (domain.Account, error) {
	var serial domain.Serial
	if explicit != "" {
		serial = domain.NormalizeSerial(explicit)
	} else {
		def, ok := s.store.DefaultSerial()
		if !ok {
			if len(s.store.Serials()) == 0 {
				return domain.Account{}, ErrNoAuthenticators
			}
			return domain.Account{}, ErrNoDefaultSerial
		}
		serial = def
	}
	secret, ok := s.store.Secret(serial)
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: %s", store.ErrNoSuchSerial, serial.Pretty())
	}
	return domain.Account{Serial: serial, Secret: secret}, nil
}
