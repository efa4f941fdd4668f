package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/ini.v1"

	"bna/internal/domain"
)

const (
	// settingsSection is the reserved section for global settings; every
	// other section names a serial.
	settingsSection = "bna"

	secretKey        = "secret"
	defaultSerialKey = "default_serial"
)

// ConfigStore is the file-backed account store. Every mutating method
// rewrites the whole file before returning, so disk state never lags the
// in-memory state. It is not safe for concurrent use by multiple processes.
type ConfigStore struct {
	path string
	file *ini.File
}

// Load reads the config file at path. A missing file yields an empty store;
// a file that exists but cannot be parsed, or that holds a non-hex secret,
// fails with ErrConfigParse.
func Load(path string) (*ConfigStore, error) {
	f, err := ini.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ConfigStore{path: path, file: ini.Empty()}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	s := &ConfigStore{path: path, file: f}
	for _, serial := range s.Serials() {
		if _, err := domain.SecretFromHex(s.rawSecret(serial)); err != nil {
			return nil, fmt.Errorf("%w: serial %s: %v", ErrConfigParse, serial, err)
		}
	}
	return s, nil
}

// Path returns the location the store persists to.
func (s *ConfigStore) Path() string { return s.path }

// Save rewrites the full store state to disk.
func (s *ConfigStore) Save() error {
	if err := s.file.SaveTo(s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Secret implements domain.AccountStore.
func (s *ConfigStore) Secret(serial domain.Serial) (domain.Secret, bool) {
	raw := s.rawSecret(serial)
	if raw == "" {
		return nil, false
	}
	secret, err := domain.SecretFromHex(raw)
	if err != nil {
		// Validated on Load; a mutation cannot introduce bad hex.
		return nil, false
	}
	return secret, true
}

// SetSecret implements domain.AccountStore.
func (s *ConfigStore) SetSecret(serial domain.Serial, secret domain.Secret) error {
	s.file.Section(string(serial)).Key(secretKey).SetValue(secret.Hex())
	return s.Save()
}

// DeleteAccount implements domain.AccountStore. Deleting the current default
// account clears the default pointer in the same write.
func (s *ConfigStore) DeleteAccount(serial domain.Serial) error {
	if _, ok := s.Secret(serial); !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchSerial, serial.Pretty())
	}
	s.file.DeleteSection(string(serial))
	if def, ok := s.DefaultSerial(); ok && def == serial {
		s.file.Section(settingsSection).DeleteKey(defaultSerialKey)
	}
	return s.Save()
}

// DefaultSerial implements domain.AccountStore.
func (s *ConfigStore) DefaultSerial() (domain.Serial, bool) {
	sec, err := s.file.GetSection(settingsSection)
	if err != nil || !sec.HasKey(defaultSerialKey) {
		return "", false
	}
	raw := sec.Key(defaultSerialKey).String()
	if raw == "" {
		return "", false
	}
	return domain.NormalizeSerial(raw), true
}

// SetDefaultSerial implements domain.AccountStore. The serial must reference
// an existing account.
func (s *ConfigStore) SetDefaultSerial(serial domain.Serial) error {
	if _, ok := s.Secret(serial); !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchSerial, serial.Pretty())
	}
	s.file.Section(settingsSection).Key(defaultSerialKey).SetValue(string(serial))
	return s.Save()
}

// Serials implements domain.AccountStore. Sections without a secret key are
// preserved on disk but are not accounts, so they are skipped.
func (s *ConfigStore) Serials() []domain.Serial {
	var serials []domain.Serial
	for _, sec := range s.file.Sections() {
		if sec.Name() == ini.DefaultSection || sec.Name() == settingsSection {
			continue
		}
		if !sec.HasKey(secretKey) {
			continue
		}
		serials = append(serials, domain.Serial(sec.Name()))
	}
	return serials
}

func (s *ConfigStore) rawSecret(serial domain.Serial) string {
	sec, err := s.file.GetSection(string(serial))
	if err != nil {
		return ""
	}
	return sec.Key(secretKey).String()
}

// Compile-time assertion that ConfigStore implements domain.AccountStore.
var _ domain.AccountStore = (*ConfigStore)(nil)
