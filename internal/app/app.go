package app

import (
	"github.com/rs/zerolog"

	"bna/internal/domain"
	"bna/internal/engine"
	"bna/internal/logger"
	"bna/internal/services/account"
	"bna/internal/store"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	// ConfigPath is the explicit --config value; empty selects the
	// platform default location.
	ConfigPath string
}

// App bundles the store, token engine and services for the CLI.
type App struct {
	Store    *store.ConfigStore
	Engine   domain.TokenEngine
	Accounts *account.Service
	Log      zerolog.Logger
}

// New constructs the dependency graph from cfg. The store is loaded once
// here and lives for the rest of the process.
func New(cfg Config) (*App, error) {
	log := logger.New()

	path, err := ResolveConfigPath(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	st, err := store.Load(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("accounts", len(st.Serials())).Msg("loaded config store")

	eng := engine.New(log)
	return &App{
		Store:    st,
		Engine:   eng,
		Accounts: account.New(st, eng, log),
		Log:      log,
	}, nil
}
