package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// configFileName is the fixed file name inside the resolved config directory.
const configFileName = "bna.conf"

// ResolveConfigPath returns the config file location. An explicit path wins
// (tilde expanded); otherwise the platform config directory is used, with
// the home directory as a last resort. The parent directory is created when
// absent.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		path, err := expandTilde(explicit)
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return "", fmt.Errorf("create config dir: %w", err)
		}
		return path, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return "", fmt.Errorf("resolve config dir: %w", err)
		}
		base = home
	}
	dir := filepath.Join(base, "bna")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return filepath.Join(dir, configFileName), nil
}

func expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
