package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - FSX_CONFIG_PATH: config file location (default: ~/.config/fsx.toml)
//   - FSX_HOME: base directory for fsx data (default: ~/.local/share/fsx)
func GetDefaults() (map[string]string, error) {
	configPath, err := envOrHome("FSX_CONFIG_PATH", ".config", "fsx.toml")
	if err != nil {
		return nil, err
	}

	baseDir, err := envOrHome("FSX_HOME", ".local", "share", "fsx")
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// envOrHome returns the value of env, or the path elems joined under the user's home directory.
func envOrHome(env string, elem ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}
