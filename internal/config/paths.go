package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName = ".notes"
	homeEnvVar = "NOTES_HOME"
)

// DataDir returns the base data directory. NOTES_HOME overrides ~/.notes.
func DataDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(homeEnvVar)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the TOML configuration file.
func ConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "config.toml"), nil
}

// CredentialsPath returns the path to the stored backend credentials.
func CredentialsPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "credentials.json"), nil
}

// LogPath returns the default log file used while the board UI owns the terminal.
func LogPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "notes.log"), nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
