package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in configuration.
// It matches defaults/settings.yaml and is used if the embedded file fails to parse.
func DefaultSettings() Settings {
	return Settings{
		Sound:          true,
		DefaultVariant: "normal",
		Storage: StorageSettings{
			DBPath: "~/.rps/rps.db",
		},
		Server: ServerSettings{
			SSHAddr:      ":23234",
			HTTPAddr:     ":8080",
			HostKey:      ".ssh/rps_ed25519",
			IdleTimeout:  30 * time.Minute,
			LobbyTimeout: 2 * time.Minute,
			BestOf:       3,
		},
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultSettingsYAML
}
