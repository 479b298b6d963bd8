package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// settingsFile is the file name looked up in each search location.
const settingsFile = "settings.yaml"

// Load loads the settings.
// Search order: customPath -> ~/.rps/settings.yaml -> ./configs/settings.yaml -> embedded default.
// Values missing from a file keep their defaults. Save writes back to
// customPath when given, otherwise to ~/.rps/settings.yaml.
func Load(customPath string) (*Settings, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		cfg.path = customPath
		data, err := os.ReadFile(customPath)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	userPath := UserConfigPath()
	cfg.path = userPath

	// Try user config directory
	if userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, cfg); err == nil {
				return cfg, nil
			}
			cfg = Default()
			cfg.path = userPath
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", settingsFile)); err == nil {
		if err := yaml.Unmarshal(data, cfg); err == nil {
			return cfg, nil
		}
		cfg = Default()
		cfg.path = userPath
	}

	return cfg, nil
}

// Default returns settings parsed from the embedded default file.
func Default() *Settings {
	var cfg Settings
	if err := yaml.Unmarshal(defaultSettingsYAML, &cfg); err != nil {
		cfg = DefaultSettings() // Fallback to hardcoded if embed fails
	}
	return &cfg
}

// Save writes the settings to their path, creating parent directories.
func (s *Settings) Save() error {
	if s.path == "" {
		return fmt.Errorf("config: no settings path")
	}
	return s.SaveTo(s.path)
}

// SaveTo writes the settings to path.
func (s *Settings) SaveTo(path string) error {
	path, err := ExpandHome(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory for %s: %w", path, err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns ~/.rps/settings.yaml, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rps", settingsFile)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
