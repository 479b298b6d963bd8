// Package config provides YAML-based settings loading and saving for the
// rock-paper-scissors front-ends.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-rps/internal/rules"
)

// MaxNameLength is the longest accepted player name, in runes.
const MaxNameLength = 24

// ErrInvalidName is returned by SetPlayerName for empty or overlong names.
var ErrInvalidName = errors.New("config: player name must be 1-24 characters")

// Settings is the persisted user configuration.
type Settings struct {
	Player         PlayerSettings  `yaml:"player"`
	Sound          bool            `yaml:"sound"`
	DefaultVariant string          `yaml:"default_variant"`
	Storage        StorageSettings `yaml:"storage"`
	Server         ServerSettings  `yaml:"server"`

	// path is where Save writes; set by Load.
	path string
}

// PlayerSettings identifies the local player.
type PlayerSettings struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// StorageSettings configures the SQLite database.
type StorageSettings struct {
	DBPath string `yaml:"db_path"`
}

// ServerSettings configures `rps serve`.
type ServerSettings struct {
	SSHAddr      string        `yaml:"ssh_addr"`
	HTTPAddr     string        `yaml:"http_addr"`
	HostKey      string        `yaml:"host_key"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	LobbyTimeout time.Duration `yaml:"lobby_timeout"`
	BestOf       int           `yaml:"best_of"`
}

// Path returns the file Save writes to.
func (s *Settings) Path() string {
	return s.path
}

// SetPath changes the file Save writes to.
func (s *Settings) SetPath(path string) {
	s.path = path
}

// Variant returns the configured default variant, Normal when unset or unknown.
func (s *Settings) Variant() rules.Variant {
	v, err := rules.ParseVariant(s.DefaultVariant)
	if err != nil {
		return rules.VariantNormal
	}
	return v
}

// EnsurePlayer generates a player identity when none is configured.
// The default name is "PLAYER-<uuid>". It reports whether anything changed.
func (s *Settings) EnsurePlayer() bool {
	changed := false
	if _, err := uuid.Parse(s.Player.ID); err != nil {
		s.Player.ID = uuid.NewString()
		changed = true
	}
	if strings.TrimSpace(s.Player.Name) == "" {
		s.Player.Name = "PLAYER-" + s.Player.ID
		changed = true
	}
	return changed
}

// SetPlayerName validates and stores a new player name.
func (s *Settings) SetPlayerName(name string) error {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > MaxNameLength {
		return ErrInvalidName
	}
	s.Player.Name = name
	return nil
}

// DisplayName returns the player name shortened for tables and headers.
func (s *Settings) DisplayName() string {
	if s.Player.Name == "" {
		return "Player"
	}
	return s.Player.Name
}

// Validate checks values that would otherwise fail later at runtime.
func (s *Settings) Validate() error {
	var errs []error
	if s.DefaultVariant != "" {
		if _, err := rules.ParseVariant(s.DefaultVariant); err != nil {
			errs = append(errs, fmt.Errorf("config: default_variant: %w", err))
		}
	}
	if s.Server.BestOf <= 0 || s.Server.BestOf%2 == 0 {
		errs = append(errs, fmt.Errorf("config: server.best_of must be odd and positive, got %d", s.Server.BestOf))
	}
	if s.Server.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("config: server.idle_timeout must not be negative"))
	}
	if s.Server.LobbyTimeout < 0 {
		errs = append(errs, fmt.Errorf("config: server.lobby_timeout must not be negative"))
	}
	if s.Player.ID != "" {
		if _, err := uuid.Parse(s.Player.ID); err != nil {
			errs = append(errs, fmt.Errorf("config: player.id: %w", err))
		}
	}
	return errors.Join(errs...)
}
