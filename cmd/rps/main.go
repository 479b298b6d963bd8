// rps is rock-paper-scissors for the terminal, with the Spock-lizard and
// fire-water variations.
//
// Usage:
//
//	rps                      - Start the interactive menu
//	rps play [--variant v]   - Play in line mode (one key per move)
//	rps variants             - List the variants and their moves
//	rps scores [variant]     - Show the leaderboard
//	rps name [new name]      - Show or change the player name
//	rps serve                - Start the SSH server and HTTP API
//
// Global flags:
//
//	--config <path> - Settings file (default: ~/.rps/settings.yaml)
//	--db <path>     - Database path (default: from settings)
//	--seed <value>  - RNG seed for reproducible computer moves
//	--fps <rate>    - Countdown tick rate
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rps/internal/config"
	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagSeed   int64
	flagFPS    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rps",
	Short: "Rock, paper, scissors in your terminal",
	Long: `Play rock-paper-scissors against the computer, or against other
players over SSH.

Three variants are available:
  normal        - Rock, Paper, Scissors
  spock-lizard  - adds Spock and Lizard
  fire-water    - adds Fire and Water

Running rps without a command opens the interactive menu.

Examples:
  rps
  rps play --variant spock-lizard
  rps scores fire-water
  rps serve --ssh :2222 --http :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the database (overrides settings)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 10, "Countdown tick rate")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadSettings loads the settings and makes sure a player identity exists.
// A freshly generated identity is saved so rounds keep their owner.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if settings.EnsurePlayer() && settings.Path() != "" {
		if err := settings.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save settings: %v\n", err)
		}
	}
	return settings, nil
}

// dbPath returns --db, or the path from the settings.
func dbPath(settings *config.Settings) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return settings.Storage.DBPath
}

// openStoreOrWarn opens the database. Games still work without one, so a
// failure is only a warning.
func openStoreOrWarn(settings *config.Settings) *storage.Store {
	store, err := storage.Open(dbPath(settings))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig builds the front-end config from flags and the terminal size.
func runtimeConfig(settings *config.Settings) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Sound = settings.Sound
	return cfg
}
