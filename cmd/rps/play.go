package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rps/internal/platform/cli"
	"github.com/vovakirdan/tui-rps/internal/rules"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

var flagVariant string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in line mode",
	Long: `Play in plain line mode: one key per move, no full-screen UI.

Main menu keys:
  N  - Normal game
  S  - Spock-lizard variation
  F  - Fire-water variation
  Q  - Quit

Move keys: R Rock, P Paper, S Scissors, O Spock, L Lizard, F Fire, W Water.
Q finishes the running game.

Examples:
  rps play
  rps play --variant fire-water
  echo "n r p s q q" | rps play --seed 1`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagVariant, "variant", "", "Start directly with a variant: normal, spock-lizard, fire-water")
}

func runPlay(_ *cobra.Command, _ []string) error {
	var variant rules.Variant
	if flagVariant != "" {
		v, err := rules.ParseVariant(flagVariant)
		if err != nil {
			return err
		}
		variant = v
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	opts := cli.Options{
		In:      os.Stdin,
		Out:     os.Stdout,
		Seed:    flagSeed,
		Variant: variant,
		Player:  storage.Player{ID: settings.Player.ID, Name: settings.DisplayName()},
	}
	if store := openStoreOrWarn(settings); store != nil {
		defer store.Close()
		opts.Recorder = store
	}

	return cli.New(opts).Run()
}
