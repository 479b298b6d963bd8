package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rps/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start rps in interactive menu mode.

Pick a variant to play against the computer. When you finish a game the
overview shows your totals, then you return to the menu.

Controls:
  Up/Down/j/k    - Navigate menu
  Enter/Space    - Select
  1-9            - Jump to an entry
  Left/Right     - Move the slot cursor in a game
  R/P/S/O/L/F/W  - Pick a move directly
  N              - Reset the score
  Esc            - Finish the game
  Q              - Quit

Examples:
  rps menu
  rps menu --db ./rps.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	store := openStoreOrWarn(settings)
	if store != nil {
		defer store.Close()
	}

	return tui.Run(runtimeConfig(settings), tui.SessionOptions{
		Store:    store,
		Settings: settings,
		Persist:  true,
		Bell:     os.Stdout,
	})
}
