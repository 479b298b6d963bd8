package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var nameCmd = &cobra.Command{
	Use:   "name [new name]",
	Short: "Show or change the player name",
	Long: `Without an argument, prints the current player name and id.
With an argument, renames the player. The id stays the same, so the
leaderboard keeps your earlier games.

Examples:
  rps name
  rps name "Ada Lovelace"`,
	RunE: runName,
}

func runName(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintf(out, "%s (%s)\n", settings.Player.Name, settings.Player.ID)
		return nil
	}

	if err := settings.SetPlayerName(strings.Join(args, " ")); err != nil {
		return err
	}
	if err := settings.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Player name set to %s\n", settings.Player.Name)
	return nil
}
