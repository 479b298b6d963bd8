package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rps/internal/rules"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the leaderboard",
	Long: `Display the top players of a variant, or of every variant when none
is given. Players are ranked by wins, then win rate.

Examples:
  rps scores
  rps scores spock-lizard
  rps scores normal --limit 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of players to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	variants := rules.Variants()
	if len(args) == 1 {
		v, err := rules.ParseVariant(args[0])
		if err != nil {
			return err
		}
		variants = []rules.Variant{v}
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := storage.Open(dbPath(settings))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	for i, v := range variants {
		if i > 0 {
			fmt.Fprintln(out)
		}
		standings, err := store.TopPlayers(v, flagScoresLimit)
		if err != nil {
			return fmt.Errorf("retrieving scores: %w", err)
		}
		printStandings(out, v, standings)
	}
	return nil
}

func printStandings(out io.Writer, v rules.Variant, standings []storage.PlayerStanding) {
	fmt.Fprintf(out, "Leaderboard - %s\n", v.DisplayName())
	fmt.Fprintln(out)

	if len(standings) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintf(out, "Play 'rps play --variant %s' to set the first score!\n", v.Key())
		return
	}

	fmt.Fprintf(out, "  %-4s  %-24s  %5s  %4s  %5s  %5s  %6s\n", "Rank", "Player", "Games", "Wins", "Loses", "Draws", "Win %")
	fmt.Fprintf(out, "  %-4s  %-24s  %5s  %4s  %5s  %5s  %6s\n", "----", "------", "-----", "----", "-----", "-----", "-----")
	for _, st := range standings {
		fmt.Fprintf(out, "  %-4d  %-24s  %5d  %4d  %5d  %5d  %5.1f%%\n",
			st.Rank, st.Player.Name, st.Games, st.Wins, st.Loses, st.Draws, st.WinRate*100)
	}
}
