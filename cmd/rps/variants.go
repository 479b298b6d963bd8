package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rps/internal/rules"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the game variants",
	Long:  `Shows every variant with its moves and the key that picks each move.`,
	Args:  cobra.NoArgs,
	Run:   runVariants,
}

func runVariants(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	variants := rules.Variants()

	// Calculate column widths
	maxKeyLen := 3 // "Key" header
	for _, v := range variants {
		maxKeyLen = max(maxKeyLen, len(v.Key()))
	}

	fmt.Fprintln(out, "Available variants:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %s\n", maxKeyLen, "Key", "Moves")
	fmt.Fprintf(out, "  %-*s  %s\n", maxKeyLen, "---", "-----")

	for _, v := range variants {
		moves := make([]string, 0, v.MaxSlots())
		for _, m := range v.Moves() {
			moves = append(moves, fmt.Sprintf("%s (%c)", m, m.Key()))
		}
		fmt.Fprintf(out, "  %-*s  %s\n", maxKeyLen, v.Key(), strings.Join(moves, ", "))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'rps play --variant <key>' to play one.")
}
