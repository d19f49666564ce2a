package main

import (
	"fmt"

	"f1standings/pkg/scoreboard"
	"f1standings/pkg/standings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newTableCommand(ctx *commandContext) *cobra.Command {
	var round int

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the standings after a round",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, season, err := ctx.ensureSeason(cmd.Context())
			if err != nil {
				return err
			}
			round, err = resolveRound(season, round)
			if err != nil {
				return err
			}
			scoreboard.Render(cmd.OutOrStdout(), roundTitle(season, round), scoreboard.Entries(season, cfg.Drivers, round), table.StyleRounded)
			return nil
		},
	}

	cmd.Flags().IntVarP(&round, "round", "r", 0, "Round to show (defaults to the last one)")
	return cmd
}

// resolveRound maps 0 to the last round and rejects rounds outside the season.
func resolveRound(season *standings.Season, round int) (int, error) {
	if round == 0 {
		return season.Len(), nil
	}
	if round < 1 || round > season.Len() {
		return 0, fmt.Errorf("round %d out of range 1..%d", round, season.Len())
	}
	return round, nil
}

func roundTitle(season *standings.Season, round int) string {
	return fmt.Sprintf("Round %d/%d · %s", round, season.Len(), season.Races()[round-1])
}
