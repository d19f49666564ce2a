package main

import (
	"fmt"
	"os"
	"strings"

	"f1standings/pkg/chart"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var round int
	var formatFlag string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the standings chart to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := chart.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			cfg, season, err := ctx.ensureSeason(cmd.Context())
			if err != nil {
				return err
			}
			round, err = resolveRound(season, round)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(output)
			if target == "" {
				target = fmt.Sprintf("standings_round_%d.%s", round, format)
			}
			fig := chart.Draw(season, cfg.Drivers, cfg.Chart, round)

			if target == "-" {
				return chart.Render(cmd.OutOrStdout(), fig, format)
			}
			file, err := os.Create(target)
			if err != nil {
				return errors.Wrapf(err, "create %s", target)
			}
			if err := chart.Render(file, fig, format); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return errors.Wrapf(err, "write %s", target)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().IntVarP(&round, "round", "r", 0, "Round to draw (defaults to the last one)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(chart.FormatSVG), "Output format: svg or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file, - for stdout")
	return cmd
}
