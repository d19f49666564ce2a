package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"f1standings/pkg/playback"
	"f1standings/pkg/scoreboard"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const clearScreen = "\033[H\033[2J"

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the season standings in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, season, err := ctx.ensureSeason(runCtx)
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = cfg.Playback.Interval()
			}

			out := cmd.OutOrStdout()
			clearFrames := isTerminal(out)
			player := playback.NewPlayer(interval)
			return player.Run(runCtx, season.Len(), func(ctx context.Context, round, total int) error {
				if clearFrames {
					fmt.Fprint(out, clearScreen)
				}
				scoreboard.Render(out, roundTitle(season, round), scoreboard.Entries(season, cfg.Drivers, round), table.StyleRounded)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Pause between rounds (defaults to playback.interval_ms)")
	return cmd
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
