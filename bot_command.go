package main

import (
	"os"
	"os/signal"
	"syscall"

	"f1standings/pkg/bot"
	"f1standings/pkg/config"
	"f1standings/pkg/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newBotCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Answer standings requests on Telegram",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, season, err := ctx.ensureSeason(runCtx)
			if err != nil {
				return err
			}
			if cfg.Telegram.Token == "" {
				return errors.Errorf("telegram.token is empty; set it in the config or export %s", config.EnvTelegramToken)
			}

			db, err := store.Open(cfg.Data.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			b, err := bot.New(cfg.Telegram.Token, cfg.Telegram.Debug, func(s bot.Sender) bot.Accepter {
				return bot.NewMainApp(s,
					bot.NewStandingsApp(s, season, cfg.Drivers, cfg.Chart),
					bot.NewSubscriptionsApp(s, db),
				)
			})
			if err != nil {
				return err
			}
			b.Run(runCtx)
			return nil
		},
	}
}
