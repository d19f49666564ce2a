package main

import (
	"fmt"
	"strings"

	"f1standings/pkg/loader"
	"f1standings/pkg/notification"
	"f1standings/pkg/standings"
	"f1standings/pkg/store"

	"github.com/spf13/cobra"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var dbPath string
	var notify bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the spreadsheet results into a SQLite database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results, err := loader.LoadXLSX(cfg.Data.Path, cfg.Data.Sheet)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(dbPath)
			if target == "" {
				target = cfg.Data.Database
			}
			if target == "" {
				target = store.DbName
			}
			s, err := store.Open(target)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.ReplaceResults(cmd.Context(), results); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d results from %s\n", len(results), cfg.Data.Path)
			if target != cfg.Data.Database {
				fmt.Fprintf(out, "Set data.database = %q to read results from this database\n", target)
			}

			if !notify || cfg.Telegram.Token == "" {
				return nil
			}
			season := standings.Prepare(results, cfg.Drivers, cfg.Data.RaceNameMax)
			m := notification.NewManager(s, notification.TelegramService(cfg.Telegram.Token))
			sent, err := m.NotifyStandings(cmd.Context(), season, cfg.Drivers)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Notified %d subscribers\n", sent)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to write (defaults to data.database)")
	cmd.Flags().BoolVar(&notify, "notify", true, "Send the new standings to Telegram subscribers when a token is set")
	return cmd
}
