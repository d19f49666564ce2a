package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"f1standings/pkg/animation"
	"f1standings/pkg/resources"
	"f1standings/pkg/webserver"

	"github.com/spf13/cobra"
)

const photoTimeout = 15 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string
	var debugRoutes bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the animated standings page",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, season, err := ctx.ensureSeason(runCtx)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Web.Address
			}

			var photos resources.Photos
			if cfg.Web.CacheImages {
				client := &http.Client{Timeout: photoTimeout}
				photos = resources.BuildDriverPhotos(runCtx, client, cfg.Web.ResourcesDir, cfg.Drivers)
			}

			m := webserver.NewManager(addr, cfg.Web.ResourcesDir)
			animation.NewAnimation(m.Router(), animation.Settings{
				Season:   season,
				Roster:   cfg.Drivers,
				Chart:    cfg.Chart,
				Interval: cfg.Playback.Interval(),
				Photos:   photos,
			})
			if debugRoutes {
				m.Debug(cmd.OutOrStdout())
			}
			return m.Serve(runCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to web.address)")
	cmd.Flags().BoolVar(&debugRoutes, "debug-routes", false, "Print the registered routes")
	return cmd
}
