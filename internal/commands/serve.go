package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/garagepay/paytrack/internal/api"
	"github.com/garagepay/paytrack/internal/logging"
	"github.com/garagepay/paytrack/internal/tracker"
)

func newServeCommand(a *app) *cobra.Command {
	var port int
	var staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the report HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			if cmd.Flags().Changed("static") {
				a.cfg.Server.StaticDir = staticDir
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := tracker.NewService(*a.cfg, logging.WithComponent(a.logger, "tracker"))
			srv := api.NewServer(a.cfg.Server, svc, logging.WithComponent(a.logger, "api"))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config, 8000)")
	cmd.Flags().StringVar(&staticDir, "static", "", "directory with index.html and static assets")

	return cmd
}
