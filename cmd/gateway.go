package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/onecloudtech/insight/internal/gateway"
	"github.com/onecloudtech/insight/internal/logging"
)

func newGatewayCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Serve the lookups over HTTP",
		Long: `Start the HTTP gateway: REST endpoints for every lookup, Prometheus
metrics, and a websocket feed of tool invocations.

  GET  /api/v1/health
  GET  /api/v1/tools
  POST /api/v1/tools/{name}
  GET  /api/v1/ws
  GET  /metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			manager, err := newManager(cfg, log)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.Gateway.Addr
			}

			srv := gateway.NewServer(addr, manager, logging.Component(log, "gateway"))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Gateway listening on %s\n", addr)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8700)")
	return cmd
}
