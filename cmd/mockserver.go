package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/onecloudtech/insight/internal/logging"
	"github.com/onecloudtech/insight/internal/mockbackend"
)

func newMockServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mockserver",
		Short: "Serve the demo backend",
		Long: `Start a local backend that answers every lookup path with enveloped
demo data. The default config points at it, so

  insight mockserver &
  insight call get_person_baseinfo phonenum=96890001122

works end to end without a real data provider. Add ?__fail=<msg> to any
request to rehearse a business failure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			srv := mockbackend.NewServer(addr, logging.Component(log, "mockbackend"))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Demo backend listening on %s\n", addr)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8654", "listen address")
	return cmd
}
