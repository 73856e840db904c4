package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/onecloudtech/insight/internal/logging"
	"github.com/onecloudtech/insight/internal/mcpserver"
)

const version = "0.1.0"

func newMCPCmd() *cobra.Command {
	var (
		sse  bool
		addr string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the lookups as MCP tools",
		Long: `Expose every lookup operation over the Model Context Protocol so
MCP-capable hosts can call them directly.

By default the server speaks stdio, for hosts that spawn it as a child
process. With --sse it serves HTTP with SSE transport instead:

  insight mcp
  insight mcp --sse --addr :8720`,
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

			srv := mcpserver.New(manager, version, logging.Component(log, "mcp"))

			if !sse {
				return srv.ServeStdio()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ServeSSE(ctx, addr)
		},
	}

	cmd.Flags().BoolVar(&sse, "sse", false, "serve HTTP/SSE instead of stdio")
	cmd.Flags().StringVar(&addr, "addr", ":8720", "listen address for --sse")
	return cmd
}
