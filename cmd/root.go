package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onecloudtech/insight/internal/backend/live"
	"github.com/onecloudtech/insight/internal/backend/mock"
	"github.com/onecloudtech/insight/internal/config"
	"github.com/onecloudtech/insight/internal/logging"
	"github.com/onecloudtech/insight/internal/lookup"
	"github.com/onecloudtech/insight/internal/plugins"
	"github.com/onecloudtech/insight/internal/tool"
)

var rootCmd = &cobra.Command{
	Use:   "insight",
	Short: "Insight - person lookup toolkit for investigation agents",
	Long: `Insight turns an investigation backend into a set of lookup tools an
AI agent can call. One-shot lookups, an interactive console, a chat agent,
an MCP server, an HTTP gateway, and a Slack bot all share the same catalog
and parameter rules.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ~/.config/insight/config.yaml)")

	rootCmd.AddCommand(newCallCmd())
	rootCmd.AddCommand(newToolsCmd())
	rootCmd.AddCommand(newConsoleCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newGatewayCmd())
	rootCmd.AddCommand(newSlackCmd())
	rootCmd.AddCommand(newMockServerCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// loadConfig reads the config file selected by the persistent --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
}

// newManager wires catalog, operation manifests, backend, and lookup client
// into the tool manager every surface runs on.
func newManager(cfg *config.Config, log zerolog.Logger) (*tool.Manager, error) {
	catalog, err := lookup.NewCatalog(lookup.Builtins()...)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	if dir := cfg.Operations.ManifestDir; dir != "" {
		loader := plugins.NewLoader(dir, logging.Component(log, "plugins"))
		if added := loader.Register(catalog); added > 0 {
			log.Debug().Int("count", added).Str("dir", dir).Msg("loaded operation manifests")
		}
	}

	var backend lookup.Backend
	var present lookup.Presenter
	if cfg.GetBackendMode() == "mock" {
		backend = mock.NewGenerator()
		present = mock.PresenterFor(cfg.GetMockConvention())
	} else {
		backend = live.New(
			cfg.Backend.BaseURL,
			time.Duration(cfg.GetTimeoutSeconds())*time.Second,
			logging.Component(log, "backend"),
		)
		present = lookup.Wrap
		if !cfg.Backend.WrapResults {
			present = lookup.Passthrough
		}
	}

	client := lookup.NewClient(catalog, backend, present, logging.Component(log, "lookup"))

	manager := tool.NewManager(logging.Component(log, "tools"))
	for _, op := range catalog.All() {
		if err := manager.Register(tool.NewLookupTool(client, op)); err != nil {
			return nil, fmt.Errorf("register %s: %w", op.Name, err)
		}
	}
	return manager, nil
}
