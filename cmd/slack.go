package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/onecloudtech/insight/internal/logging"
	"github.com/onecloudtech/insight/internal/slack"
)

func newSlackCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "slack",
		Short: "Run the Slack lookup bot",
		Long: `Connect to Slack in Socket Mode and answer app mentions with lookup
results. Requires a bot token (SLACK_BOT_TOKEN or slack.bot_token) and an
app-level token (SLACK_APP_TOKEN or slack.app_token).

In a channel the bot is invited to:
  @insight get_person_baseinfo phonenum=96890001122
  @insight tools`,
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

			bot, err := slack.NewBot(slack.Config{
				BotToken: cfg.Slack.BotToken,
				AppToken: cfg.Slack.AppToken,
				Debug:    debug,
			}, manager, logging.Component(log, "slack"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return bot.Start(ctx)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable Slack client debug logging")
	return cmd
}
