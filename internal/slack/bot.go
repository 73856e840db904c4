// Package slack exposes the lookup tools to analysts in Slack. The bot
// runs in Socket Mode, answers app mentions of the form
// "<tool> key=value ..." with the lookup result as fenced JSON, and lists
// the catalog on "tools".
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/onecloudtech/insight/internal/tool"
)

const (
	lookupTimeout = 30 * time.Second
	maxReplyChars = 2900 // Slack truncates long section text around 3000
)

// Config holds Slack bot configuration
type Config struct {
	BotToken string // xoxb-...
	AppToken string // xapp-... (for Socket Mode)
	Debug    bool
}

// Bot answers app mentions with lookup results.
type Bot struct {
	config       Config
	client       *slack.Client
	socketClient *socketmode.Client
	manager      *tool.Manager
	botUserID    string
	log          zerolog.Logger
}

// NewBot creates a new Slack bot
func NewBot(cfg Config, manager *tool.Manager, log zerolog.Logger) (*Bot, error) {
	if cfg.BotToken == "" {
		cfg.BotToken = os.Getenv("SLACK_BOT_TOKEN")
	}
	if cfg.AppToken == "" {
		cfg.AppToken = os.Getenv("SLACK_APP_TOKEN")
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if cfg.AppToken == "" {
		return nil, fmt.Errorf("SLACK_APP_TOKEN is required for Socket Mode")
	}

	client := slack.New(
		cfg.BotToken,
		slack.OptionDebug(cfg.Debug),
		slack.OptionAppLevelToken(cfg.AppToken),
	)

	socketClient := socketmode.New(
		client,
		socketmode.OptionDebug(cfg.Debug),
	)

	bot := &Bot{
		config:       cfg,
		client:       client,
		socketClient: socketClient,
		manager:      manager,
		log:          log,
	}

	authTest, err := client.AuthTest()
	if err != nil {
		return nil, fmt.Errorf("auth test failed: %w", err)
	}
	bot.botUserID = authTest.UserID
	log.Info().Str("bot_user_id", bot.botUserID).Msg("slack bot authenticated")

	return bot, nil
}

// Start runs the Socket Mode connection until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	go b.handleEvents(ctx)
	b.log.Info().Msg("starting slack socket mode")
	return b.socketClient.RunContext(ctx)
}

// handleEvents handles incoming Slack events
func (b *Bot) handleEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-b.socketClient.Events:
			switch evt.Type {
			case socketmode.EventTypeConnecting:
				b.log.Debug().Msg("slack connecting")
			case socketmode.EventTypeConnected:
				b.log.Debug().Msg("slack connected")
			case socketmode.EventTypeConnectionError:
				b.log.Warn().Msg("slack connection error, retrying")
			case socketmode.EventTypeEventsAPI:
				b.handleEventAPI(ctx, evt)
			case socketmode.EventTypeSlashCommand, socketmode.EventTypeInteractive:
				// Not used; ack so Slack stops retrying.
				if evt.Request != nil {
					b.socketClient.Ack(*evt.Request)
				}
			}
		}
	}
}

// handleEventAPI handles Events API events
func (b *Bot) handleEventAPI(ctx context.Context, evt socketmode.Event) {
	eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
	if !ok {
		return
	}

	b.socketClient.Ack(*evt.Request)

	if eventsAPIEvent.Type != slackevents.CallbackEvent {
		return
	}

	if ev, ok := eventsAPIEvent.InnerEvent.Data.(*slackevents.AppMentionEvent); ok {
		b.handleMention(ctx, ev)
	}
}

// handleMention handles @mentions of the bot
func (b *Bot) handleMention(ctx context.Context, ev *slackevents.AppMentionEvent) {
	text := strings.TrimSpace(strings.Replace(ev.Text, fmt.Sprintf("<@%s>", b.botUserID), "", 1))

	threadTS := ev.ThreadTimeStamp
	if threadTS == "" {
		threadTS = ev.TimeStamp
	}

	b.log.Debug().Str("channel", ev.Channel).Str("text", text).Msg("slack mention")
	b.sendMessage(ev.Channel, threadTS, b.replyFor(ctx, text))
}

// replyFor builds the reply for one mention. It is the whole command
// surface: help, the tool list, and tool invocations.
func (b *Bot) replyFor(ctx context.Context, text string) string {
	switch strings.ToLower(text) {
	case "", "help":
		return b.helpText()
	case "tools":
		return b.toolListText()
	}

	fields := strings.Fields(text)
	name := fields[0]
	if _, ok := b.manager.Get(name); !ok {
		return fmt.Sprintf("❌ Unknown tool `%s`. Say `tools` to list the available lookups.", name)
	}

	args, err := tool.ParseKeyValues(fields[1:])
	if err != nil {
		return fmt.Sprintf("❌ %v. Arguments look like `phonenum=96890001122`.", err)
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	result, err := b.manager.Execute(ctx, name, args)
	if err != nil {
		return fmt.Sprintf("❌ Lookup failed: %v", err)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("❌ Could not render result: %v", err)
	}

	body := string(encoded)
	if len(body) > maxReplyChars {
		body = body[:maxReplyChars] + "\n… (truncated)"
	}
	return "```\n" + body + "\n```"
}

func (b *Bot) helpText() string {
	return "*Insight lookup bot*\n" +
		"Mention me with a tool name and `key=value` arguments:\n" +
		"• `@insight get_person_baseinfo phonenum=96890001122`\n" +
		"• `@insight query_cdr phone=96890001122 page=2`\n" +
		"• `@insight tools` - list every lookup\n" +
		"Results come back as JSON with a `found` flag; `found: false` means the backend has no records."
}

func (b *Bot) toolListText() string {
	lines := []string{"*Available lookups:*"}
	for _, t := range b.manager.All() {
		lines = append(lines, fmt.Sprintf("• `%s` - %s", t.Name(), t.Description()))
	}
	return strings.Join(lines, "\n")
}

// sendMessage sends a simple message
func (b *Bot) sendMessage(channel, threadTS, text string) {
	_, _, err := b.client.PostMessage(channel, slack.MsgOptionTS(threadTS), slack.MsgOptionText(text, false))
	if err != nil {
		b.log.Error().Err(err).Str("channel", channel).Msg("slack post failed")
	}
}
