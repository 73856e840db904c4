package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/onecloudtech/insight/internal/agent"
	"github.com/onecloudtech/insight/internal/config"
	"github.com/onecloudtech/insight/internal/logging"
	"github.com/onecloudtech/insight/internal/providers"
)

func newChatCmd() *cobra.Command {
	var (
		sessionID string
		once      string
		provider  string
		model     string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the investigation agent",
		Long: `Start a conversation with the AI agent. The agent decides which
lookups to run and folds their results into its answers.

A session named with --session is saved after every turn and can be
resumed later:
  insight chat --session case-4711
  insight chat --session case-4711 --once "who does 96890001122 call most?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if provider != "" {
				cfg.Chat.Provider = provider
			}
			if model != "" {
				cfg.Chat.Model = model
			}
			log := newLogger(cfg)

			manager, err := newManager(cfg, log)
			if err != nil {
				return err
			}

			prov, err := providers.NewFactory(cfg).CreateDefaultProvider()
			if err != nil {
				return err
			}

			store, err := agent.OpenStore("")
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			defer store.Close()

			var session *agent.Session
			if sessionID != "" {
				loaded, found, err := store.Load(sessionID)
				if err != nil {
					return err
				}
				if found {
					session = loaded
					fmt.Printf("Resumed session %s (%d messages)\n", sessionID, len(loaded.GetMessages()))
				} else {
					session = agent.NewSession(sessionID)
					fmt.Printf("Started session %s\n", sessionID)
				}
			}

			ag := agent.NewAgent(agent.Config{
				Provider: prov,
				Manager:  manager,
				Session:  session,
				MaxSteps: cfg.GetMaxSteps(),
				Logger:   logging.Component(log, "agent"),
			})

			persist := func() {
				if sessionID == "" {
					return
				}
				if err := store.Save(ag.GetSession()); err != nil {
					log.Warn().Err(err).Msg("session save failed")
				}
			}

			if once != "" {
				answer, err := ag.Run(cmd.Context(), once)
				if err != nil {
					return err
				}
				fmt.Println(answer)
				persist()
				return nil
			}

			fmt.Printf("Insight chat, provider %s\n", prov.Name())
			fmt.Println("Ask about a person of interest. Commands: clear, stats, exit.")
			fmt.Println(strings.Repeat("─", 60))

			historyFile := config.DefaultHistoryPath()
			os.MkdirAll(filepath.Dir(historyFile), 0755)

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "you> ",
				HistoryFile:     historyFile,
				HistoryLimit:    1000,
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return fmt.Errorf("readline unavailable: %w", err)
			}
			defer rl.Close()

			for {
				input, err := rl.Readline()
				if err != nil {
					if err == readline.ErrInterrupt {
						fmt.Println("Interrupted. Type 'exit' to quit.")
						continue
					}
					persist()
					fmt.Println("Bye.")
					return nil
				}

				input = strings.TrimSpace(input)
				if input == "" {
					continue
				}
				switch input {
				case "exit", "quit":
					persist()
					fmt.Println("Bye.")
					return nil
				case "clear":
					ag.GetSession().ClearMessages()
					persist()
					fmt.Println("Cleared. Fresh context.")
					continue
				case "stats":
					stats := ag.GetSession().GetStats()
					fmt.Printf("session %s: %d messages (%d user, %d assistant, %d tool)\n",
						stats.SessionID, stats.MessageCount, stats.UserMessages,
						stats.AssistantMessages, stats.ToolMessages)
					continue
				}

				answer, err := ag.Run(cmd.Context(), input)
				if err != nil {
					fmt.Printf("error: %v\n", err)
					continue
				}
				fmt.Println(answer)
				persist()
			}
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id to resume and persist")
	cmd.Flags().StringVar(&once, "once", "", "send a single message and exit")
	cmd.Flags().StringVar(&provider, "provider", "", "override the configured provider")
	cmd.Flags().StringVar(&model, "model", "", "override the configured model")
	return cmd
}
