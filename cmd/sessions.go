package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onecloudtech/insight/internal/agent"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage saved chat sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := agent.OpenStore("")
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.List()
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No saved sessions.")
				return nil
			}

			fmt.Printf("%-24s %-10s %s\n", "SESSION", "MESSAGES", "UPDATED")
			for _, s := range sessions {
				fmt.Printf("%-24s %-10d %s\n", s.ID, s.MessageCount, s.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved session transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := agent.OpenStore("")
			if err != nil {
				return err
			}
			defer store.Close()

			session, found, err := store.Load(args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no session %q", args[0])
			}

			for _, msg := range session.GetMessages() {
				switch msg.Role {
				case "tool":
					fmt.Printf("[tool %s] %s\n", msg.ToolCallID, msg.Content)
				case "assistant":
					if len(msg.ToolCalls) > 0 {
						calls, _ := json.Marshal(msg.ToolCalls)
						fmt.Printf("[assistant] calls %s\n", calls)
					}
					if msg.Content != "" {
						fmt.Printf("[assistant] %s\n", msg.Content)
					}
				default:
					fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := agent.OpenStore("")
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted session %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Delete every saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := agent.OpenStore("")
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.CleanAll()
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d session(s)\n", count)
			return nil
		},
	})

	return cmd
}
