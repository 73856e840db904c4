package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/onecloudtech/insight/internal/tool"
)

func newCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [key=value ...]",
		Short: "Run one lookup and print the result as JSON",
		Long: `Run a single lookup operation against the configured backend.

Examples:
  insight call get_person_baseinfo phonenum=96890001122
  insight call query_cdr phone=96890001122 page=2 page_size=50
  insight call search_sms_records keyword=meeting`,
		Args: cobra.MinimumNArgs(1),
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

			name := args[0]
			if _, ok := manager.Get(name); !ok {
				return fmt.Errorf("unknown tool %q (run 'insight tools' for the list)", name)
			}

			toolArgs, err := tool.ParseKeyValues(args[1:])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			result, err := manager.Execute(ctx, name, toolArgs)
			if err != nil {
				return fmt.Errorf("lookup failed: %w", err)
			}

			encoded, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fmt.Println(string(encoded))
			return nil
		},
	}
}
