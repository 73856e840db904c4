package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onecloudtech/insight/internal/lookup"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the available lookup operations",
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

			fmt.Printf("Available lookups (%d):\n\n", manager.Len())
			for _, t := range manager.All() {
				fmt.Printf("  %s\n", t.Name())
				fmt.Printf("      %s\n", t.Description())
				if carrier, ok := t.(interface{ Operation() *lookup.Operation }); ok {
					op := carrier.Operation()
					fmt.Printf("      %s, %s\n", op.Path, ruleText(op.Rule))
				}
				fmt.Println()
			}
			return nil
		},
	}
}

// ruleText renders a parameter rule for humans.
func ruleText(rule lookup.Rule) string {
	if len(rule.Fields) == 0 {
		return "no required parameters"
	}
	joined := strings.Join(rule.Fields, ", ")
	if rule.Kind == lookup.AllOf {
		return "requires: " + joined
	}
	return "requires at least one of: " + joined
}
