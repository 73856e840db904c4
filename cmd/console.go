package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/onecloudtech/insight/internal/config"
	"github.com/onecloudtech/insight/internal/lookup"
	"github.com/onecloudtech/insight/internal/tool"
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Interactive lookup console",
		Long: `Start an interactive console for running lookups by hand.

Type a tool name followed by key=value arguments:
  insight> get_person_baseinfo phonenum=96890001122
  insight> query_cdr phone=96890001122 page=2

Commands: help, tools, exit`,
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

			fmt.Println("Insight lookup console")
			fmt.Printf("Backend: %s (%s)\n", cfg.Backend.BaseURL, cfg.GetBackendMode())
			fmt.Println("Type 'help' for usage, 'exit' to quit.")
			fmt.Println(strings.Repeat("─", 60))

			historyFile := config.DefaultHistoryPath()
			os.MkdirAll(filepath.Dir(historyFile), 0755)

			rl, err := readline.NewEx(&readline.Config{
				Prompt:            "insight> ",
				HistoryFile:       historyFile,
				HistoryLimit:      1000,
				InterruptPrompt:   "^C",
				EOFPrompt:         "exit",
				HistorySearchFold: true,
			})
			if err != nil {
				fmt.Printf("readline unavailable (%v), using basic input\n", err)
				return basicConsoleLoop(cmd.Context(), manager)
			}
			defer rl.Close()

			for {
				line, err := rl.Readline()
				if err != nil {
					if err == readline.ErrInterrupt {
						fmt.Println("Interrupted. Type 'exit' to quit.")
						continue
					}
					fmt.Println("Bye.")
					return nil
				}

				if done := consoleDispatch(cmd.Context(), manager, line); done {
					return nil
				}
			}
		},
	}
}

// basicConsoleLoop is the fallback when the terminal cannot host readline.
func basicConsoleLoop(ctx context.Context, manager *tool.Manager) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("insight> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && err != io.EOF {
				return err
			}
			fmt.Println("Bye.")
			return nil
		}
		if done := consoleDispatch(ctx, manager, scanner.Text()); done {
			return nil
		}
	}
}

// consoleDispatch handles one console line. It returns true when the user
// asked to leave.
func consoleDispatch(ctx context.Context, manager *tool.Manager, line string) bool {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return false
	case "exit", "quit":
		fmt.Println("Bye.")
		return true
	case "help":
		fmt.Println("Usage: <tool> key=value ...")
		fmt.Println("  tools        list the available lookups")
		fmt.Println("  help         show this help")
		fmt.Println("  exit         leave the console")
		return false
	case "tools":
		for _, t := range manager.All() {
			line := fmt.Sprintf("  %-24s %s", t.Name(), t.Description())
			if carrier, ok := t.(interface{ Operation() *lookup.Operation }); ok {
				line += " (" + ruleText(carrier.Operation().Rule) + ")"
			}
			fmt.Println(line)
		}
		return false
	}

	fmt.Println(consoleEval(ctx, manager, line))
	return false
}

// consoleEval runs one lookup line and renders the outcome.
func consoleEval(ctx context.Context, manager *tool.Manager, line string) string {
	fields := strings.Fields(line)
	name := fields[0]
	if _, ok := manager.Get(name); !ok {
		return fmt.Sprintf("unknown tool %q (type 'tools' for the list)", name)
	}

	args, err := tool.ParseKeyValues(fields[1:])
	if err != nil {
		return err.Error()
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	result, err := manager.Execute(ctx, name, args)
	if err != nil {
		return fmt.Sprintf("lookup failed: %v", err)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("encode result: %v", err)
	}
	return string(encoded)
}
