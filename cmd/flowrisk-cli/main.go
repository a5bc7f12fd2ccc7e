// Package main is the entry point for the flowrisk-cli application.
// It registers the migrate and simulate command groups and executes the command-line interface.
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	commands "github.com/vsm34/FlowRisk/cmd/flowrisk-cli/internal/commands"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "flowrisk-cli",
		Short: "FlowRisk operations CLI tool",
		Long: `flowrisk-cli is a command-line tool for FlowRisk operators.
Applies and rolls back database schema migrations against DATABASE_URL
and runs offline cash-flow stress tests from a JSON profile file.

Configuration is read from CONFIG_PATH (default configs/rest-app.yaml),
a .env file and the environment.`,
		SilenceUsage: true,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitMigrateCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize migrate commands: %w", err)
	}

	if err := commands.InitSimulateCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize simulate commands: %w", err)
	}

	return nil
}
