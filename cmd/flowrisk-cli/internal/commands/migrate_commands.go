package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/vsm34/FlowRisk/internal/infrastructure/persistence"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// MigrateCommandHandler applies and inspects schema migrations
type MigrateCommandHandler struct {
	logger logger.Logger
}

// NewMigrateCommandHandler initializes a MigrateCommandHandler with a configured logger
func NewMigrateCommandHandler() (*MigrateCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &MigrateCommandHandler{logger: loggerInstance}, nil
}

// UpCmd applies every pending migration
func (commandHandler *MigrateCommandHandler) UpCmd(cmd *cobra.Command, _ []string) error {
	return commandHandler.withDB(cmd, func(db *gorm.DB) error {
		if err := persistence.Migrate(db); err != nil {
			return err
		}
		return commandHandler.printVersion(cmd, db, "Database is at version")
	})
}

// DownCmd rolls back the most recently applied migration
func (commandHandler *MigrateCommandHandler) DownCmd(cmd *cobra.Command, _ []string) error {
	return commandHandler.withDB(cmd, func(db *gorm.DB) error {
		if err := persistence.RollbackLast(db); err != nil {
			return err
		}
		return commandHandler.printVersion(cmd, db, "Rolled back, database is at version")
	})
}

// CurrentCmd prints the id of the last applied migration
func (commandHandler *MigrateCommandHandler) CurrentCmd(cmd *cobra.Command, _ []string) error {
	return commandHandler.withDB(cmd, func(db *gorm.DB) error {
		return commandHandler.printVersion(cmd, db, "Current version")
	})
}

func (commandHandler *MigrateCommandHandler) withDB(cmd *cobra.Command, fn func(db *gorm.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := persistence.NewDBConnection(cmd.Context(), cfg.Database, commandHandler.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			commandHandler.logger.Warn("Failed to close database", "error", err)
		}
	}()

	return fn(db)
}

func (commandHandler *MigrateCommandHandler) printVersion(cmd *cobra.Command, db *gorm.DB, label string) error {
	version, err := persistence.CurrentVersion(db)
	if err != nil {
		return err
	}
	if version == "" {
		version = "<none>"
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, version)
	return err
}

// InitMigrateCommands registers the migrate command group
func InitMigrateCommands(rootCmd *cobra.Command) error {
	handler, err := NewMigrateCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create migrate command handler %w", err)
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE:  handler.UpCmd,
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last applied migration",
		Args:  cobra.NoArgs,
		RunE:  handler.DownCmd,
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE:  handler.CurrentCmd,
	})

	rootCmd.AddCommand(migrateCmd)
	return nil
}
