//go:build integration
// +build integration

package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsm34/FlowRisk/internal/infrastructure/persistence"
)

func executeMigrate(t *testing.T, args ...string) string {
	t.Helper()

	rootCmd := &cobra.Command{Use: "flowrisk-cli", SilenceUsage: true, SilenceErrors: true}
	require.NoError(t, InitMigrateCommands(rootCmd))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"migrate"}, args...))

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestMigrateCommands_UpDownCurrent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "flowrisk.db")
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("DATABASE_URL", "sqlite:///"+dbPath)
	t.Setenv("DB_AUTO_MIGRATE", "false")

	assert.Equal(t, "Current version: <none>\n", executeMigrate(t, "current"))

	assert.Equal(t, "Database is at version: "+persistence.MigrationDropIxUsersID+"\n", executeMigrate(t, "up"))
	assert.Equal(t, "Current version: "+persistence.MigrationDropIxUsersID+"\n", executeMigrate(t, "current"))

	assert.Equal(t, "Rolled back, database is at version: "+persistence.MigrationStressTests+"\n", executeMigrate(t, "down"))
	assert.Equal(t, "Current version: "+persistence.MigrationStressTests+"\n", executeMigrate(t, "current"))
}
