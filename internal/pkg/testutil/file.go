package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteJSONFile marshals v into a file under a per-test temporary directory and returns its path.
func WriteJSONFile(t *testing.T, name string, v any) string {
	t.Helper()

	content, err := json.Marshal(v)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0600))

	return path
}
