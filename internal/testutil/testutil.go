// Package testutil provides shared test helpers: config files and an in-memory deck store.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig writes a config file that points the sqlite database, audio,
// exports and backups at tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"audio", "exports", "backups"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`database:
  driver: sqlite3
  path: %s
audio:
  directory: %s
exports:
  directory: %s
backups:
  directory: %s
log:
  level: info
  format: text
`,
		filepath.Join(tmpDir, "dearbones.db"),
		filepath.Join(tmpDir, "audio"),
		filepath.Join(tmpDir, "exports"),
		filepath.Join(tmpDir, "backups"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WriteFile writes content to name under dir and returns the full path.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

// WAVHeader returns the first bytes of a RIFF WAVE file, enough for content sniffing.
func WAVHeader() []byte {
	return []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00\x44\xac\x00\x00\x88\x58\x01\x00\x02\x00\x10\x00data\x00\x00\x00\x00")
}
