// ABOUTME: Unit tests for the backups and config commands
// ABOUTME: Lists and restores snapshots, writes and prints config files
package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/kaomoji/internal/backup"
	"github.com/harper/kaomoji/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupsCommand(t *testing.T) {
	t.Run("no backups", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")

		out, err := runCLI(t, "", "backups", "list", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "No backups")
	})

	t.Run("list with date filters", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")
		database, err := db.Load(path)
		require.NoError(t, err)
		old, err := backup.Create(database, time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local))
		require.NoError(t, err)
		recent, err := backup.Create(database, time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local))
		require.NoError(t, err)

		out, err := runCLI(t, "", "backups", "list", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, old)
		assert.Contains(t, out, recent)

		out, err = runCLI(t, "", "backups", "list", "--since", "2024-06-01", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, recent)
		assert.NotContains(t, out, old)

		out, err = runCLI(t, "", "backups", "list", "--until", "2024-02-01", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, old)
		assert.NotContains(t, out, recent)
	})

	t.Run("invalid date", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")

		_, err := runCLI(t, "", "backups", "list", "--since", "not a date", "-f", path)
		assert.Error(t, err)
	})

	t.Run("restore latest", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")

		_, err := runCLI(t, "", "rm", "(^_^)", "-f", path)
		require.NoError(t, err)
		assert.Empty(t, readDB(t, path))

		out, err := runCLI(t, "", "backups", "restore", "latest", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Restored 1 entries")
		assert.Equal(t, "(^_^)\thappy\n", readDB(t, path))
	})

	t.Run("same second backups are listed and restorable", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")
		database, err := db.Load(path)
		require.NoError(t, err)
		now := time.Unix(1700000000, 0)
		_, err = backup.Create(database, now)
		require.NoError(t, err)

		database.Remove("(^_^)")
		require.NoError(t, database.Write(""))
		second, err := backup.Create(database, now)
		require.NoError(t, err)

		out, err := runCLI(t, "", "backups", "list", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "1700000000-1\t")
		assert.Contains(t, out, second)

		require.NoError(t, os.WriteFile(path, []byte("(-_-)\tmeh\n"), 0644)) //nolint:gosec // Test file permissions
		_, err = runCLI(t, "", "backups", "restore", "1700000000-1", "--no-backup", "-f", path)
		require.NoError(t, err)
		assert.Empty(t, readDB(t, path))
	})

	t.Run("restore unknown timestamp", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")
		database, err := db.Load(path)
		require.NoError(t, err)
		_, err = backup.Create(database, time.Unix(1700000000, 0))
		require.NoError(t, err)

		_, err = runCLI(t, "", "backups", "restore", "42", "-f", path)
		assert.True(t, errors.Is(err, db.ErrNotFound))
	})
}

func TestConfigCommand(t *testing.T) {
	t.Run("path honours --config", func(t *testing.T) {
		path := setupCLI(t, "")
		cfgPath := filepath.Join(filepath.Dir(path), "custom.toml")

		out, err := runCLI(t, "", "config", "path", "--config", cfgPath)
		require.NoError(t, err)
		assert.Equal(t, cfgPath+"\n", out)
	})

	t.Run("init then show", func(t *testing.T) {
		path := setupCLI(t, "")
		cfgPath := filepath.Join(filepath.Dir(path), "conf", "config.toml")

		out, err := runCLI(t, "", "config", "init", "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote "+cfgPath)

		_, err = runCLI(t, "", "config", "init", "--config", cfgPath)
		assert.True(t, errors.Is(err, db.ErrAlreadyExists))

		_, err = runCLI(t, "", "config", "init", "--force", "--config", cfgPath)
		require.NoError(t, err)

		out, err = runCLI(t, "", "config", "show", "--config", cfgPath, "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, `database_filename = "`+path+`"`)
		assert.Contains(t, out, "backup = true")
	})

	t.Run("config file names the database", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")
		cfgPath := filepath.Join(filepath.Dir(path), "config.toml")
		writeConfig(t, cfgPath, "database_filename = \""+path+"\"\nbackup = false\n")

		out, err := runCLI(t, "", "list", "--config", cfgPath)
		require.NoError(t, err)
		assert.Equal(t, "(^_^)\thappy\n", out)

		_, err = runCLI(t, "", "rm", "(^_^)", "--config", cfgPath)
		require.NoError(t, err)
		backups, err := backup.List(path)
		require.NoError(t, err)
		assert.Empty(t, backups, "backups disabled in the config file")
	})

	t.Run("missing --config file is an error", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")
		cfgPath := filepath.Join(filepath.Dir(path), "absent.toml")

		_, err := runCLI(t, "", "list", "--config", cfgPath, "-f", path)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("missing default config file is fine", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")

		out, err := runCLI(t, "", "list", "-f", path)
		require.NoError(t, err)
		assert.Equal(t, "(^_^)\thappy\n", out)
	})

	t.Run("malformed config file", func(t *testing.T) {
		path := setupCLI(t, "")
		cfgPath := filepath.Join(filepath.Dir(path), "config.toml")
		writeConfig(t, cfgPath, "database_filename = [\n")

		_, err := runCLI(t, "", "list", "--config", cfgPath)
		assert.Error(t, err)
	})
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644)) //nolint:gosec // Test file permissions
}
