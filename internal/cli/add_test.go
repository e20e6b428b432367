// ABOUTME: Unit tests for the add and rm commands
// ABOUTME: Tests keyword flags, stdin input, overwrite protection and backups
package cli

import (
	"errors"
	"testing"

	"github.com/harper/kaomoji/internal/backup"
	"github.com/harper/kaomoji/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommand(t *testing.T) {
	t.Run("creates the database", func(t *testing.T) {
		path := setupCLI(t, "")

		out, err := runCLI(t, "", "add", "(^_^)", "-w", "happy, smile", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Added (^_^)")
		assert.Equal(t, "(^_^)\thappy, smile\n", readDB(t, path))

		backups, err := backup.List(path)
		require.NoError(t, err)
		assert.Empty(t, backups, "nothing existed to back up")
	})

	t.Run("accepts long-form keywords", func(t *testing.T) {
		path := setupCLI(t, "")

		_, err := runCLI(t, "", "add", "(-_-)", "--keywords", "meh", "-f", path)
		require.NoError(t, err)
		assert.Equal(t, "(-_-)\tmeh\n", readDB(t, path))
	})

	t.Run("reads the kaomoji from stdin", func(t *testing.T) {
		path := setupCLI(t, "")

		_, err := runCLI(t, "(o_o)\n", "add", "-", "-w", "surprised", "-f", path)
		require.NoError(t, err)
		assert.Equal(t, "(o_o)\tsurprised\n", readDB(t, path))
	})

	t.Run("imports database lines from stdin", func(t *testing.T) {
		path := setupCLI(t, "")

		stdin := "(^_^)\thappy, smile\n\n(-_-)\tmeh\n"
		out, err := runCLI(t, stdin, "add", "-", "-w", "imported", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Added (^_^)")
		assert.Contains(t, out, "Added (-_-)")
		assert.Equal(t, "(-_-)\tmeh, imported\n(^_^)\thappy, smile, imported\n", readDB(t, path))
	})

	t.Run("empty stdin", func(t *testing.T) {
		path := setupCLI(t, "")

		_, err := runCLI(t, "\n", "add", "-", "-f", path)
		assert.True(t, errors.Is(err, db.ErrInvalidArgument))
	})

	t.Run("malformed stdin line", func(t *testing.T) {
		path := setupCLI(t, "")

		_, err := runCLI(t, "(^_^)\thappy\n\tno code\n", "add", "-", "-f", path)
		assert.True(t, errors.Is(err, db.ErrMalformedEntry))
	})

	t.Run("refuses to replace without force", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")

		_, err := runCLI(t, "", "add", "(^_^)", "-w", "joy", "-f", path)
		assert.True(t, errors.Is(err, db.ErrAlreadyExists))
		assert.Equal(t, "(^_^)\thappy\n", readDB(t, path))

		_, err = runCLI(t, "", "add", "(^_^)", "-w", "joy", "--force", "-f", path)
		require.NoError(t, err)
		assert.Equal(t, "(^_^)\tjoy\n", readDB(t, path))

		backups, err := backup.List(path)
		require.NoError(t, err)
		assert.Len(t, backups, 1)
	})

	t.Run("rejects a code with a tab", func(t *testing.T) {
		path := setupCLI(t, "")

		_, err := runCLI(t, "", "add", "a\tb", "-f", path)
		assert.True(t, errors.Is(err, db.ErrInvalidArgument))
	})

	t.Run("rejects no arguments", func(t *testing.T) {
		setupCLI(t, "")

		_, err := runCLI(t, "", "add")
		if err == nil {
			t.Fatal("expected error when no arguments provided, got nil")
		}
	})
}

func TestRmCommand(t *testing.T) {
	t.Run("removes and backs up", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n(-_-)\tmeh\n")

		out, err := runCLI(t, "", "rm", "(-_-)", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Removed (-_-)")
		assert.Equal(t, "(^_^)\thappy\n", readDB(t, path))

		backups, err := backup.List(path)
		require.NoError(t, err)
		require.Len(t, backups, 1)
		snapshot, err := db.Load(backups[0].Path)
		require.NoError(t, err)
		assert.True(t, snapshot.Exists("(-_-)"))
	})

	t.Run("no backup when disabled", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")

		_, err := runCLI(t, "", "remove", "(^_^)", "--no-backup", "-f", path)
		require.NoError(t, err)

		backups, err := backup.List(path)
		require.NoError(t, err)
		assert.Empty(t, backups)
	})

	t.Run("missing kaomoji", func(t *testing.T) {
		path := setupCLI(t, "(^_^)\thappy\n")

		_, err := runCLI(t, "", "rm", "(T_T)", "-f", path)
		assert.True(t, errors.Is(err, db.ErrNotFound))
	})

	t.Run("missing database", func(t *testing.T) {
		path := setupCLI(t, "")

		_, err := runCLI(t, "", "rm", "(T_T)", "-f", path)
		assert.True(t, errors.Is(err, db.ErrNotFound))
	})
}
