// ABOUTME: Helpers shared by commands: config lookup, database open and commit
// ABOUTME: Commit takes the backup strictly before the mutation is written
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/harper/kaomoji/internal/backup"
	"github.com/harper/kaomoji/internal/config"
	"github.com/harper/kaomoji/internal/db"
	"github.com/spf13/cobra"
)

type configKey struct{}

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the configuration resolved for this invocation.
func configFrom(cmd *cobra.Command) config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

// openDatabase loads the configured database. A database file that does not
// exist yet is an empty database when create is set, and an error otherwise.
func openDatabase(cfg config.Config, create bool) (*db.Database, error) {
	path := cfg.DatabaseFilename
	if create {
		database, err := db.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if database.Len() == 0 {
			slog.Debug("database is empty", "path", path)
		}
		return database, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: database %s (create it with 'kaomoji add')", db.ErrNotFound, path)
	}
	database, err := db.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// commit applies mutate, backs up the on-disk database and writes the result.
func commit(cfg config.Config, database *db.Database, mutate func() error) error {
	return backup.Commit(database, cfg.Backup, time.Now(), mutate)
}

// readCode returns arg, or the first line of stdin when arg is "-".
func readCode(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read kaomoji from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
