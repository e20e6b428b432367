// ABOUTME: Timestamped database snapshots written next to the database file
// ABOUTME: Creates, lists, filters and restores <path>.<unix>[-N].bkp copies
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/harper/kaomoji/internal/db"
)

const suffix = ".bkp"

// Backup is one snapshot file of a database. Seq counts the earlier backups
// taken in the same second.
type Backup struct {
	Path string
	Time time.Time
	Seq  int
}

// Stamp is the part of the file name that identifies b: the unix time, plus
// -Seq when Seq is not zero.
func (b Backup) Stamp() string {
	return stampFor(b.Time, b.Seq)
}

func stampFor(t time.Time, seq int) string {
	if seq == 0 {
		return strconv.FormatInt(t.Unix(), 10)
	}
	return fmt.Sprintf("%d-%d", t.Unix(), seq)
}

func parseStamp(stamp string) (secs int64, seq int, hasSeq bool, err error) {
	secPart, seqPart, hasSeq := strings.Cut(stamp, "-")
	secs, err = strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return 0, 0, false, err
	}
	if hasSeq {
		seq, err = strconv.Atoi(seqPart)
		if err != nil || seq < 1 {
			return 0, 0, false, fmt.Errorf("bad sequence in %q", stamp)
		}
	}
	return secs, seq, hasSeq, nil
}

// PathFor returns the first backup file name for dbPath at t.
func PathFor(dbPath string, t time.Time) string {
	return pathFor(dbPath, t, 0)
}

func pathFor(dbPath string, t time.Time, seq int) string {
	return dbPath + "." + stampFor(t, seq) + suffix
}

// freePath returns the first backup name for dbPath at t that is not taken.
func freePath(dbPath string, t time.Time) (string, error) {
	for seq := 0; ; seq++ {
		path := pathFor(dbPath, t, seq)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Create snapshots the on-disk state of database. It re-reads the file so
// unsaved in-memory changes never leak into the backup. A backup already
// taken in the same second is kept and the new one gets the next -N suffix.
// Returns db.ErrNotFound when the database has not been written yet.
func Create(database *db.Database, now time.Time) (string, error) {
	onDisk, err := db.Load(database.Path())
	if err != nil {
		return "", err
	}
	path, err := freePath(database.Path(), now)
	if err != nil {
		return "", fmt.Errorf("failed to pick backup name: %w", err)
	}
	if err := onDisk.Write(path); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	slog.Debug("created backup", "path", path, "entries", onDisk.Len())
	return path, nil
}

// Commit applies mutate to the in-memory database, snapshots the file on disk
// when enabled and writes the database. A failed mutate leaves the disk
// untouched. A database that was never written has nothing to snapshot and is
// committed without a backup.
func Commit(database *db.Database, enabled bool, now time.Time, mutate func() error) error {
	if err := mutate(); err != nil {
		return err
	}

	if enabled {
		if err := snapshot(database.Path(), now); err != nil {
			return err
		}
	}

	if err := database.Write(""); err != nil {
		return fmt.Errorf("failed to write database: %w", err)
	}
	return nil
}

func snapshot(dbPath string, now time.Time) error {
	path, err := Create(db.New(dbPath), now)
	switch {
	case errors.Is(err, db.ErrNotFound):
		slog.Debug("nothing to back up", "path", dbPath)
	case err != nil:
		return fmt.Errorf("failed to back up database: %w", err)
	default:
		slog.Info("backed up database", "backup", path)
	}
	return nil
}

// List returns the backups of dbPath, newest first.
func List(dbPath string) ([]Backup, error) {
	matches, err := filepath.Glob(globEscape(dbPath) + ".*" + suffix)
	if err != nil {
		return nil, err
	}
	var backups []Backup
	prefix := filepath.Base(dbPath) + "."
	for _, m := range matches {
		stamp := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), prefix), suffix)
		secs, seq, _, err := parseStamp(stamp)
		if err != nil {
			continue
		}
		backups = append(backups, Backup{Path: m, Time: time.Unix(secs, 0), Seq: seq})
	}
	slices.SortFunc(backups, func(a, b Backup) int {
		if c := b.Time.Compare(a.Time); c != 0 {
			return c
		}
		return b.Seq - a.Seq
	})
	return backups, nil
}

func globEscape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Filter keeps backups taken within [since, until]. Nil bounds are open.
func Filter(backups []Backup, since, until *time.Time) []Backup {
	var out []Backup
	for _, b := range backups {
		if since != nil && b.Time.Before(*since) {
			continue
		}
		if until != nil && b.Time.After(*until) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Find returns the backup named by stamp, or the newest one when stamp is
// "latest". A bare unix timestamp picks the newest backup of that second;
// <unix>-N picks exactly one. backups must be ordered as List returns them.
func Find(backups []Backup, stamp string) (Backup, error) {
	if len(backups) == 0 {
		return Backup{}, fmt.Errorf("%w: no backups", db.ErrNotFound)
	}
	if stamp == "latest" {
		return backups[0], nil
	}
	secs, seq, hasSeq, err := parseStamp(stamp)
	if err != nil {
		return Backup{}, fmt.Errorf("%w: bad timestamp %q", db.ErrInvalidArgument, stamp)
	}
	for _, b := range backups {
		if b.Time.Unix() == secs && (!hasSeq || b.Seq == seq) {
			return b, nil
		}
	}
	return Backup{}, fmt.Errorf("%w: backup %s", db.ErrNotFound, stamp)
}

// Restore overwrites dbPath with the contents of b and returns the restored
// database. When enabled, the current file is backed up after b has been
// read and before it is overwritten.
func Restore(b Backup, dbPath string, enabled bool, now time.Time) (*db.Database, error) {
	restored, err := db.Load(b.Path)
	if err != nil {
		return nil, err
	}
	if enabled {
		if err := snapshot(dbPath, now); err != nil {
			return nil, err
		}
	}
	if err := restored.Write(dbPath); err != nil {
		return nil, err
	}
	if err := restored.Load(dbPath); err != nil {
		return nil, err
	}
	slog.Info("restored database", "from", b.Path, "entries", restored.Len())
	return restored, nil
}
