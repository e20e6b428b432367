// ABOUTME: Flat-file kaomoji database keyed by glyph code
// ABOUTME: Loads, writes and queries the tab-separated record file
package db

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// maxLineSize bounds a single database line.
const maxLineSize = 1 << 20

// Database is an in-memory copy of a kaomoji file. It is not safe for
// concurrent use and assumes exclusive access to its file.
type Database struct {
	path    string
	entries map[string]*Record
}

// New returns an empty database bound to path. Nothing is read or written.
func New(path string) *Database {
	return &Database{
		path:    path,
		entries: make(map[string]*Record),
	}
}

// Load reads the database file at path.
func Load(path string) (*Database, error) {
	d := New(path)
	if err := d.Load(path); err != nil {
		return nil, err
	}
	return d, nil
}

// Open loads path, or returns an empty database bound to path when the file
// does not exist yet.
func Open(path string) (*Database, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return New(path), nil
	}
	return Load(path)
}

// Load replaces all entries with the contents of path and rebinds the
// database to it. On error the database is left unchanged.
func (d *Database) Load(path string) error {
	entries, err := readFile(path)
	if err != nil {
		return err
	}
	d.path = path
	d.entries = entries
	return nil
}

func readFile(path string) (map[string]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: database %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to open database %s: %v", ErrNotFound, path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	entries := make(map[string]*Record)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		entries[r.Code()] = r
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read database %s: %w", path, err)
	}

	slog.Debug("loaded database", "path", path, "entries", len(entries))
	return entries, nil
}

// Write serializes every entry, sorted by code, to path (the database's own
// path when empty), then reloads the entries from what was written. The
// database stays bound to its own path when writing elsewhere.
func (d *Database) Write(path string) error {
	if path == "" {
		path = d.path
	}
	if path == "" {
		return fmt.Errorf("%w: database has no path", ErrInvalidArgument)
	}

	records := d.Records()
	for _, r := range records {
		for _, kw := range r.keywords {
			if err := CheckKeyword(kw); err != nil {
				return fmt.Errorf("cannot write %s: %w", r.code, err)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create database file %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, r := range records {
		if _, err := w.WriteString(r.Serialize()); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	entries, err := readFile(path)
	if err != nil {
		return fmt.Errorf("failed to reload written database: %w", err)
	}
	d.entries = entries

	slog.Debug("wrote database", "path", path, "entries", len(entries))
	return nil
}

// Path returns the backing file location.
func (d *Database) Path() string { return d.path }

// Len returns the number of entries.
func (d *Database) Len() int { return len(d.entries) }

// Exists reports whether code has an entry.
func (d *Database) Exists(code string) bool {
	_, ok := d.entries[strings.TrimSpace(code)]
	return ok
}

// Get returns the stored record for code. Mutating it changes the database.
func (d *Database) Get(code string) (*Record, error) {
	r, ok := d.entries[strings.TrimSpace(code)]
	if !ok {
		return nil, fmt.Errorf("%w: kaomoji %q", ErrNotFound, code)
	}
	return r, nil
}

// GetByIdentity scans all entries for a matching identity.
func (d *Database) GetByIdentity(id Identity) (*Record, error) {
	for _, r := range d.entries {
		if r.Identity() == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: identity %s", ErrNotFound, id)
}

// Insert stores r under its code, replacing any previous entry, and returns
// the stored record.
func (d *Database) Insert(r *Record) *Record {
	d.entries[r.Code()] = r
	return r
}

// Update has the same overwrite semantics as Insert.
func (d *Database) Update(r *Record) *Record {
	return d.Insert(r)
}

// Remove deletes the entry for code and reports whether one existed.
func (d *Database) Remove(code string) bool {
	code = strings.TrimSpace(code)
	if _, ok := d.entries[code]; !ok {
		return false
	}
	delete(d.entries, code)
	return true
}

// Records returns the stored records sorted by code.
func (d *Database) Records() []*Record {
	records := make([]*Record, 0, len(d.entries))
	for _, r := range d.entries {
		records = append(records, r)
	}
	sortByCode(records)
	return records
}

func sortByCode(records []*Record) {
	slices.SortFunc(records, func(a, b *Record) int {
		return strings.Compare(a.Code(), b.Code())
	})
}

// Compare returns what other would add to d: every record whose code d lacks,
// and for shared codes a record holding only the keywords d lacks. Codes
// with nothing new are omitted.
func (d *Database) Compare(other *Database) (map[string]*Record, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: nil database", ErrInvalidArgument)
	}
	delta := make(map[string]*Record)
	for code, theirs := range other.entries {
		ours, ok := d.entries[code]
		if !ok {
			delta[code] = theirs.Clone()
			continue
		}
		var added []string
		for _, kw := range theirs.keywords {
			if !ours.HasKeyword(kw) {
				added = append(added, kw)
			}
		}
		if len(added) > 0 {
			delta[code] = &Record{code: code, identity: theirs.identity, keywords: added}
		}
	}
	return delta, nil
}
