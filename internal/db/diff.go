// ABOUTME: Set-algebra diff modes built on Database.Compare
// ABOUTME: Additions, exclusive, intersection and symmetric deltas keyed by code
package db

import (
	"fmt"
	"slices"
	"strings"
)

// DiffMode selects which delta Diff computes.
type DiffMode string

const (
	// DiffAdditions is what b would add to a.
	DiffAdditions DiffMode = "additions"
	// DiffExclusive is what a has that b lacks.
	DiffExclusive DiffMode = "exclusive"
	// DiffIntersection is the codes both hold, with their shared keywords.
	DiffIntersection DiffMode = "intersection"
	// DiffSymmetric is additions and exclusive merged per code.
	DiffSymmetric DiffMode = "symmetric"
)

// DiffModes lists every mode in display order.
var DiffModes = []DiffMode{DiffAdditions, DiffExclusive, DiffIntersection, DiffSymmetric}

// ParseDiffMode maps a mode name to a DiffMode.
func ParseDiffMode(s string) (DiffMode, error) {
	mode := DiffMode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(DiffModes, mode) {
		return mode, nil
	}
	return "", fmt.Errorf("%w: unknown diff mode %q", ErrInvalidArgument, s)
}

// Diff computes the delta between a and b for the given mode.
func Diff(a, b *Database, mode DiffMode) (map[string]*Record, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil database", ErrInvalidArgument)
	}
	switch mode {
	case DiffAdditions:
		return a.Compare(b)
	case DiffExclusive:
		return b.Compare(a)
	case DiffIntersection:
		return intersect(a, b), nil
	case DiffSymmetric:
		added, err := a.Compare(b)
		if err != nil {
			return nil, err
		}
		removed, err := b.Compare(a)
		if err != nil {
			return nil, err
		}
		for code, r := range removed {
			if existing, ok := added[code]; ok {
				existing.union(r.keywords)
				continue
			}
			added[code] = r
		}
		return added, nil
	default:
		return nil, fmt.Errorf("%w: unknown diff mode %q", ErrInvalidArgument, mode)
	}
}

func intersect(a, b *Database) map[string]*Record {
	common := make(map[string]*Record)
	for code, ours := range a.entries {
		theirs, ok := b.entries[code]
		if !ok {
			continue
		}
		r := &Record{code: code, identity: ours.identity}
		for _, kw := range ours.keywords {
			if theirs.HasKeyword(kw) {
				r.keywords = append(r.keywords, kw)
			}
		}
		common[code] = r
	}
	return common
}

// SortedRecords returns the values of a delta sorted by code.
func SortedRecords(delta map[string]*Record) []*Record {
	records := make([]*Record, 0, len(delta))
	for _, r := range delta {
		records = append(records, r)
	}
	sortByCode(records)
	return records
}
