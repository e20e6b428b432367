// ABOUTME: Keyword substring search over a loaded database
// ABOUTME: Case-insensitive, results ordered by code
package db

import "strings"

// Search returns the records with a keyword containing term, ignoring case.
// An empty term matches every record.
func (d *Database) Search(term string) []*Record {
	term = strings.ToLower(strings.TrimSpace(term))
	var matches []*Record
	for _, r := range d.entries {
		if term == "" || r.matches(term) {
			matches = append(matches, r)
		}
	}
	sortByCode(matches)
	return matches
}

func (r *Record) matches(lowerTerm string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(strings.ToLower(kw), lowerTerm) {
			return true
		}
	}
	return false
}

// KeywordCounts returns how many records carry each keyword.
func (d *Database) KeywordCounts() map[string]int {
	counts := make(map[string]int)
	for _, r := range d.entries {
		for _, kw := range r.keywords {
			counts[kw]++
		}
	}
	return counts
}
