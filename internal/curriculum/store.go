// Package curriculum holds the reference curriculum a dataset is validated
// against.
package curriculum

import (
	"sort"
	"strings"

	"github.com/alexanderramin/uniconvert/internal/domain"
)

// CodeSet is a set of valid equivalence codes.
type CodeSet map[string]struct{}

// Contains reports whether code, trimmed, is in the set.
func (s CodeSet) Contains(code string) bool {
	_, ok := s[strings.TrimSpace(code)]
	return ok
}

// Store is the single source of truth for valid codes. Every Load replaces
// the previous curriculum entirely.
type Store struct {
	entries []domain.CurriculumEntry
	codes   CodeSet
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{codes: CodeSet{}}
}

// Load replaces the curriculum with entries. Codes are trimmed and compared
// case-sensitively; entries with a blank code contribute no code.
func (s *Store) Load(entries []domain.CurriculumEntry) {
	codes := make(CodeSet, len(entries))
	for _, e := range entries {
		code := strings.TrimSpace(e.Code)
		if code == "" {
			continue
		}
		codes[code] = struct{}{}
	}
	s.entries = append([]domain.CurriculumEntry(nil), entries...)
	s.codes = codes
}

// IsEmpty reports whether no curriculum has been loaded, or the last load
// was empty.
func (s *Store) IsEmpty() bool {
	return len(s.entries) == 0
}

// Loaded is the negation of IsEmpty.
func (s *Store) Loaded() bool {
	return !s.IsEmpty()
}

// Contains reports whether code is a valid equivalence code.
func (s *Store) Contains(code string) bool {
	return s.codes.Contains(code)
}

// CodeSet returns the current code set. Callers must not modify it.
func (s *Store) CodeSet() CodeSet {
	return s.codes
}

// Codes returns the valid codes in sorted order.
func (s *Store) Codes() []string {
	out := make([]string, 0, len(s.codes))
	for c := range s.codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Entries returns a copy of the loaded entries in source order.
func (s *Store) Entries() []domain.CurriculumEntry {
	return append([]domain.CurriculumEntry(nil), s.entries...)
}

// Len returns the number of loaded entries.
func (s *Store) Len() int {
	return len(s.entries)
}
