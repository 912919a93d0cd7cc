package parser

import (
	"fmt"
	"strings"
)

// scopeState tracks, across the whole document, which dotted paths have
// been declared as tables (explicitly via a header, or implicitly as an
// ancestor of some other path) and which have been assigned a leaf value,
// so the parser can enforce the structural rules in the table-header and
// key-value grammar without needing a resolved Value tree.
type scopeState struct {
	explicitTables map[string]bool // closed by an explicit [x] header
	arrayTables    map[string]bool // opened by [[x]]; each occurrence appends
	autoTables     map[string]bool // created implicitly as an ancestor
	leaves         map[string]bool // assigned a scalar/array/inline-table value
}

func newScopeState() *scopeState {
	return &scopeState{
		explicitTables: map[string]bool{},
		arrayTables:    map[string]bool{},
		autoTables:     map[string]bool{},
		leaves:         map[string]bool{},
	}
}

func ancestors(path string) []string {
	segs := strings.Split(path, ".")
	out := make([]string, 0, len(segs)-1)
	for i := 1; i < len(segs); i++ {
		out = append(out, strings.Join(segs[:i], "."))
	}
	return out
}

// ensureAncestorsAreTables auto-creates every proper ancestor of path as a
// table, failing if one was already declared as a leaf.
func (s *scopeState) ensureAncestorsAreTables(path string) error {
	for _, anc := range ancestors(path) {
		if s.leaves[anc] {
			return fmt.Errorf("cannot descend into %q: already assigned a value", anc)
		}
		if !s.explicitTables[anc] && !s.arrayTables[anc] {
			s.autoTables[anc] = true
		}
	}
	return nil
}

// declareTable processes a `[path]` header.
func (s *scopeState) declareTable(path string, explicit bool) error {
	if err := s.ensureAncestorsAreTables(path); err != nil {
		return err
	}
	if s.leaves[path] {
		return fmt.Errorf("cannot declare table %q: already assigned a value", path)
	}
	if s.explicitTables[path] {
		return fmt.Errorf("table %q redeclared", path)
	}
	if s.arrayTables[path] {
		return fmt.Errorf("table %q redeclared as an array-of-tables target", path)
	}
	if explicit {
		s.explicitTables[path] = true
		delete(s.autoTables, path)
	} else {
		s.autoTables[path] = true
	}
	return nil
}

// declareArrayTable processes a `[[path]]` header. Repeated occurrences are
// expected — each appends a new element — so it is never a "redeclare"
// error, only a conflict with an existing non-array-table use of path. Each
// occurrence opens a fresh element, so bookkeeping for keys declared inside
// a previous element (anything at or under path) is cleared: those keys
// belong to that element's table, not to path itself, and the next element
// is free to redeclare them.
func (s *scopeState) declareArrayTable(path string) error {
	if err := s.ensureAncestorsAreTables(path); err != nil {
		return err
	}
	if s.leaves[path] {
		return fmt.Errorf("cannot declare array-of-tables %q: already assigned a value", path)
	}
	if s.explicitTables[path] {
		return fmt.Errorf("table %q redeclared as an array-of-tables target", path)
	}
	s.arrayTables[path] = true
	s.resetElementScope(path)
	return nil
}

// resetElementScope clears leaf and table bookkeeping for path's interior
// (but not path itself) so a new array-of-tables element starts with no
// memory of the previous element's keys.
func (s *scopeState) resetElementScope(path string) {
	prefix := path + "."
	for k := range s.leaves {
		if strings.HasPrefix(k, prefix) {
			delete(s.leaves, k)
		}
	}
	for k := range s.autoTables {
		if strings.HasPrefix(k, prefix) {
			delete(s.autoTables, k)
		}
	}
	for k := range s.explicitTables {
		if strings.HasPrefix(k, prefix) {
			delete(s.explicitTables, k)
		}
	}
}

// declareLeaf processes a key-value item's full dotted path.
func (s *scopeState) declareLeaf(path string) error {
	if err := s.ensureAncestorsAreTables(path); err != nil {
		return err
	}
	if s.leaves[path] {
		return fmt.Errorf("duplicate key %q", path)
	}
	if s.explicitTables[path] || s.autoTables[path] || s.arrayTables[path] {
		return fmt.Errorf("cannot assign a value to %q: already declared as a table", path)
	}
	s.leaves[path] = true
	return nil
}
