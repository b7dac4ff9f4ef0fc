package hierarchy

import "sort"

// ExpansionSet holds the ids of expanded tree nodes. It is view state only
// and is never written to the store.
type ExpansionSet map[string]struct{}

// NewExpansionSet returns a set containing ids.
func NewExpansionSet(ids ...string) ExpansionSet {
	s := make(ExpansionSet, len(ids))
	s.Expand(ids...)
	return s
}

// Has reports whether id is expanded. Safe on a nil set.
func (s ExpansionSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips id and reports whether it is expanded afterwards.
func (s ExpansionSet) Toggle(id string) bool {
	if s.Has(id) {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// Expand adds ids to the set.
func (s ExpansionSet) Expand(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// ExpandTo expands every ancestor of id so the page becomes visible in the
// tree. The set is left untouched when the hierarchy is malformed.
func (s ExpansionSet) ExpandTo(pages []Page, id string) error {
	ancestors, err := AncestorIDs(pages, id)
	if err != nil {
		return err
	}
	s.Expand(ancestors...)
	return nil
}

// Clone returns an independent copy.
func (s ExpansionSet) Clone() ExpansionSet {
	out := make(ExpansionSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the expanded ids sorted (for deterministic output)
func (s ExpansionSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
