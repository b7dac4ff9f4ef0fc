package hierarchy

import (
	"errors"
	"fmt"
)

// ErrMalformedHierarchy is returned when a parent walk does not terminate
// within the size of the input, i.e. the parent references form a cycle.
var ErrMalformedHierarchy = errors.New("malformed page hierarchy")

// MalformedHierarchyError carries the page the walk started from and the
// page it was on when the traversal bound was exceeded.
type MalformedHierarchyError struct {
	StartID string
	AtID    string
	Bound   int
}

func (e *MalformedHierarchyError) Error() string {
	return fmt.Sprintf("%v: walking parents of %s exceeded %d steps at %s",
		ErrMalformedHierarchy, e.StartID, e.Bound, e.AtID)
}

func (e *MalformedHierarchyError) Unwrap() error { return ErrMalformedHierarchy }

// Breadcrumb returns the chain from the furthest reachable ancestor down to
// the page itself. An unknown id yields an empty chain. The walk stops at a
// root or at a parent that is not in pages.
func Breadcrumb(pages []Page, id string) ([]Page, error) {
	byID := lookup(pages)
	bound := len(pages)

	var rev []Page
	cur, ok := byID[id]
	for ok {
		if len(rev) == bound {
			return nil, &MalformedHierarchyError{StartID: id, AtID: cur.ID, Bound: bound}
		}
		rev = append(rev, cur)
		if cur.ParentID == nil {
			break
		}
		cur, ok = byID[*cur.ParentID]
	}

	path := make([]Page, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path, nil
}

// AncestorIDs returns the parent ids above id, nearest first, excluding id
// itself. A parent id that does not resolve to a page ends the walk but is
// still included.
func AncestorIDs(pages []Page, id string) ([]string, error) {
	byID := lookup(pages)
	bound := len(pages)

	var ancestors []string
	cur, ok := byID[id]
	for ok && cur.ParentID != nil {
		if len(ancestors) == bound {
			return nil, &MalformedHierarchyError{StartID: id, AtID: cur.ID, Bound: bound}
		}
		ancestors = append(ancestors, *cur.ParentID)
		cur, ok = byID[*cur.ParentID]
	}
	return ancestors, nil
}

// Depth is the number of ancestors above id.
func Depth(pages []Page, id string) (int, error) {
	ancestors, err := AncestorIDs(pages, id)
	if err != nil {
		return 0, err
	}
	return len(ancestors), nil
}

func lookup(pages []Page) map[string]Page {
	byID := make(map[string]Page, len(pages))
	for _, p := range pages {
		if _, dup := byID[p.ID]; dup {
			continue
		}
		byID[p.ID] = p
	}
	return byID
}
