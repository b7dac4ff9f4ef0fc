// Package hierarchy turns the flat list of wiki pages into the navigable
// forest the tree view draws, resolves breadcrumbs and ancestor chains, and
// classifies page visibility. Only LoadPages and LoadAllPages touch the store.
package hierarchy

// Page is a lightweight page representation decoupled from DB types
type Page struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	ParentID  *string `json:"parent_id"`
	SortOrder int     `json:"sort_order"`
	ScopeID   *string `json:"scope_id"` // nil = published
	OwnerID   string  `json:"owner_id"`
	CreatedAt int64   `json:"created_at"` // Unix millis
	UpdatedAt int64   `json:"updated_at"` // Unix millis

	// Display payload, not interpreted here.
	Description  *string `json:"description,omitempty"`
	Icon         *string `json:"icon,omitempty"`
	Content      *string `json:"content,omitempty"`
	ShowChildren bool    `json:"show_children"`
	ActionLabel  *string `json:"action_label,omitempty"`
}

// IsRoot reports whether the page has no parent reference at all.
// A page whose parent is missing from the input is still projected as a
// root, but IsRoot only looks at the record itself.
func (p Page) IsRoot() bool {
	return p.ParentID == nil
}

func (p Page) parentKey() string {
	if p.ParentID == nil {
		return ""
	}
	return *p.ParentID
}

// index maps id -> position of the first page carrying that id.
func index(pages []Page) map[string]int {
	idx := make(map[string]int, len(pages))
	for i, p := range pages {
		if _, dup := idx[p.ID]; dup {
			continue
		}
		idx[p.ID] = i
	}
	return idx
}
