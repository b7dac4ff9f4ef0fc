package hierarchy

import "wikitree/internal/db"

// FromRecords converts store rows into hierarchy pages, keeping their order.
func FromRecords(rows []db.Page) []Page {
	pages := make([]Page, 0, len(rows))
	for _, r := range rows {
		pages = append(pages, FromRecord(r))
	}
	return pages
}

// FromRecord converts a single store row.
func FromRecord(r db.Page) Page {
	return Page{
		ID:           r.ID,
		Title:        r.Title,
		ParentID:     copyString(r.ParentID),
		SortOrder:    r.SortOrder,
		ScopeID:      copyString(r.ScopeID),
		OwnerID:      r.OwnerID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Description:  copyString(r.Description),
		Icon:         copyString(r.Icon),
		Content:      copyString(r.Content),
		ShowChildren: r.ShowChildren,
		ActionLabel:  copyString(r.ActionLabel),
	}
}

// LoadPages fetches the pages of one visibility from the store.
func LoadPages(d *db.DB, v Visibility, scopeID string) ([]Page, error) {
	filter := db.PageFilter{Scoped: v.Scoped()}
	if v.Scoped() {
		filter.ScopeID = scopeID
	}
	rows, err := d.QueryPages(filter)
	if err != nil {
		return nil, err
	}
	return FromRecords(rows), nil
}

// LoadAllPages fetches every page regardless of visibility.
func LoadAllPages(d *db.DB) ([]Page, error) {
	rows, err := d.AllPages()
	if err != nil {
		return nil, err
	}
	return FromRecords(rows), nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
