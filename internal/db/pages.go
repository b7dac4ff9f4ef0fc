package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const pageColumns = `id, title, content, description, icon, parent_id, sort_order,
	show_children, action_label, scope_id, owner_id, created_at, updated_at`

// scanPage scans a row into a Page. The row must have pageColumns in order.
func scanPage(scanner interface{ Scan(dest ...any) error }) (Page, error) {
	var p Page
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.Description, &p.Icon, &p.ParentID, &p.SortOrder,
		&p.ShowChildren, &p.ActionLabel, &p.ScopeID, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (d *DB) queryPages(query string, args ...any) ([]Page, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []Page{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// QueryPages returns the private or published pages ordered by sort_order.
// Equal sort orders come back in creation order.
func (d *DB) QueryPages(filter PageFilter) ([]Page, error) {
	where := "scope_id IS NULL"
	var args []any
	if filter.Scoped {
		where = "scope_id IS NOT NULL"
		if filter.ScopeID != "" {
			where = "scope_id = ?"
			args = append(args, filter.ScopeID)
		}
	}
	pages, err := d.queryPages(`SELECT `+pageColumns+` FROM pages WHERE `+where+`
		ORDER BY sort_order ASC, created_at ASC, rowid ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	return pages, nil
}

// AllPages returns every page regardless of visibility, in the same order as QueryPages
func (d *DB) AllPages() ([]Page, error) {
	pages, err := d.queryPages(`SELECT ` + pageColumns + ` FROM pages
		ORDER BY sort_order ASC, created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	return pages, nil
}

// GetPage returns a single page by ID. Missing pages yield ErrNotFound.
func (d *DB) GetPage(id string) (*Page, error) {
	row := d.conn.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)
	p, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get page %s: %w", id, err)
	}
	return &p, nil
}

// SearchByIDPrefix finds pages whose ID starts with the given prefix.
func (d *DB) SearchByIDPrefix(prefix string, limit int) ([]Page, error) {
	return d.queryPages(`SELECT `+pageColumns+` FROM pages WHERE id LIKE ? ORDER BY id LIMIT ?`,
		stripLikeWildcards(prefix)+"%", limit)
}

// InsertPage creates a page owned by actor and returns the stored row.
func (d *DB) InsertPage(actor string, np NewPage) (*Page, error) {
	title := strings.TrimSpace(np.Title)
	if title == "" {
		return nil, fmt.Errorf("insert page: title is required: %w", ErrInvalid)
	}
	if actor == "" {
		return nil, fmt.Errorf("insert page: no actor: %w", ErrForbidden)
	}

	now := d.nowMillis()
	p := Page{
		ID:           uuid.New().String(),
		Title:        title,
		Content:      nullString(np.Content),
		Description:  nullString(np.Description),
		Icon:         nullString(np.Icon),
		ParentID:     np.ParentID,
		SortOrder:    np.SortOrder,
		ShowChildren: np.ShowChildren,
		ActionLabel:  nullString(np.ActionLabel),
		ScopeID:      np.ScopeID,
		OwnerID:      actor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := d.conn.Exec(`INSERT INTO pages (`+pageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Content, p.Description, p.Icon, p.ParentID, p.SortOrder,
		p.ShowChildren, p.ActionLabel, p.ScopeID, p.OwnerID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert page: %w", err)
	}
	return &p, nil
}

// UpdatePage applies a partial update to a page owned by actor.
func (d *DB) UpdatePage(actor, id string, upd PageUpdate) error {
	var sets []string
	var args []any

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return fmt.Errorf("update page %s: title is required: %w", id, ErrInvalid)
		}
		sets = append(sets, "title = ?")
		args = append(args, title)
	}
	for _, f := range []struct {
		col string
		val *string
	}{
		{"content", upd.Content},
		{"description", upd.Description},
		{"icon", upd.Icon},
		{"action_label", upd.ActionLabel},
	} {
		if f.val != nil {
			sets = append(sets, f.col+" = ?")
			args = append(args, nullString(*f.val))
		}
	}
	if upd.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *upd.SortOrder)
	}
	if upd.ShowChildren != nil {
		sets = append(sets, "show_children = ?")
		args = append(args, *upd.ShowChildren)
	}
	if len(sets) == 0 {
		return nil
	}
	return d.updateOwned(actor, id, "update page", sets, args)
}

// MovePage changes the parent of a page; nil moves it to the root.
// Cycle checks are the caller's job since they need the whole page set.
func (d *DB) MovePage(actor, id string, parentID *string) error {
	if parentID != nil && *parentID == id {
		return fmt.Errorf("move page %s: page cannot be its own parent: %w", id, ErrInvalid)
	}
	return d.updateOwned(actor, id, "move page", []string{"parent_id = ?"}, []any{parentID})
}

// SetScope stores a new visibility scope; nil publishes the page.
func (d *DB) SetScope(actor, id string, scopeID *string) error {
	return d.updateOwned(actor, id, "set scope", []string{"scope_id = ?"}, []any{scopeID})
}

// DeletePage removes a page owned by actor. Its comments and their reactions
// are cascade-deleted by SQLite; child pages are left in place.
func (d *DB) DeletePage(actor, id string) error {
	if err := d.checkOwner("pages", actor, id, "delete page"); err != nil {
		return err
	}
	if _, err := d.conn.Exec(`DELETE FROM pages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	return nil
}

func (d *DB) updateOwned(actor, id, op string, sets []string, args []any) error {
	if err := d.checkOwner("pages", actor, id, op); err != nil {
		return err
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, d.nowMillis(), id)
	if _, err := d.conn.Exec(`UPDATE pages SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
	return nil
}

// checkOwner enforces the insert/update/delete OWN policy of every table.
func (d *DB) checkOwner(table, actor, id, op string) error {
	var owner string
	err := d.conn.QueryRow(`SELECT owner_id FROM `+table+` WHERE id = ?`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
	if owner != actor {
		return fmt.Errorf("%s %s: owned by %s: %w", op, id, owner, ErrForbidden)
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stripLikeWildcards(s string) string {
	r := strings.NewReplacer(`%`, ``, `_`, ``)
	return r.Replace(s)
}
