package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// InsertComment adds a comment by actor to a page.
func (d *DB) InsertComment(actor, pageID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("insert comment: content is required: %w", ErrInvalid)
	}
	if actor == "" {
		return nil, fmt.Errorf("insert comment: no actor: %w", ErrForbidden)
	}
	if _, err := d.GetPage(pageID); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	c := Comment{
		ID:        uuid.New().String(),
		PageID:    pageID,
		Content:   content,
		OwnerID:   actor,
		CreatedAt: d.nowMillis(),
	}
	_, err := d.conn.Exec(
		`INSERT INTO comments (id, page_id, content, owner_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.PageID, c.Content, c.OwnerID, c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &c, nil
}

// GetComment returns a single comment by ID.
func (d *DB) GetComment(id string) (*Comment, error) {
	var c Comment
	err := d.conn.QueryRow(
		`SELECT id, page_id, content, owner_id, created_at FROM comments WHERE id = ?`, id,
	).Scan(&c.ID, &c.PageID, &c.Content, &c.OwnerID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get comment %s: %w", id, err)
	}
	return &c, nil
}

// ListComments returns the comments of a page, oldest first.
func (d *DB) ListComments(pageID string) ([]Comment, error) {
	rows, err := d.conn.Query(`
		SELECT id, page_id, content, owner_id, created_at
		FROM comments WHERE page_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PageID, &c.Content, &c.OwnerID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// DeleteComment removes a comment owned by actor together with its reactions.
func (d *DB) DeleteComment(actor, id string) error {
	if err := d.checkOwner("comments", actor, id, "delete comment"); err != nil {
		return err
	}
	if _, err := d.conn.Exec(`DELETE FROM comments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete comment %s: %w", id, err)
	}
	return nil
}
