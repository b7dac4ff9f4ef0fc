package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// InsertReaction records actor's emoji reaction on a comment.
func (d *DB) InsertReaction(actor, commentID, emoji string) (*Reaction, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, fmt.Errorf("insert reaction: emoji is required: %w", ErrInvalid)
	}
	if actor == "" {
		return nil, fmt.Errorf("insert reaction: no actor: %w", ErrForbidden)
	}

	var exists int
	err := d.conn.QueryRow(`SELECT 1 FROM comments WHERE id = ?`, commentID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("insert reaction: comment %s: %w", commentID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("insert reaction: %w", err)
	}

	r := Reaction{
		ID:        uuid.New().String(),
		CommentID: commentID,
		Emoji:     emoji,
		OwnerID:   actor,
		CreatedAt: d.nowMillis(),
	}
	_, err = d.conn.Exec(
		`INSERT INTO reactions (id, comment_id, emoji, owner_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.CommentID, r.Emoji, r.OwnerID, r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert reaction: %w", err)
	}
	return &r, nil
}

// ListReactions returns the reactions on the given comments.
func (d *DB) ListReactions(commentIDs ...string) ([]Reaction, error) {
	reactions := []Reaction{}
	if len(commentIDs) == 0 {
		return reactions, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(commentIDs)), ", ")
	args := make([]any, len(commentIDs))
	for i, id := range commentIDs {
		args[i] = id
	}

	rows, err := d.conn.Query(`
		SELECT id, comment_id, emoji, owner_id, created_at
		FROM reactions WHERE comment_id IN (`+placeholders+`)
		ORDER BY created_at ASC, rowid ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r Reaction
		if err := rows.Scan(&r.ID, &r.CommentID, &r.Emoji, &r.OwnerID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		reactions = append(reactions, r)
	}
	return reactions, rows.Err()
}

// DeleteReaction removes a reaction owned by actor.
func (d *DB) DeleteReaction(actor, id string) error {
	if err := d.checkOwner("reactions", actor, id, "delete reaction"); err != nil {
		return err
	}
	if _, err := d.conn.Exec(`DELETE FROM reactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete reaction %s: %w", id, err)
	}
	return nil
}
