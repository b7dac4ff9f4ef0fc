package db

import (
	"errors"
	"testing"
)

func TestComments_Lifecycle(t *testing.T) {
	d := setupTestDB(t)
	p := mustInsert(t, d, "alice", NewPage{Title: "Page"})

	first, err := d.InsertComment("bob", p.ID, "  first  ")
	if err != nil {
		t.Fatalf("InsertComment: %v", err)
	}
	if first.Content != "first" {
		t.Errorf("content = %q, want trimmed %q", first.Content, "first")
	}
	second, err := d.InsertComment("alice", p.ID, "second")
	if err != nil {
		t.Fatalf("InsertComment: %v", err)
	}

	got, err := d.ListComments(p.ID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("expected [first second] oldest first, got %+v", got)
	}

	if err := d.DeleteComment("alice", first.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("deleting another user's comment: got %v, want ErrForbidden", err)
	}
	if err := d.DeleteComment("bob", first.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}

	got, err = d.ListComments(p.ID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(got) != 1 || got[0].ID != second.ID {
		t.Errorf("expected only the second comment, got %+v", got)
	}
}

func TestGetComment(t *testing.T) {
	d := setupTestDB(t)
	p := mustInsert(t, d, "alice", NewPage{Title: "Page"})
	c, err := d.InsertComment("bob", p.ID, "hello")
	if err != nil {
		t.Fatalf("InsertComment: %v", err)
	}

	got, err := d.GetComment(c.ID)
	if err != nil {
		t.Fatalf("GetComment: %v", err)
	}
	if *got != *c {
		t.Errorf("got %+v, want %+v", *got, *c)
	}

	if _, err := d.GetComment("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing comment: got %v, want ErrNotFound", err)
	}
}

func TestInsertComment_Rejections(t *testing.T) {
	d := setupTestDB(t)
	p := mustInsert(t, d, "alice", NewPage{Title: "Page"})

	tests := []struct {
		name    string
		actor   string
		pageID  string
		content string
		want    error
	}{
		{"blank content", "bob", p.ID, "   ", ErrInvalid},
		{"missing page", "bob", "missing", "hello", ErrNotFound},
		{"no actor", "", p.ID, "hello", ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.InsertComment(tt.actor, tt.pageID, tt.content)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReactions_Lifecycle(t *testing.T) {
	d := setupTestDB(t)
	p := mustInsert(t, d, "alice", NewPage{Title: "Page"})
	c1, err := d.InsertComment("bob", p.ID, "one")
	if err != nil {
		t.Fatalf("InsertComment: %v", err)
	}
	c2, err := d.InsertComment("bob", p.ID, "two")
	if err != nil {
		t.Fatalf("InsertComment: %v", err)
	}

	r1, err := d.InsertReaction("alice", c1.ID, "👍")
	if err != nil {
		t.Fatalf("InsertReaction: %v", err)
	}
	if _, err := d.InsertReaction("bob", c2.ID, "🎉"); err != nil {
		t.Fatalf("InsertReaction: %v", err)
	}

	got, err := d.ListReactions(c1.ID)
	if err != nil {
		t.Fatalf("ListReactions: %v", err)
	}
	if len(got) != 1 || got[0].Emoji != "👍" {
		t.Errorf("expected one 👍 on c1, got %+v", got)
	}

	got, err = d.ListReactions(c1.ID, c2.ID)
	if err != nil {
		t.Fatalf("ListReactions: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 reactions across both comments, got %d", len(got))
	}

	none, err := d.ListReactions()
	if err != nil {
		t.Fatalf("ListReactions(): %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no reactions for no ids, got %+v", none)
	}

	if err := d.DeleteReaction("bob", r1.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("deleting another user's reaction: got %v, want ErrForbidden", err)
	}
	if err := d.DeleteReaction("alice", r1.ID); err != nil {
		t.Fatalf("DeleteReaction: %v", err)
	}

	if _, err := d.InsertReaction("alice", "missing", "👍"); !errors.Is(err, ErrNotFound) {
		t.Errorf("reaction on missing comment: got %v, want ErrNotFound", err)
	}
	if _, err := d.InsertReaction("alice", c1.ID, ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty emoji: got %v, want ErrInvalid", err)
	}
}

func TestDeleteComment_CascadesReactions(t *testing.T) {
	d := setupTestDB(t)
	p := mustInsert(t, d, "alice", NewPage{Title: "Page"})
	c, err := d.InsertComment("bob", p.ID, "hi")
	if err != nil {
		t.Fatalf("InsertComment: %v", err)
	}
	if _, err := d.InsertReaction("alice", c.ID, "❤️"); err != nil {
		t.Fatalf("InsertReaction: %v", err)
	}

	if err := d.DeleteComment("bob", c.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}

	got, err := d.ListReactions(c.ID)
	if err != nil {
		t.Fatalf("ListReactions: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("reactions should be gone with their comment, got %+v", got)
	}
}
