package wiki

import (
	"fmt"

	"wikitree/internal/db"
	"wikitree/internal/discussion"
)

// CommentView is a comment with its reactions grouped for display.
type CommentView struct {
	db.Comment
	Own       bool               `json:"own"`
	Reactions []discussion.Group `json:"reactions"`
}

// Comment adds a comment to a readable page.
func (s *Service) Comment(pageID, content string) (*db.Comment, error) {
	content, err := discussion.NormalizeComment(content)
	if err != nil {
		return nil, fmt.Errorf("comment: %v: %w", err, db.ErrInvalid)
	}
	if _, err := s.Page(pageID); err != nil {
		return nil, err
	}
	return s.store.InsertComment(s.actor, pageID, content)
}

// Comments lists the comments of a page, oldest first.
func (s *Service) Comments(pageID string) ([]CommentView, error) {
	if _, err := s.Page(pageID); err != nil {
		return nil, err
	}
	comments, err := s.store.ListComments(pageID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	reactions, err := s.store.ListReactions(ids...)
	if err != nil {
		return nil, err
	}
	byComment := discussion.ByComment(reactions)

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = CommentView{
			Comment:   c,
			Own:       c.OwnerID == s.actor,
			Reactions: discussion.GroupReactions(byComment[c.ID], s.actor),
		}
	}
	return views, nil
}

// DeleteComment removes a comment the actor wrote.
func (s *Service) DeleteComment(id string) error {
	return s.store.DeleteComment(s.actor, id)
}

// ReactResult reports what a reaction click did.
type ReactResult struct {
	Added    bool         `json:"added"`
	Reaction *db.Reaction `json:"reaction,omitempty"`
}

// React toggles the actor's emoji reaction on a comment. The comment's page
// must be readable.
func (s *Service) React(commentID, emoji string) (*ReactResult, error) {
	if !discussion.InPalette(emoji) {
		return nil, fmt.Errorf("react: %q: %v: %w", emoji, discussion.ErrUnknownEmoji, db.ErrInvalid)
	}
	c, err := s.store.GetComment(commentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Page(c.PageID); err != nil {
		return nil, fmt.Errorf("react: comment %s: %w", commentID, err)
	}
	existing, err := s.store.ListReactions(commentID)
	if err != nil {
		return nil, err
	}

	action := discussion.Toggle(existing, s.actor, emoji)
	if action.Remove {
		if err := s.store.DeleteReaction(s.actor, action.ReactionID); err != nil {
			return nil, err
		}
		return &ReactResult{Added: false}, nil
	}
	r, err := s.store.InsertReaction(s.actor, commentID, emoji)
	if err != nil {
		return nil, err
	}
	return &ReactResult{Added: true, Reaction: r}, nil
}
