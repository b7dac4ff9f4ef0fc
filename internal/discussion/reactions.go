// Package discussion holds the pure rules behind page comments and emoji
// reactions: grouping reactions for display and deciding what a click on an
// emoji does.
package discussion

import (
	"errors"
	"strings"
	"unicode/utf8"

	"wikitree/internal/db"
)

// Palette is the set of emoji offered for reactions.
var Palette = []string{"👍", "❤️", "😄", "🎉", "🤔", "👀"}

// MaxCommentLength bounds comment bodies in runes.
const MaxCommentLength = 10000

var (
	ErrEmptyComment   = errors.New("comment is empty")
	ErrCommentTooLong = errors.New("comment is too long")
	ErrUnknownEmoji   = errors.New("emoji is not in the reaction palette")
)

// Group is the display form of every reaction with one emoji on a comment.
type Group struct {
	Emoji  string   `json:"emoji"`
	Count  int      `json:"count"`
	HasOwn bool     `json:"has_own"`
	IDs    []string `json:"ids"`
}

// GroupReactions collects reactions by emoji in first-seen order. HasOwn marks
// groups containing a reaction by currentUser.
func GroupReactions(reactions []db.Reaction, currentUser string) []Group {
	groups := []Group{}
	pos := make(map[string]int)
	for _, r := range reactions {
		i, ok := pos[r.Emoji]
		if !ok {
			i = len(groups)
			pos[r.Emoji] = i
			groups = append(groups, Group{Emoji: r.Emoji})
		}
		g := &groups[i]
		g.Count++
		g.IDs = append(g.IDs, r.ID)
		if r.OwnerID == currentUser {
			g.HasOwn = true
		}
	}
	return groups
}

// ByComment splits reactions by their comment id.
func ByComment(reactions []db.Reaction) map[string][]db.Reaction {
	out := make(map[string][]db.Reaction)
	for _, r := range reactions {
		out[r.CommentID] = append(out[r.CommentID], r)
	}
	return out
}

// Action is the outcome of clicking an emoji: either remove the user's
// existing reaction or add a new one.
type Action struct {
	Remove     bool
	ReactionID string
}

// Toggle decides what a click on emoji by user does against the reactions
// already on the comment.
func Toggle(reactions []db.Reaction, user, emoji string) Action {
	for _, r := range reactions {
		if r.OwnerID == user && r.Emoji == emoji {
			return Action{Remove: true, ReactionID: r.ID}
		}
	}
	return Action{}
}

// InPalette reports whether emoji is one of the offered reactions.
func InPalette(emoji string) bool {
	for _, e := range Palette {
		if e == emoji {
			return true
		}
	}
	return false
}

// NormalizeComment trims content and checks it can be stored.
func NormalizeComment(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyComment
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return "", ErrCommentTooLong
	}
	return content, nil
}
