package db

// Page represents a row in the pages table
type Page struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Content      *string `json:"content"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon"`
	ParentID     *string `json:"parent_id"`
	SortOrder    int     `json:"sort_order"`
	ShowChildren bool    `json:"show_children"`
	ActionLabel  *string `json:"action_label"`
	ScopeID      *string `json:"scope_id"` // nil = published
	OwnerID      string  `json:"owner_id"`
	CreatedAt    int64   `json:"created_at"` // Unix millis
	UpdatedAt    int64   `json:"updated_at"` // Unix millis
}

// Comment represents a row in the comments table
type Comment struct {
	ID        string `json:"id"`
	PageID    string `json:"page_id"`
	Content   string `json:"content"`
	OwnerID   string `json:"owner_id"`
	CreatedAt int64  `json:"created_at"`
}

// Reaction represents a row in the reactions table
type Reaction struct {
	ID        string `json:"id"`
	CommentID string `json:"comment_id"`
	Emoji     string `json:"emoji"`
	OwnerID   string `json:"owner_id"`
	CreatedAt int64  `json:"created_at"`
}

// NewPage holds the fields for page creation. Empty strings are stored as NULL.
type NewPage struct {
	Title        string
	Content      string
	Description  string
	Icon         string
	ParentID     *string
	SortOrder    int
	ShowChildren bool
	ActionLabel  string
	ScopeID      *string
}

// PageUpdate holds a partial update; nil fields are left unchanged.
// Setting a text field to "" clears it.
type PageUpdate struct {
	Title        *string
	Content      *string
	Description  *string
	Icon         *string
	SortOrder    *int
	ShowChildren *bool
	ActionLabel  *string
}

// Empty reports whether the update changes nothing.
func (u PageUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil && u.Description == nil && u.Icon == nil &&
		u.SortOrder == nil && u.ShowChildren == nil && u.ActionLabel == nil
}

// PageFilter selects pages by visibility. Scoped selects private pages
// (non-null scope); ScopeID additionally narrows them to one scope.
type PageFilter struct {
	Scoped  bool
	ScopeID string
}
