package db

import (
	"strings"
	"unicode"
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "is": true,
	"it": true, "and": true, "or": true, "with": true, "from": true,
	"by": true, "this": true, "that": true, "as": true, "be": true,
}

// BuildFTSQuery preprocesses a natural language query for FTS5.
// Splits on whitespace, removes stopwords and words < 3 chars, trims punctuation,
// quotes each term and joins with " OR ".
func BuildFTSQuery(query string) string {
	words := strings.Fields(query)
	var filtered []string
	for _, w := range words {
		// Trim non-letter/digit chars from both ends
		trimmed := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
		})
		trimmed = strings.ReplaceAll(trimmed, `"`, "")
		if len([]rune(trimmed)) < 3 {
			continue
		}
		if stopwords[strings.ToLower(trimmed)] {
			continue
		}
		filtered = append(filtered, `"`+trimmed+`"`)
	}
	return strings.Join(filtered, " OR ")
}

// SearchPages performs FTS5 search over title, description and content.
// Returns empty slice if the preprocessed query is empty or if FTS table doesn't exist.
func (d *DB) SearchPages(query string) ([]Page, error) {
	ftsQuery := BuildFTSQuery(query)
	if ftsQuery == "" {
		return []Page{}, nil
	}

	pages, err := d.queryPages(`
		SELECT p.id, p.title, p.content, p.description, p.icon, p.parent_id, p.sort_order,
		       p.show_children, p.action_label, p.scope_id, p.owner_id, p.created_at, p.updated_at
		FROM pages p
		JOIN pages_fts fts ON p.rowid = fts.rowid
		WHERE pages_fts MATCH ?
		ORDER BY rank
	`, ftsQuery)
	if err != nil {
		// Gracefully handle missing FTS table
		if strings.Contains(err.Error(), "no such table") {
			return []Page{}, nil
		}
		return nil, err
	}
	return pages, nil
}
