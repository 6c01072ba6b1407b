package entity

import (
	"strings"
	"time"
	"unicode"
)

// Post is a published article. Category is always stored normalized via
// NormalizeCategory; lookups normalize the query the same way before
// comparing. Comments is populated on demand from the comments table in
// creation order; it is derived, never cached on the post row.
type Post struct {
	ID        string
	Title     string
	Category  string
	Content   string
	AuthorID  string
	Author    *User
	Comments  []Comment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment belongs to exactly one post. Only the author may change or
// remove it.
type Comment struct {
	ID        string
	Text      string
	AuthorID  string
	Author    *User
	PostID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeCategory strips all whitespace and lower-cases the category so
// that " Tech News " and "technews" name the same filter key.
func NormalizeCategory(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
