package hierarchy

import (
	"fmt"
	"strings"
)

// Visibility is the publication state of a page. A page is Published when
// its scope is empty and Private when it is bound to exactly one scope.
type Visibility uint8

const (
	Published Visibility = iota
	Private
)

func (v Visibility) String() string {
	if v == Private {
		return "private"
	}
	return "published"
}

func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Visibility) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Scoped reports whether pages of this visibility carry a scope id.
func (v Visibility) Scoped() bool { return v == Private }

// ParseMode parses the tree mode names used on the command line.
func ParseMode(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "private":
		return Private, nil
	case "public", "published":
		return Published, nil
	default:
		return Published, fmt.Errorf("unknown mode %q (want private or public)", s)
	}
}

// Classify derives the visibility of p from its scope.
func Classify(p Page) Visibility {
	if p.ScopeID != nil {
		return Private
	}
	return Published
}

// IsPrivate reports whether p is restricted to a scope.
func IsPrivate(p Page) bool { return Classify(p) == Private }

// TogglePublish returns the scope p should be stored with after a
// publish/unpublish action: a private page becomes published (nil), a
// published page becomes private to ownScope.
func TogglePublish(p Page, ownScope string) *string {
	if IsPrivate(p) {
		return nil
	}
	scope := ownScope
	return &scope
}
