package service

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"schedule-board/internal/domain"
)

// SortDirection is the order applied by SortUsers.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortState tracks the active sort column and direction the way a clickable
// table header behaves: clicking the same column flips the direction,
// clicking a new column resets it to ascending.
type SortState struct {
	Key       string
	Direction SortDirection
}

func (s *SortState) Toggle(key string) {
	if s.Key == key && s.Direction == SortAsc {
		s.Direction = SortDesc
	} else {
		s.Direction = SortAsc
	}
	s.Key = key
}

// FilterUsers returns the users whose fields contain text, case-insensitive.
// Empty text passes the input through unchanged. With a key, only that field
// is matched; without one, a user matches if any of name, phone or email
// contains the text.
func FilterUsers(users []domain.User, key, text string) []domain.User {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return users
	}

	matched := make([]domain.User, 0, len(users))
	for _, u := range users {
		if key != "" {
			if strings.Contains(strings.ToLower(userField(u, key)), text) {
				matched = append(matched, u)
			}
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), text) ||
			strings.Contains(strings.ToLower(u.Phone), text) ||
			strings.Contains(strings.ToLower(u.Email), text) {
			matched = append(matched, u)
		}
	}
	return matched
}

// SortUsers returns a copy of users ordered by the given field using
// locale-aware collation. An empty key preserves the input order.
func SortUsers(users []domain.User, key string, direction SortDirection) []domain.User {
	if key == "" {
		return users
	}

	sorted := make([]domain.User, len(users))
	copy(sorted, users)

	c := collate.New(language.English)
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := c.CompareString(userField(sorted[i], key), userField(sorted[j], key))
		if direction == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

func userField(u domain.User, key string) string {
	switch key {
	case "name":
		return u.Name
	case "address":
		return u.Address
	case "phone":
		return u.Phone
	case "email":
		return u.Email
	default:
		return ""
	}
}
