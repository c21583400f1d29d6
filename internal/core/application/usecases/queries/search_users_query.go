package queries

import (
	"errors"
	"strings"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/errs"
	"zapshift/internal/pkg/guard"
)

const (
	DefaultUserSearchLimit = 4
	MaxUserSearchLimit     = 50
)

var ErrSearchUsersQueryIsNotConstructed = errors.New(
	"SearchUsersQuery must be created via NewSearchUsersQuery constructor",
)

// SearchUsersQuery finds accounts whose name or e-mail contains the search text,
// ignoring case. Newest accounts come first. An empty text lists the newest accounts.
type SearchUsersQuery struct {
	text  string
	limit int
	guard guard.ConstructorGuard
}

// NewSearchUsersQuery uses DefaultUserSearchLimit when limit is 0.
func NewSearchUsersQuery(text string, limit int) (SearchUsersQuery, error) {
	if limit == 0 {
		limit = DefaultUserSearchLimit
	}
	if limit < 0 || limit > MaxUserSearchLimit {
		return SearchUsersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxUserSearchLimit)
	}
	return SearchUsersQuery{
		text:  strings.TrimSpace(text),
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q SearchUsersQuery) Validate() error {
	return q.guard.Validate(ErrSearchUsersQueryIsNotConstructed)
}

func (q SearchUsersQuery) Text() string {
	return q.text
}

func (q SearchUsersQuery) Limit() int {
	return q.limit
}

// pattern is the ILIKE pattern for Text with LIKE wildcards escaped.
func (q SearchUsersQuery) pattern() string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q.text)
	return "%" + escaped + "%"
}

type UserResponse struct {
	ID        kernel.UUID
	Name      string
	Email     string
	PhotoURL  string
	Role      string
	CreatedAt time.Time
}
