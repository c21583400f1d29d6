package queries

import (
	"context"

	"zapshift/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SearchUsersQueryHandler struct {
	db *gorm.DB
}

func NewSearchUsersQueryHandler(db *gorm.DB) SearchUsersQueryHandler {
	return SearchUsersQueryHandler{db: db}
}

func (h SearchUsersQueryHandler) Handle(ctx context.Context, query SearchUsersQuery) ([]UserResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pattern := query.pattern()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, email, photo_url, role, created_at
		FROM users
		WHERE name ILIKE ? OR email ILIKE ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, pattern, pattern, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]UserResponse, 0, query.Limit())
	for rows.Next() {
		var (
			u  UserResponse
			id uuid.UUID
		)
		if err = rows.Scan(&id, &u.Name, &u.Email, &u.PhotoURL, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}

		if u.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		u.CreatedAt = u.CreatedAt.UTC()
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
