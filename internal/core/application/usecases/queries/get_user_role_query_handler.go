package queries

import (
	"context"
	"database/sql"
	"errors"

	"zapshift/internal/core/domain/model/user"
	"zapshift/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetUserRoleQueryHandler struct {
	db *gorm.DB
}

func NewGetUserRoleQueryHandler(db *gorm.DB) GetUserRoleQueryHandler {
	return GetUserRoleQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when no account uses the e-mail.
func (h GetUserRoleQueryHandler) Handle(ctx context.Context, query GetUserRoleQuery) (user.Role, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}

	var raw string
	err := h.db.WithContext(ctx).
		Raw(`SELECT role FROM users WHERE email = ?`, query.Email().String()).
		Row().
		Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errs.NewObjectNotFoundError("user", query.Email().String())
	}
	if err != nil {
		return "", err
	}

	return user.ParseRole(raw)
}
