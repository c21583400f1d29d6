// Package user models accounts and their roles. Riders and parcel senders are
// matched to accounts by e-mail.
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/errs"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")

type Role string

const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.TrimSpace(raw)); r {
	case RoleUser, RoleRider, RoleAdmin:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", raw))
	}
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	id            kernel.UUID
	name          string
	email         kernel.Email
	photoURL      string
	role          Role
	createdAt     time.Time
	isConstructed bool
}

// NewUser registers an account with the plain user role.
func NewUser(id kernel.UUID, name string, email kernel.Email, photoURL string, createdAt time.Time) (*User, error) {
	if err := errors.Join(id.Validate(), email.Validate()); err != nil {
		return nil, err
	}
	return &User{
		id:            id,
		name:          strings.TrimSpace(name),
		email:         email,
		photoURL:      strings.TrimSpace(photoURL),
		role:          RoleUser,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

func RestoreUser(id kernel.UUID, name string, email kernel.Email, photoURL string, role Role, createdAt time.Time) *User {
	return &User{
		id:            id,
		name:          name,
		email:         email,
		photoURL:      photoURL,
		role:          role,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() kernel.Email {
	return u.email
}

func (u *User) PhotoURL() string {
	return u.photoURL
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}

// ChangeRole is the administrator's override.
func (u *User) ChangeRole(role Role) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	u.role = role
	return nil
}

// PromoteToRider grants the rider role after an approved application. Admins keep
// their role.
func (u *User) PromoteToRider() {
	if u.role == RoleAdmin {
		return
	}
	u.role = RoleRider
}
