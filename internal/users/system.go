package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/gidroatlas/gidroatlas/pkg/pagination"
)

// System defines the public contract for account management.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, cmd CreateCommand) (*User, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Verify checks a login and password. It returns ErrNotFound for an
	// unknown login and ErrInvalidPassword for a wrong password.
	Verify(ctx context.Context, login, password string) (*User, error)
}
