package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// UpdateUserInput carries the optional changes for an account. Empty fields
// leave the stored value untouched.
type UpdateUserInput struct {
	Username string
	Password string
}

// UserService is the admin-only account management surface. The caller is
// passed explicitly so self-protection rules can be evaluated.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, caller domain.Principal, username, password string) (*domain.User, error)
	UpdateUser(ctx context.Context, caller domain.Principal, id int64, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, caller domain.Principal, id int64) error
}
