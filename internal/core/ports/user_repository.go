package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// UserRepository is the credential store. Implementations must enforce
// username uniqueness at write time and report a collision as
// domain.ErrUsernameTaken; the service-level existence check is advisory.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)

	// UpdateNonAdmin persists username, password hash and updated_at of a
	// USER-role account. It returns domain.ErrUserNotFound when no USER
	// account with that id exists at write time.
	UpdateNonAdmin(ctx context.Context, user *domain.User) (*domain.User, error)

	// DeleteNonAdmin removes a USER-role account, returning
	// domain.ErrUserNotFound when no such account exists at write time.
	DeleteNonAdmin(ctx context.Context, id int64) error
}
