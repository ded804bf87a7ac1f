package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// AuthResult is what a successful login or registration hands back.
type AuthResult struct {
	AccessToken string
	Username    string
	Role        domain.Role
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, username, password string) (*AuthResult, error)
}
