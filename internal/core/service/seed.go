package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// DefaultAccount is an account created at startup when missing.
type DefaultAccount struct {
	Username string
	Password string
	Role     domain.Role
}

// DefaultAccounts are the bootstrap credentials of a fresh deployment.
var DefaultAccounts = []DefaultAccount{
	{Username: "admin", Password: "admin", Role: domain.RoleAdmin},
	{Username: "user", Password: "user", Role: domain.RoleUser},
}

// SeedAccounts creates each account whose username is not yet present.
// Existing accounts are never modified, so repeated runs are no-ops.
func SeedAccounts(ctx context.Context, repo ports.UserRepository, hasher ports.PasswordHasher, accounts []DefaultAccount, log zerolog.Logger) error {
	for _, acc := range accounts {
		exists, err := repo.ExistsByUsername(ctx, acc.Username)
		if err != nil {
			return fmt.Errorf("seed %s: %w", acc.Username, err)
		}
		if exists {
			continue
		}

		hash, err := hasher.Hash(acc.Password)
		if err != nil {
			return fmt.Errorf("seed %s: %w", acc.Username, err)
		}
		now := time.Now().UTC()
		_, err = repo.Create(ctx, &domain.User{
			Username:     acc.Username,
			PasswordHash: hash,
			Role:         acc.Role,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			// another instance seeded it concurrently
			if errors.Is(err, domain.ErrUsernameTaken) {
				continue
			}
			return fmt.Errorf("seed %s: %w", acc.Username, err)
		}
		log.Info().Str("username", acc.Username).Str("role", string(acc.Role)).Msg("default account created")
	}
	return nil
}
