package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/core/domain"
)

func TestSeedAccounts_CreatesMissing(t *testing.T) {
	repo := newStubUserRepo()

	if err := SeedAccounts(context.Background(), repo, &fakeHasher{}, DefaultAccounts, zerolog.Nop()); err != nil {
		t.Fatalf("SeedAccounts: %v", err)
	}

	admin, err := repo.FindByUsername(context.Background(), "admin")
	if err != nil || admin.Role != domain.RoleAdmin || admin.PasswordHash != "hashed:admin" {
		t.Fatalf("admin not seeded correctly: %+v, %v", admin, err)
	}
	user, err := repo.FindByUsername(context.Background(), "user")
	if err != nil || user.Role != domain.RoleUser {
		t.Fatalf("user not seeded correctly: %+v, %v", user, err)
	}
}

func TestSeedAccounts_NeverOverwrites(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed("admin", "hashed:rotated", domain.RoleAdmin)

	for i := 0; i < 2; i++ {
		if err := SeedAccounts(context.Background(), repo, &fakeHasher{}, DefaultAccounts, zerolog.Nop()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	admin, _ := repo.FindByUsername(context.Background(), "admin")
	if admin.PasswordHash != "hashed:rotated" {
		t.Fatalf("existing admin password was overwritten")
	}
	if repo.count() != 2 {
		t.Fatalf("expected 2 accounts, got %d", repo.count())
	}
}
