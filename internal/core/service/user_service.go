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

// UserService implements admin account management. Administrator accounts
// are never listed, returned, modified or deleted through it.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	audit  ports.AuditPublisher
	log    zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, audit ports.AuditPublisher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, audit: audit, log: log, now: time.Now}
}

// ListUsers returns all USER-role accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.ListByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUser returns a USER-role account. Admin ids resolve to ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, caller domain.Principal, username, password string) (*domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := createAccount(ctx, s.repo, s.hasher, username, password, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			s.reject(caller, domain.AuditUserCreate, 0, username, domain.ReasonUsernameTaken)
		}
		return nil, err
	}

	s.apply(caller, domain.AuditUserCreate, user)
	return user, nil
}

// UpdateUser renames and/or re-passwords a USER-role account. Empty input
// fields keep the stored values.
func (s *UserService) UpdateUser(ctx context.Context, caller domain.Principal, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.reject(caller, domain.AuditUserUpdate, id, "", domain.ReasonNotFound)
		}
		return nil, err
	}
	if target.IsAdmin() {
		s.reject(caller, domain.AuditUserUpdate, id, target.Username, domain.ReasonAdminTarget)
		return nil, domain.ErrForbidden
	}

	if in.Username != "" && in.Username != target.Username {
		taken, err := s.repo.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if taken {
			s.reject(caller, domain.AuditUserUpdate, id, target.Username, domain.ReasonUsernameTaken)
			return nil, domain.ErrUsernameTaken
		}
		target.Username = in.Username
	}

	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = hash
	}
	target.UpdatedAt = s.now().UTC()

	updated, err := s.repo.UpdateNonAdmin(ctx, target)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			s.reject(caller, domain.AuditUserUpdate, id, target.Username, domain.ReasonUsernameTaken)
		}
		return nil, err
	}

	s.apply(caller, domain.AuditUserUpdate, updated)
	return updated, nil
}

// DeleteUser removes a USER-role account. Callers cannot delete themselves
// or another administrator.
func (s *UserService) DeleteUser(ctx context.Context, caller domain.Principal, id int64) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.reject(caller, domain.AuditUserDelete, id, "", domain.ReasonNotFound)
		}
		return err
	}
	if target.Username == caller.Username {
		s.reject(caller, domain.AuditUserDelete, id, target.Username, domain.ReasonSelfDelete)
		return domain.ErrForbidden
	}
	if target.IsAdmin() {
		s.reject(caller, domain.AuditUserDelete, id, target.Username, domain.ReasonPeerAdmin)
		return domain.ErrForbidden
	}

	if err := s.repo.DeleteNonAdmin(ctx, id); err != nil {
		return err
	}

	s.apply(caller, domain.AuditUserDelete, target)
	return nil
}

func (s *UserService) apply(caller domain.Principal, action domain.AuditAction, target *domain.User) {
	s.log.Info().Str("actor", caller.Username).Str("action", string(action)).
		Int64("target_id", target.ID).Msg("account changed")
	s.publish(domain.AuditEvent{Actor: caller.Username, Action: action, TargetID: target.ID,
		Target: target.Username, Outcome: domain.OutcomeApplied})
}

func (s *UserService) reject(caller domain.Principal, action domain.AuditAction, id int64, target, reason string) {
	s.log.Debug().Str("actor", caller.Username).Str("action", string(action)).
		Int64("target_id", id).Str("reason", reason).Msg("account change rejected")
	s.publish(domain.AuditEvent{Actor: caller.Username, Action: action, TargetID: id,
		Target: target, Outcome: domain.OutcomeRejected, Reason: reason})
}

func (s *UserService) publish(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.At = s.now().UTC()
	s.audit.Publish(event)
}
