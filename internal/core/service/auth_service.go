package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// dummyPassword is hashed once and compared against when the username is
// unknown, so both failure paths spend the same bcrypt time.
const dummyPassword = "timing-equalizer"

// fallbackDummyHash is a cost-10 bcrypt digest of dummyPassword, used when
// the hasher cannot produce one.
const fallbackDummyHash = "$2b$10$yq6DiIegl4W5RrGAteNop.QYp7sZuELz/kMXP7zWiCCE1vgcogE3K"

// AuthService implements login and self-registration.
type AuthService struct {
	repo    ports.UserRepository
	hasher  ports.PasswordHasher
	codec   ports.TokenCodec
	limiter ports.LoginLimiter
	audit   ports.AuditPublisher
	log     zerolog.Logger
	now     func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the authentication use cases. limiter and audit may be
// nil, in which case throttling and auditing are skipped.
func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	codec ports.TokenCodec,
	limiter ports.LoginLimiter,
	audit ports.AuditPublisher,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:    repo,
		hasher:  hasher,
		codec:   codec,
		limiter: limiter,
		audit:   audit,
		log:     log,
		now:     time.Now,
	}
}

// Login checks the credentials and issues a token. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.attempt(ctx, username) {
		s.publish(domain.AuditEvent{Actor: username, Action: domain.AuditLogin, Target: username,
			Outcome: domain.OutcomeRejected, Reason: domain.ReasonLocked})
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		s.hasher.Verify(password, s.dummy())
		s.rejectLogin(username, domain.ReasonUnknownUser)
		return nil, domain.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.rejectLogin(username, domain.ReasonBadPassword)
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login limiter reset failed")
		}
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.publish(domain.AuditEvent{Actor: username, Action: domain.AuditLogin, TargetID: user.ID,
		Target: username, Outcome: domain.OutcomeApplied})
	return result, nil
}

// Register creates a USER account and logs it in.
func (s *AuthService) Register(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := createAccount(ctx, s.repo, s.hasher, username, password, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			s.publish(domain.AuditEvent{Actor: username, Action: domain.AuditRegister, Target: username,
				Outcome: domain.OutcomeRejected, Reason: domain.ReasonUsernameTaken})
		}
		return nil, err
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.publish(domain.AuditEvent{Actor: username, Action: domain.AuditRegister, TargetID: user.ID,
		Target: username, Outcome: domain.OutcomeApplied})
	return result, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	token, err := s.codec.Issue(user.Username, user.Role, s.now())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.AuthResult{AccessToken: token, Username: user.Username, Role: user.Role}, nil
}

// attempt counts the login against the limiter. Limiter outages fail open.
func (s *AuthService) attempt(ctx context.Context, username string) bool {
	if s.limiter == nil {
		return true
	}
	ok, err := s.limiter.Attempt(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter unavailable")
		return true
	}
	return ok
}

func (s *AuthService) rejectLogin(username, reason string) {
	s.log.Debug().Str("username", username).Str("reason", reason).Msg("login rejected")
	s.publish(domain.AuditEvent{Actor: username, Action: domain.AuditLogin, Target: username,
		Outcome: domain.OutcomeRejected, Reason: reason})
}

func (s *AuthService) publish(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	if event.At.IsZero() {
		event.At = s.now().UTC()
	}
	s.audit.Publish(event)
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.log.Error().Err(err).Msg("dummy hash generation failed, using fallback")
			hash = fallbackDummyHash
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// createAccount is shared by self-registration and admin account creation.
// The existence check is advisory; the store's unique index decides races.
func createAccount(
	ctx context.Context,
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	username, password string,
	now time.Time,
) (*domain.User, error) {
	exists, err := repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	created, err := repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
