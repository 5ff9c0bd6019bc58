package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
	"github.com/rkhatri/storefront-core/internal/domain/repository"
	"github.com/rkhatri/storefront-core/internal/keycloak"
	"github.com/rkhatri/storefront-core/pkg/helpers"
)

var ErrEmailTaken = errors.New("email already registered")

// IdentityProvider is the slice of the Keycloak client the auth service
// depends on. *keycloak.Client satisfies it.
type IdentityProvider interface {
	PasswordGrant(ctx context.Context, username, password string) (*keycloak.TokenSet, error)
	EnsureUser(ctx context.Context, email, password, fullName string) error
}

// ReconciliationEvent records a signup that provisioned a remote account but
// failed to persist the local row. It is published for manual replay.
type ReconciliationEvent struct {
	Event      string    `json:"event"`
	Email      string    `json:"email"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuthService bridges the identity provider and the local user store. It owns
// signup, signin, and the find-or-create reconciliation used on every
// bearer-authenticated request.
type AuthService struct {
	Users  repository.UserRepository
	IDP    IdentityProvider
	Logger *logrus.Logger
	Recon  *helpers.RabbitPublisher // optional reconciliation sink
}

func NewAuthService(users repository.UserRepository, idp IdentityProvider, logger *logrus.Logger, recon *helpers.RabbitPublisher) *AuthService {
	return &AuthService{Users: users, IDP: idp, Logger: logger, Recon: recon}
}

// Signup provisions the account remote-first: the provider account must exist
// before the local row is written, so a provisioning failure leaves no
// local-only orphan. The inverse window (remote created, local insert failed)
// is logged and published as a reconciliation event.
func (s *AuthService) Signup(ctx context.Context, email, password, fullName string) (*entity.User, error) {
	if existing, err := s.Users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.IDP.EnsureUser(ctx, email, password, fullName); err != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("remote provisioning failed")
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:    email,
		Password: hash,
		FullName: fullName,
		IsActive: true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Concurrent signup won the insert; the remote account is shared.
			return s.Users.GetByEmail(ctx, email)
		}
		s.reportOrphanedRemote(ctx, email, err)
		return nil, err
	}
	return u, nil
}

// Signin exchanges credentials with the provider, then synchronizes the local
// row: created if absent, marked verified either way.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*keycloak.TokenSet, *entity.User, error) {
	tokens, err := s.IDP.PasswordGrant(ctx, email, password)
	if err != nil {
		s.Logger.WithError(err).WithField("email", email).Info("password grant rejected")
		return nil, nil, err
	}
	u, err := s.ResolveOrCreate(ctx, email, "", true)
	if err != nil {
		return nil, nil, err
	}
	return tokens, u, nil
}

// ResolveOrCreate maps an email to the local user row, creating one when the
// email has not been seen yet. The unique constraint on email is the
// serialization point: losing the insert race means someone else created the
// row, so the loser re-reads instead of failing.
func (s *AuthService) ResolveOrCreate(ctx context.Context, email, nameHint string, verified bool) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if verified && !u.IsVerified {
			u.IsVerified = true
			if uerr := s.Users.Update(ctx, u); uerr != nil {
				return nil, uerr
			}
		}
		return u, nil
	case errors.Is(err, repository.ErrNotFound):
	default:
		return nil, err
	}

	u = &entity.User{
		Email:      email,
		FullName:   nameHint,
		IsActive:   true,
		IsVerified: verified,
	}
	if cerr := s.Users.Create(ctx, u); cerr != nil {
		if errors.Is(cerr, repository.ErrDuplicate) {
			return s.ResolveOrCreate(ctx, email, nameHint, verified)
		}
		return nil, cerr
	}
	return u, nil
}

// reportOrphanedRemote logs the accepted signup inconsistency window as a
// distinct event and hands it to the reconciliation queue when available.
func (s *AuthService) reportOrphanedRemote(ctx context.Context, email string, cause error) {
	s.Logger.WithError(cause).WithFields(logrus.Fields{
		"event": "signup_local_persist_failed",
		"email": email,
	}).Error("remote account provisioned but local user row not persisted, needs reconciliation")

	if s.Recon == nil {
		return
	}
	ev := ReconciliationEvent{
		Event:      "signup_local_persist_failed",
		Email:      email,
		Reason:     cause.Error(),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Recon.PublishJSON(ctx, ev); err != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("failed to publish reconciliation event")
	}
}
