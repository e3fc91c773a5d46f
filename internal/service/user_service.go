package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-mx/soporte/internal/auth"
	"github.com/helpdesk-mx/soporte/internal/config"
	"github.com/helpdesk-mx/soporte/internal/domain"
	"github.com/helpdesk-mx/soporte/internal/repository"
	apperrors "github.com/helpdesk-mx/soporte/pkg/util/errorutil"
)

// UserService manages user accounts and login tokens.
type UserService struct {
	users   repository.UserRepository
	tickets repository.TicketRepository
	tokens  *auth.TokenManager
	cost    int
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	TicketRepo repository.TicketRepository
}

// NewUserService constructs the service.
func NewUserService(cfg config.AuthConfig, deps UserDependencies) *UserService {
	return &UserService{
		users:   deps.UserRepo,
		tickets: deps.TicketRepo,
		tokens:  auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		cost:    cfg.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *UserService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Register creates a user account with an ordinary-user role. A duplicate
// email fails with CONFLICT.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	violations := map[string]any{}
	if name == "" {
		violations["name"] = apperrors.ReasonRequired
	}
	if email == "" {
		violations["email"] = apperrors.ReasonRequired
	}
	if password == "" {
		violations["password"] = apperrors.ReasonRequired
	}
	if len(violations) > 0 {
		return nil, apperrors.NewValidationError("user validation failed", violations)
	}

	hash, err := auth.HashPassword(password, s.cost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return "", time.Time{}, nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", time.Time{}, nil, apperrors.NewInternalError(err)
	}
	return token, expiresAt, user, nil
}

// ListUsers returns all users, for assignment dropdowns.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// GetUser fetches a single user account.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes a user account. Deletion is restricted: a user that
// still owns tickets cannot be deleted.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	count, err := s.tickets.CountByUser(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("user still owns tickets", map[string]any{"ticket_count": count})
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
