package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/gulftrading/gtg-api/internal/domain"
	"github.com/gulftrading/gtg-api/internal/platform/logger"
	"github.com/gulftrading/gtg-api/internal/store"
)

// Service orchestrates registration, login, password changes, and
// per-request identity resolution. It layers the stateful active-account
// check on top of the stateless token validation.
type Service struct {
	users     store.UserStore
	tokens    JWTService
	passwords PasswordHasher
	logger    *slog.Logger
}

// NewService creates a new auth Service with the given dependencies.
// If log is nil, the default logger is used.
func NewService(users store.UserStore, tokens JWTService, passwords PasswordHasher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    log.With(slog.String("component", "auth_service")),
	}
}

// Register creates a new staff user and issues an identity token.
// Returns store.ErrEmailExists if the email is already taken (the
// comparison is case-insensitive).
func (s *Service) Register(ctx context.Context, name, email, password, company, phone string) (*domain.User, string, error) {
	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, "", err
	}
	user.Company = strings.TrimSpace(company)
	user.Phone = strings.TrimSpace(phone)

	hash, err := s.passwords.Hash(user.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user registered",
		"user_id", user.ID,
		"role", user.Role)

	return user, token, nil
}

// Login verifies credentials and issues an identity token. Unknown email
// and wrong password both return ErrInvalidCredentials; a deactivated
// account returns ErrAccountDisabled. The last-login stamp is best-effort:
// a failed write is logged but never fails the login.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.Active {
		return nil, "", ErrAccountDisabled
	}

	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.users.RecordLogin(ctx, user.ID); err != nil {
		log.Warn("failed to record last login", "error", err, "user_id", user.ID)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// ChangePassword re-verifies the current password before hashing and
// storing the new one. A mismatch returns ErrInvalidCredentials.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.passwords.Compare(user.HashedPassword, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	if len(newPassword) < 8 {
		return domain.ErrPasswordTooShort
	}
	if len(newPassword) > 72 {
		return domain.ErrPasswordTooLong
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hash

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("password changed", "user_id", userID)
	return nil
}

// UpdateProfile updates the mutable profile fields. Empty values leave the
// corresponding field unchanged.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, name, company, phone string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if company = strings.TrimSpace(company); company != "" {
		user.Company = company
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		user.Phone = phone
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ResolveIdentity validates the token structurally, then loads the user and
// re-checks the active flag. A token issued before deactivation remains
// structurally valid until expiry, so the account check here is what
// actually locks a deactivated user out.
func (s *Service) ResolveIdentity(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user for token: %w", err)
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	return user, nil
}
