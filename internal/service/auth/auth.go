// internal/service/auth/auth.go
package auth

import (
	"context"

	"aquadesk-service/internal/domain/auth"
	xerrors "aquadesk-service/internal/pkg/errors"
	"aquadesk-service/internal/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence contract for staff accounts.
type UserStore interface {
	Create(ctx context.Context, u *auth.User) error
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	FindByID(ctx context.Context, id int64) (*auth.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// LoginLimiter throttles repeated login attempts.
type LoginLimiter interface {
	CheckLoginAttempt(ctx context.Context, ip, email string) (bool, int64, error)
	ResetLoginAttempts(ctx context.Context, ip, email string) error
}

type AuthService struct {
	userRepo UserStore
	tokens   *jwt.Manager
	limiter  LoginLimiter
	logger   *zap.Logger
}

func NewAuthService(userRepo UserStore, tokens *jwt.Manager, limiter LoginLimiter, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		limiter:  limiter,
		logger:   logger,
	}
}

// Login verifies credentials and issues an access token. Attempts are rate
// limited per (ip, email); a successful login resets the counter.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest, ip string) (*auth.LoginResponse, error) {
	allowed, remaining, err := s.limiter.CheckLoginAttempt(ctx, ip, req.Email)
	if err != nil {
		s.logger.Warn("login rate limiter unavailable", zap.Error(err))
	} else if !allowed {
		s.logger.Warn("login rate limited",
			zap.String("email", req.Email),
			zap.String("ip", ip),
		)
		return nil, xerrors.ErrRateLimited
	}

	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnauthorized
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, xerrors.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("login failed",
			zap.String("email", req.Email),
			zap.Int64("attempts_remaining", remaining),
		)
		return nil, xerrors.ErrUnauthorized
	}

	token, err := s.tokens.Generate(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to issue token")
	}

	if err := s.limiter.ResetLoginAttempts(ctx, ip, req.Email); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	s.logger.Info("user logged in", zap.Int64("user_id", u.ID), zap.String("role", u.Role))

	return &auth.LoginResponse{Token: token, User: u}, nil
}

// Register creates a staff account. Emails are unique among non-deleted
// users.
func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.User, error) {
	if len(req.Password) < 8 {
		return nil, xerrors.Validationf("password must be at least 8 characters")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, xerrors.Conflictf("a user with email %s already exists", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to hash password")
	}

	u := &auth.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", u.ID), zap.String("role", u.Role))
	return u, nil
}

// ValidateToken verifies a bearer token and confirms the account is still
// active.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	u, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	if !u.IsActive {
		return nil, xerrors.ErrUnauthorized
	}

	return claims, nil
}

// EnsureAdminExists bootstraps the first admin account from configuration.
// It is a no-op when the email is unset or the account already exists.
func (s *AuthService) EnsureAdminExists(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = s.Register(ctx, &auth.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: "Administrator",
		Role:     "admin",
	})
	if err != nil && !xerrors.Is(err, xerrors.ErrConflict) {
		return err
	}

	s.logger.Info("bootstrap admin ensured", zap.String("email", email))
	return nil
}
