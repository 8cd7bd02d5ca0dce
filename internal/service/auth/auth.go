// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"kaokente-service/internal/domain/auth"
	xerrors "kaokente-service/internal/pkg/errors"
	"kaokente-service/internal/pkg/jwt"
	"kaokente-service/internal/pkg/session"
)

// AuthService authenticates staff against the shared password and
// manages their sessions. The password is never stored in clear; only
// its bcrypt hash reaches the process.
type AuthService struct {
	staffPasswordHash []byte
	jwtManager        *jwt.Manager
	sessions          *session.Manager
	rateLimiter       *session.RateLimiter
	logger            *zap.Logger
}

func NewAuthService(
	staffPasswordHash string,
	jwtManager *jwt.Manager,
	sessions *session.Manager,
	rateLimiter *session.RateLimiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		staffPasswordHash: []byte(staffPasswordHash),
		jwtManager:        jwtManager,
		sessions:          sessions,
		rateLimiter:       rateLimiter,
		logger:            logger,
	}
}

// Login verifies the shared staff password and opens a session.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	allowed, remaining, err := s.rateLimiter.CheckLoginAttempt(ctx, req.IPAddress)
	if err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}
	if !allowed {
		s.logger.Warn("login rate limited", zap.String("ip", req.IPAddress))
		return nil, xerrors.ErrRateLimited
	}

	if err := bcrypt.CompareHashAndPassword(s.staffPasswordHash, []byte(req.Password)); err != nil {
		s.logger.Warn("failed staff login",
			zap.String("ip", req.IPAddress),
			zap.Int64("attempts_remaining", remaining),
		)
		return nil, xerrors.ErrUnauthorized
	}

	token, jti, expiresAt, err := s.jwtManager.Generate("staff", req.Device)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.sessions.CreateSession(ctx, &session.SessionData{
		JTI:       jti,
		Role:      "staff",
		Device:    req.Device,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.rateLimiter.ResetLoginAttempts(ctx, req.IPAddress); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	s.logger.Info("staff logged in",
		zap.String("ip", req.IPAddress),
		zap.String("device", req.Device),
	)

	return &auth.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken verifies a token's signature and its live session.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verify(token)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	if _, err := s.sessions.GetSession(ctx, claims.ID); err != nil {
		return nil, xerrors.ErrSessionExpired
	}

	return claims, nil
}

// Logout revokes the session behind a token's JTI.
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if err := s.sessions.RevokeSession(ctx, jti); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.logger.Info("staff logged out", zap.String("jti", jti))
	return nil
}
