package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerdesk/identity-service/internal/api/metrics"
	"github.com/dealerdesk/identity-service/internal/core/domain"
	"github.com/dealerdesk/identity-service/internal/core/ports"
	"github.com/dealerdesk/identity-service/pkg/logger"
)

// AuthService implements the login and refresh flows. It is stateless between
// requests; all decisions are a function of the credential store, the hasher
// and the token issuer.
type AuthService struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenIssuer
	revoker ports.TokenRevoker
	audit   ports.AuditSink
	logger  zerolog.Logger
	now     func() time.Time
}

// NewAuthService wires the authenticator. revoker and audit are optional;
// when nil, refresh rotation skips revocation and events are only logged.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	revoker ports.TokenRevoker,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		revoker: revoker,
		audit:   audit,
		logger:  log,
		now:     time.Now,
	}
}

// Login authenticates email+password and mints tokens. Unknown email, wrong
// password and type mismatch all surface as domain.ErrInvalidCredentials; the
// sub-reason is logged and audited but never returned.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput, requiredType string) (*ports.AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindActiveByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a hash comparison so the miss costs as much as a mismatch.
			s.hasher.VerifyDummy(ctx, input.Password)
			s.record(ctx, domain.EventLoginUserMissing, input.Email, "")
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			metrics.LoginFailureReasonsTotal.WithLabelValues("user_missing").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	start := s.now()
	ok := s.hasher.Verify(ctx, input.Password, user.PasswordHash)
	metrics.PasswordVerifyDuration.Observe(s.now().Sub(start).Seconds())
	if !ok {
		s.record(ctx, domain.EventLoginPasswordMismatch, input.Email, user.ID)
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		metrics.LoginFailureReasonsTotal.WithLabelValues("password_mismatch").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if requiredType != "" && !strings.EqualFold(user.RoleName, requiredType) {
		s.record(ctx, domain.EventLoginTypeMismatch, input.Email, user.ID)
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		metrics.LoginFailureReasonsTotal.WithLabelValues("role_mismatch").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issue(user, input.RememberMe)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	s.record(ctx, domain.EventLoginSuccess, input.Email, user.ID)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return result, nil
}

// Refresh exchanges a refresh token for a fresh pair, revoking the presented
// token's jti for its remaining lifetime. Every failure mode surfaces as
// domain.ErrInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("refresh", "rejected").Inc()
		s.record(ctx, domain.EventRefreshFailure, "", "")
		metrics.RefreshesTotal.WithLabelValues("invalid_token").Inc()
		return nil, domain.ErrInvalidRefreshToken
	}
	metrics.TokenVerificationsTotal.WithLabelValues("refresh", "ok").Inc()

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			metrics.RefreshesTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("revocation check: %w", err)
		}
		if revoked {
			s.record(ctx, domain.EventRefreshFailure, claims.Subject, claims.Subject)
			metrics.RefreshesTotal.WithLabelValues("invalid_token").Inc()
			return nil, domain.ErrInvalidRefreshToken
		}
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(ctx, domain.EventRefreshFailure, claims.Subject, claims.Subject)
			metrics.RefreshesTotal.WithLabelValues("invalid_token").Inc()
			return nil, domain.ErrInvalidRefreshToken
		}
		metrics.RefreshesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if !user.IsActive {
		s.record(ctx, domain.EventRefreshFailure, user.Email, user.ID)
		metrics.RefreshesTotal.WithLabelValues("invalid_token").Inc()
		return nil, domain.ErrInvalidRefreshToken
	}

	result, err := s.issue(user, true)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	// Rotation: the replaced token dies with its jti. Best effort; a failed
	// revocation narrows back to the pre-rotation exposure window.
	if s.revoker != nil && claims.ExpiresAt != nil {
		if ttl := claims.ExpiresAt.Time.Sub(s.now()); ttl > 0 {
			if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
				s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to revoke rotated refresh token")
			}
		}
	}

	s.record(ctx, domain.EventRefreshSuccess, user.Email, user.ID)
	metrics.RefreshesTotal.WithLabelValues("success").Inc()
	return result, nil
}

func (s *AuthService) issue(user *domain.User, withRefresh bool) (*ports.AuthResult, error) {
	access, err := s.tokens.IssueAccessToken(user.ID, user.Email, user.RoleName)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	result := &ports.AuthResult{AccessToken: access, User: user.Public()}

	if withRefresh {
		refresh, err := s.tokens.IssueRefreshToken(user.ID, user.Email, user.RoleName)
		if err != nil {
			return nil, fmt.Errorf("issue refresh token: %w", err)
		}
		result.RefreshToken = refresh
	}
	return result, nil
}

// record emits the structured event log line and hands the event to the audit
// sink. Side channels only; never part of the authorization decision.
func (s *AuthService) record(ctx context.Context, event, subject, userID string) {
	correlationID := logger.CorrelationID(ctx)

	evt := s.logger.Info()
	if event != domain.EventLoginSuccess && event != domain.EventRefreshSuccess {
		evt = s.logger.Warn()
	}
	evt.Str("event", event).
		Str("subject", subject).
		Str("correlation_id", correlationID).
		Msg("auth event")

	if s.audit != nil {
		s.audit.Record(domain.AuthEvent{
			Event:         event,
			Subject:       subject,
			UserID:        userID,
			CorrelationID: correlationID,
			OccurredAt:    s.now().UTC(),
		})
	}
}
