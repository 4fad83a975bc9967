package token

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"product-service/app/domain"
)

// JWTConfig holds JWT signing configuration.
type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration
}

// accessClaims is the claim set carried by access tokens.
type accessClaims struct {
	jwt.RegisteredClaims
}

// JWTCodec issues and verifies HS256 access tokens.
// Implements port.TokenCodec.
type JWTCodec struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a JWTCodec.
type Option func(*JWTCodec)

// WithClock replaces the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *JWTCodec) {
		c.now = now
	}
}

// NewJWTCodec creates a codec bound to a single signing secret.
func NewJWTCodec(cfg JWTConfig, logger *slog.Logger, opts ...Option) (*JWTCodec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.AccessTTL < 0 {
		return nil, fmt.Errorf("access ttl must not be negative: %s", cfg.AccessTTL)
	}

	c := &JWTCodec{
		secret:    []byte(cfg.Secret),
		accessTTL: cfg.AccessTTL,
		now:       time.Now,
		logger:    logger.With("component", "jwt_codec"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// IssueAccess signs a token for subject with the configured access lifetime.
func (c *JWTCodec) IssueAccess(subject string) (*domain.AccessToken, error) {
	return c.Issue(subject, c.accessTTL)
}

// Issue signs a token for subject expiring ttl after now. A zero ttl yields a
// token that is already expired.
func (c *JWTCodec) Issue(subject string, ttl time.Duration) (*domain.AccessToken, error) {
	if subject == "" {
		return nil, errors.New("token subject is required")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("token ttl must not be negative: %s", ttl)
	}

	now := c.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return domain.NewAccessToken(signed, ttl), nil
}

// Verify checks the signature and expiry of raw and returns its subject.
func (c *JWTCodec) Verify(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty token", domain.ErrTokenMalformed)
	}

	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", domain.ErrTokenExpired, err)
		}
		c.logger.Debug("token rejected", "error", err)
		return "", fmt.Errorf("%w: %w", domain.ErrTokenMalformed, err)
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", domain.ErrTokenMalformed)
	}

	return claims.Subject, nil
}
