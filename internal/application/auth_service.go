package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/conference-scheduler/internal/conference"
)

// ErrInvalidToken is returned when a presented token cannot be verified.
var ErrInvalidToken = errors.New("application: invalid token")

type accessClaims struct {
	Permission string `json:"permission"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies the signed access tokens used by the HTTP
// surface. The scheduling engine itself never sees tokens, only the
// Principal extracted from them.
type AuthService struct {
	state  *State
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewAuthService wires an auth service over the shared state.
func NewAuthService(state *State, secret []byte, ttl time.Duration, now func() time.Time, logger *slog.Logger) *AuthService {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{state: state, secret: secret, ttl: ttl, now: now, logger: defaultLogger(logger)}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Authenticate checks credentials and issues a signed access token.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (result CredentialsResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Authenticate", "username", username)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "user authenticated")
	}()

	var hash string
	var permission conference.PermissionLevel
	s.state.Read(func() {
		user, getErr := s.state.users.Get(username)
		if getErr != nil {
			return
		}
		hash = user.PasswordHash()
		permission = user.Permission()
	})
	if hash == "" {
		err = ErrInvalidCredentials
		return
	}

	if err = VerifyPassword(hash, password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims := accessClaims{
		Permission: string(permission),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	var token string
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return
	}

	result = CredentialsResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Principal: Principal{Username: username, Permission: permission},
	}
	return
}

// VerifyToken parses and validates an access token and returns the principal
// it encodes.
func (s *AuthService) VerifyToken(tokenString string) (Principal, error) {
	if s == nil {
		return Principal{}, fmt.Errorf("AuthService is nil")
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	permission, err := conference.ParsePermissionLevel(claims.Permission)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	return Principal{Username: claims.Subject, Permission: permission}, nil
}
