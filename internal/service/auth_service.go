package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"star-catalog-api/internal/model"
	"star-catalog-api/pkg/apierror"
)

const bcryptCost = 12

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, email string, passwordHash string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
}

// RevocationStore is the token blocklist ledger.
type RevocationStore interface {
	Revoke(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthService owns credential verification, token issuance and the
// per-request authentication chain. The signing secret and access TTL
// are injected at construction; there is no process-global key.
// Rotating the secret invalidates every outstanding token.
type AuthService struct {
	secret    []byte
	accessTTL time.Duration
	users     UserStore
	revoked   RevocationStore
}

func NewAuthService(secret string, accessTTL time.Duration, users UserStore, revoked RevocationStore) (*AuthService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if accessTTL <= 0 {
		return nil, errors.New("access TTL must be positive")
	}

	return &AuthService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		users:     users,
		revoked:   revoked,
	}, nil
}

// Login verifies the credentials and returns a signed access token.
// Unknown email, wrong password and deactivated account all collapse
// into ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email string, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !s.verifyPassword(user, password) {
		return "", model.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *AuthService) Register(ctx context.Context, email string, password string) (model.PublicUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.PublicUser{}, apierror.BadRequest("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, string(hash))
	if err != nil {
		return model.PublicUser{}, err
	}

	return user.Public(), nil
}

// Authenticate runs the full per-request chain: signature and expiry,
// revocation ledger, then subject resolution. Every failure surfaces
// as the same unauthenticated error so the caller learns nothing about
// which step rejected the token.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (model.User, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return model.User{}, apierror.Unauthenticated()
	}

	revoked, err := s.revoked.IsRevoked(ctx, tokenString)
	if err != nil {
		return model.User{}, err
	}
	if revoked {
		return model.User{}, apierror.Unauthenticated()
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, apierror.Unauthenticated()
	}
	if err != nil {
		return model.User{}, err
	}

	if !user.IsActive {
		return model.User{}, apierror.Unauthenticated()
	}

	return user, nil
}

// Logout places the exact presented token on the revocation ledger.
// Revocation is monotonic: the ledger insert is idempotent and nothing
// ever removes a live entry.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	return s.revoked.Revoke(ctx, tokenString)
}

// verifyPassword returns false unconditionally for deactivated users,
// regardless of password correctness.
func (s *AuthService) verifyPassword(user model.User, password string) bool {
	if !user.IsActive {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (s *AuthService) issueToken(user model.User) (string, error) {
	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.accessTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parseToken(tokenString string) (model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return model.AuthClaims{}, model.ErrTokenInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return model.AuthClaims{}, model.ErrTokenInvalid
	}

	sub, ok := claimsMap["sub"].(float64)
	if !ok || sub <= 0 {
		return model.AuthClaims{}, model.ErrTokenInvalid
	}

	claims := model.AuthClaims{UserID: int64(sub)}
	claims.TokenID, _ = claimsMap["jti"].(string)
	if iat, ok := claimsMap["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	if exp, ok := claimsMap["exp"].(float64); ok {
		claims.Expiry = time.Unix(int64(exp), 0).UTC()
	}

	return claims, nil
}
