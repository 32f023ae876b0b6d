// file: service/token_service.go

package service

import (
	"errors"
	"go-blog-api/logger"
	"go-blog-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenConfig is the immutable configuration snapshot the token service
// is built from. It is taken once at startup; the service never reads
// global configuration afterwards.
type TokenConfig struct {
	SecretKey            string
	Algorithm            string
	AccessExpireMinutes  int
	RefreshExpireMinutes int
}

// TokenService issues and decodes the signed bearer tokens used for
// authentication. Tokens are self-contained: validity is computed from
// signature, expiry and scope alone, with no server-side session store.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(cfg TokenConfig) *TokenService {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}

	accessTTL := time.Duration(cfg.AccessExpireMinutes) * time.Minute
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	refreshTTL := time.Duration(cfg.RefreshExpireMinutes) * time.Minute
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	return &TokenService{
		secret:     []byte(cfg.SecretKey),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) sign(authorID int, email, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		AuthorID: authorID,
		Scope:    scope,
		RegisteredClaims: jwt.RegisteredClaims{
			// The jti makes every token unique even when two are issued
			// within the same second for the same author.
			ID:        uuid.NewString(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tokenString, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("email", email).Error("Failed to sign token")
		return "", err
	}
	return tokenString, nil
}

// CreateAccessToken issues a short-lived token with scope "access_token".
func (s *TokenService) CreateAccessToken(authorID int, email string) (string, error) {
	return s.sign(authorID, email, model.ScopeAccessToken, s.accessTTL)
}

// CreateAccessTokenWithTTL is CreateAccessToken with an explicit lifetime.
func (s *TokenService) CreateAccessTokenWithTTL(authorID int, email string, ttl time.Duration) (string, error) {
	return s.sign(authorID, email, model.ScopeAccessToken, ttl)
}

// CreateRefreshToken issues a long-lived token with scope "refresh_token".
func (s *TokenService) CreateRefreshToken(authorID int, email string) (string, error) {
	return s.sign(authorID, email, model.ScopeRefreshToken, s.refreshTTL)
}

// CreateRefreshTokenWithTTL is CreateRefreshToken with an explicit lifetime.
func (s *TokenService) CreateRefreshTokenWithTTL(authorID int, email string, ttl time.Duration) (string, error) {
	return s.sign(authorID, email, model.ScopeRefreshToken, ttl)
}

// RefreshTTL exposes the refresh token lifetime for cookie expiry.
func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// Decode verifies the token's signature and expiry and returns its
// claims. An expired token fails with ErrTokenExpired; any other
// problem (tampered signature, malformed input, wrong algorithm)
// fails with ErrTokenInvalid.
func (s *TokenService) Decode(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// DecodeRefreshToken decodes the token and asserts it carries the
// refresh scope, returning the subject email. A valid access token
// presented here fails with ErrInvalidScope.
func (s *TokenService) DecodeRefreshToken(tokenString string) (string, error) {
	claims, err := s.Decode(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Scope != model.ScopeRefreshToken {
		return "", ErrInvalidScope
	}
	return claims.Subject, nil
}
