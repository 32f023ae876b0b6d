// file: service/auth_service.go

package service

import (
	"database/sql"
	"errors"
	"fmt"
	"go-blog-api/common"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// TokenPair is the credential pair returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthService implements registration, login, token refresh and the
// per-request resolution of a bearer token into an author.
type AuthService struct {
	authorRepo repository.IAuthorRepository
	tokens     *TokenService
}

func NewAuthService(authorRepo repository.IAuthorRepository, tokens *TokenService) *AuthService {
	return &AuthService{authorRepo: authorRepo, tokens: tokens}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored
// hash. A malformed hash simply fails the comparison.
func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a new author with the default role. Fails with
// ErrEmailTaken when the email is already registered.
func (s *AuthService) Register(req model.RegisterRequest) (*model.Author, error) {
	if err := common.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}

	if _, err := s.authorRepo.GetAuthorByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hashedPassword, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	author := &model.Author{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
	}
	if err := s.authorRepo.CreateAuthor(author); err != nil {
		return nil, err
	}

	logger.Log.WithField("email", author.Email).Info("New author registered")
	return author, nil
}

// Login verifies the credentials and issues a fresh token pair. The new
// refresh token overwrites whatever was stored before, so a successful
// login invalidates every other session of this author.
func (s *AuthService) Login(email, password string) (*TokenPair, *model.Author, error) {
	author, err := s.authorRepo.GetAuthorByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !s.CheckPasswordHash(password, author.HashedPassword) {
		logger.Log.WithField("email", email).Warn("Login attempt with wrong password")
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(author.ID, author.Email)
	if err != nil {
		return nil, nil, err
	}

	if err := s.authorRepo.SetRefreshToken(author.ID, sql.NullString{String: pair.RefreshToken, Valid: true}); err != nil {
		return nil, nil, err
	}
	author.RefreshToken = sql.NullString{String: pair.RefreshToken, Valid: true}

	logger.Log.WithField("email", email).Info("Author logged in")
	return pair, author, nil
}

// Refresh rotates a refresh token. The presented token must match the
// one stored on the author record exactly; a mismatch is treated as a
// replay (a stale or stolen token used after rotation), so the stored
// token is cleared and the session is dead until the next login.
func (s *AuthService) Refresh(presented string) (*TokenPair, *model.Author, error) {
	email, err := s.tokens.DecodeRefreshToken(presented)
	if err != nil {
		return nil, nil, err
	}

	author, err := s.authorRepo.GetAuthorByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrTokenInvalid
		}
		return nil, nil, err
	}

	if !author.RefreshToken.Valid || author.RefreshToken.String != presented {
		logger.Log.WithField("email", email).Warn("Stale refresh token presented, clearing session")
		if err := s.authorRepo.ClearRefreshToken(author.ID); err != nil {
			return nil, nil, err
		}
		return nil, nil, ErrTokenInvalid
	}

	pair, err := s.issuePair(author.ID, author.Email)
	if err != nil {
		return nil, nil, err
	}

	// Compare-and-swap on the stored token. Two concurrent refreshes
	// with the same token cannot both win; the loser is handled exactly
	// like any other stale presentation.
	next := sql.NullString{String: pair.RefreshToken, Valid: true}
	swapped, err := s.authorRepo.RotateRefreshToken(author.ID, author.RefreshToken, next)
	if err != nil {
		return nil, nil, err
	}
	if !swapped {
		logger.Log.WithField("email", email).Warn("Lost refresh rotation race, clearing session")
		if err := s.authorRepo.ClearRefreshToken(author.ID); err != nil {
			return nil, nil, err
		}
		return nil, nil, ErrTokenInvalid
	}
	author.RefreshToken = next

	return pair, author, nil
}

// RefreshTTL exposes the refresh token lifetime for cookie expiry.
func (s *AuthService) RefreshTTL() time.Duration {
	return s.tokens.RefreshTTL()
}

// Logout drops the stored refresh token so it can never be used again.
// Outstanding access tokens keep working until they expire.
func (s *AuthService) Logout(authorID int) error {
	return s.authorRepo.ClearRefreshToken(authorID)
}

// GetCurrentAuthor resolves a bearer access token into the author it
// was issued to. Every failure surfaces as ErrUnauthenticated; expired
// tokens are only distinguished in the logs.
func (s *AuthService) GetCurrentAuthor(tokenString string) (*model.Author, error) {
	claims, err := s.tokens.Decode(tokenString)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			logger.Log.Info("Rejected expired access token")
		} else {
			logger.Log.WithError(err).Info("Rejected invalid access token")
		}
		return nil, ErrUnauthenticated
	}

	if claims.Scope != model.ScopeAccessToken {
		return nil, ErrUnauthenticated
	}
	if claims.Subject == "" {
		return nil, ErrUnauthenticated
	}

	author, err := s.authorRepo.GetAuthorByEmail(claims.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return author, nil
}

func (s *AuthService) issuePair(authorID int, email string) (*TokenPair, error) {
	accessToken, err := s.tokens.CreateAccessToken(authorID, email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.CreateRefreshToken(authorID, email)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}
