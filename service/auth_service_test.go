// file: service/auth_service_test.go

package service

import (
	"database/sql"
	"go-blog-api/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockAuthorRepo is a mock for IAuthorRepository.
type mockAuthorRepo struct{ mock.Mock }

func (m *mockAuthorRepo) CreateAuthor(author *model.Author) error {
	args := m.Called(author)
	return args.Error(0)
}
func (m *mockAuthorRepo) GetAuthorByEmail(email string) (*model.Author, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}
func (m *mockAuthorRepo) GetAuthorByID(id int) (*model.Author, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}
func (m *mockAuthorRepo) GetAllAuthors() ([]*model.Author, error) {
	args := m.Called()
	return args.Get(0).([]*model.Author), args.Error(1)
}
func (m *mockAuthorRepo) SetRefreshToken(authorID int, token sql.NullString) error {
	args := m.Called(authorID, token)
	return args.Error(0)
}
func (m *mockAuthorRepo) RotateRefreshToken(authorID int, current, next sql.NullString) (bool, error) {
	args := m.Called(authorID, current, next)
	return args.Bool(0), args.Error(1)
}
func (m *mockAuthorRepo) ClearRefreshToken(authorID int) error {
	args := m.Called(authorID)
	return args.Error(0)
}
func (m *mockAuthorRepo) UpdateRole(authorID int, role string) error {
	args := m.Called(authorID, role)
	return args.Error(0)
}
func (m *mockAuthorRepo) UpdatePassword(email, hashedPassword string) error {
	args := m.Called(email, hashedPassword)
	return args.Error(0)
}

// TestAuthService_HashAndCheckPassword ensures that password hashing and verification methods work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	// HashPassword and CheckPasswordHash don't touch the repository, so
	// the AuthService can be built with nil dependencies here.
	authService := NewAuthService(nil, nil)
	password := "mySecretPassword123!"

	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("authService.HashPassword() returned an unexpected error: %v", err)
	}

	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	if !authService.CheckPasswordHash(password, hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned true for a matching password.")
	}

	if authService.CheckPasswordHash("notMyPassword", hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned false for a non-matching password.")
	}

	// A malformed stored hash must fail verification, never panic.
	if authService.CheckPasswordHash(password, "not-a-bcrypt-hash") {
		t.Errorf("CheckPasswordHash() should have returned false for a malformed hash.")
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockAuthorRepo)
		mockRepo.On("GetAuthorByEmail", "alice@example.com").Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreateAuthor", mock.MatchedBy(func(a *model.Author) bool {
			return a.Email == "alice@example.com" && a.Username == "alice" && a.HashedPassword != "Secret123!"
		})).Return(nil).Once()

		authService := NewAuthService(mockRepo, newTestTokenService())
		author, err := authService.Register(model.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "Secret123!",
		})

		assert.NoError(t, err)
		assert.NotNil(t, author)
		mockRepo.AssertExpectations(t)
	})

	t.Run("email already taken", func(t *testing.T) {
		mockRepo := new(mockAuthorRepo)
		mockRepo.On("GetAuthorByEmail", "alice@example.com").
			Return(&model.Author{ID: 1, Email: "alice@example.com"}, nil).Once()

		authService := NewAuthService(mockRepo, newTestTokenService())
		_, err := authService.Register(model.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "Secret123!",
		})

		assert.ErrorIs(t, err, ErrEmailTaken)
		mockRepo.AssertNotCalled(t, "CreateAuthor")
	})

	t.Run("weak password rejected", func(t *testing.T) {
		mockRepo := new(mockAuthorRepo)
		authService := NewAuthService(mockRepo, newTestTokenService())

		_, err := authService.Register(model.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "alllowercase",
		})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "CreateAuthor")
	})
}

func TestAuthService_Login(t *testing.T) {
	tokens := newTestTokenService()
	authService := NewAuthService(nil, tokens)
	hashedPassword, err := authService.HashPassword("Secret123!")
	assert.NoError(t, err)

	storedAuthor := func() *model.Author {
		return &model.Author{
			ID:             7,
			Username:       "alice",
			Email:          "alice@example.com",
			HashedPassword: hashedPassword,
			Role:           model.RoleUser,
		}
	}

	t.Run("success persists the refresh token", func(t *testing.T) {
		mockRepo := new(mockAuthorRepo)
		mockRepo.On("GetAuthorByEmail", "alice@example.com").Return(storedAuthor(), nil).Once()
		mockRepo.On("SetRefreshToken", 7, mock.MatchedBy(func(tok sql.NullString) bool {
			return tok.Valid && tok.String != ""
		})).Return(nil).Once()

		authService := NewAuthService(mockRepo, tokens)
		pair, author, err := authService.Login("alice@example.com", "Secret123!")

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, "bearer", pair.TokenType)
		assert.Equal(t, pair.RefreshToken, author.RefreshToken.String)
		mockRepo.AssertExpectations(t)

		// The issued refresh token really carries the refresh scope.
		email, err := tokens.DecodeRefreshToken(pair.RefreshToken)
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", email)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		mockRepo := new(mockAuthorRepo)
		mockRepo.On("GetAuthorByEmail", "nobody@example.com").Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("GetAuthorByEmail", "alice@example.com").Return(storedAuthor(), nil).Once()

		authService := NewAuthService(mockRepo, tokens)

		_, _, errMissing := authService.Login("nobody@example.com", "Secret123!")
		_, _, errWrongPw := authService.Login("alice@example.com", "wrong-password")

		assert.ErrorIs(t, errMissing, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
		assert.Equal(t, errMissing, errWrongPw)
		mockRepo.AssertNotCalled(t, "SetRefreshToken")
	})
}

func TestAuthService_Refresh(t *testing.T) {
	tokens := newTestTokenService()

	issueStored := func(mockRepo *mockAuthorRepo) (string, *model.Author) {
		refreshToken, err := tokens.CreateRefreshToken(7, "alice@example.com")
		if err != nil {
			t.Fatalf("could not issue refresh token: %v", err)
		}
		author := &model.Author{
			ID:           7,
			Email:        "alice@example.com",
			Role:         model.RoleUser,
			RefreshToken: sql.NullString{String: refreshToken, Valid: true},
		}
		mockRepo.On("GetAuthorByEmail", "alice@example.com").Return(author, nil).Once()
		return refreshToken, author
	}

	t.Run("success rotates the stored token", func(t *testing.T) {
		mockRepo := new(mockAuthorRepo)
		presented, author := issueStored(mockRepo)
		mockRepo.On("RotateRefreshToken", 7, author.RefreshToken, mock.MatchedBy(func(next sql.NullString) bool {
			return next.Valid && next.String != presented
		})).Return(true, nil).Once()

		authService := NewAuthService(mockRepo, tokens)
		pair, _, err := authService.Refresh(presented)

		assert.NoError(t, err)
		assert.NotEqual(t, presented, pair.RefreshToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("mismatch clears the stored token", func(t *testing.T) {
		mockRepo := new(mockAuthorRepo)
		_, _ = issueStored(mockRepo)

		// A different, validly signed token for the same author: stale
		// after a rotation, or stolen before one.
		stale, err := tokens.CreateRefreshTokenWithTTL(7, "alice@example.com", time.Hour)
		assert.NoError(t, err)
		mockRepo.On("ClearRefreshToken", 7).Return(nil).Once()

		authService := NewAuthService(mockRepo, tokens)
		_, _, err = authService.Refresh(stale)

		assert.ErrorIs(t, err, ErrTokenInvalid)
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "RotateRefreshToken")
	})

	t.Run("access token is rejected by scope", func(t *testing.T) {
		mockRepo := new(mockAuthorRepo)
		accessToken, err := tokens.CreateAccessToken(7, "alice@example.com")
		assert.NoError(t, err)

		authService := NewAuthService(mockRepo, tokens)
		_, _, err = authService.Refresh(accessToken)

		assert.ErrorIs(t, err, ErrInvalidScope)
		mockRepo.AssertNotCalled(t, "GetAuthorByEmail")
	})

	t.Run("lost rotation race kills the session", func(t *testing.T) {
		mockRepo := new(mockAuthorRepo)
		presented, author := issueStored(mockRepo)
		mockRepo.On("RotateRefreshToken", 7, author.RefreshToken, mock.Anything).Return(false, nil).Once()
		mockRepo.On("ClearRefreshToken", 7).Return(nil).Once()

		authService := NewAuthService(mockRepo, tokens)
		_, _, err := authService.Refresh(presented)

		assert.ErrorIs(t, err, ErrTokenInvalid)
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_GetCurrentAuthor(t *testing.T) {
	tokens := newTestTokenService()
	storedAuthor := &model.Author{ID: 7, Email: "alice@example.com", Role: model.RoleUser}

	t.Run("valid access token resolves the author", func(t *testing.T) {
		mockRepo := new(mockAuthorRepo)
		mockRepo.On("GetAuthorByEmail", "alice@example.com").Return(storedAuthor, nil).Once()

		accessToken, err := tokens.CreateAccessToken(7, "alice@example.com")
		assert.NoError(t, err)

		authService := NewAuthService(mockRepo, tokens)
		author, err := authService.GetCurrentAuthor(accessToken)

		assert.NoError(t, err)
		assert.Equal(t, storedAuthor, author)
	})

	t.Run("expired token fails", func(t *testing.T) {
		expired, err := tokens.CreateAccessTokenWithTTL(7, "alice@example.com", -time.Minute)
		assert.NoError(t, err)

		authService := NewAuthService(new(mockAuthorRepo), tokens)
		_, err = authService.GetCurrentAuthor(expired)

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("refresh token cannot authenticate a request", func(t *testing.T) {
		refreshToken, err := tokens.CreateRefreshToken(7, "alice@example.com")
		assert.NoError(t, err)

		authService := NewAuthService(new(mockAuthorRepo), tokens)
		_, err = authService.GetCurrentAuthor(refreshToken)

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("unknown author fails", func(t *testing.T) {
		mockRepo := new(mockAuthorRepo)
		mockRepo.On("GetAuthorByEmail", "ghost@example.com").Return(nil, sql.ErrNoRows).Once()

		accessToken, err := tokens.CreateAccessToken(9, "ghost@example.com")
		assert.NoError(t, err)

		authService := NewAuthService(mockRepo, tokens)
		_, err = authService.GetCurrentAuthor(accessToken)

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
