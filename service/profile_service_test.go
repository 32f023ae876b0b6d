// file: service/profile_service_test.go

package service

import (
	"database/sql"
	"go-blog-api/model"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockProfileRepo is a mock for IProfileRepository.
type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) GetProfileByAuthorID(authorID int) (*model.Profile, error) {
	args := m.Called(authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}
func (m *mockProfileRepo) SetProfileAvatar(authorID int, filename string) error {
	args := m.Called(authorID, filename)
	return args.Error(0)
}

// --- Unused methods that are required to satisfy the interface contract ---
func (m *mockProfileRepo) CreateProfile(*model.Profile) error { return nil }
func (m *mockProfileRepo) UpdateProfile(*model.Profile) error { return nil }
func (m *mockProfileRepo) DeleteProfile(int) error            { return nil }

func TestProfileService_UploadAvatar(t *testing.T) {
	mockRepo := new(mockProfileRepo)
	mockRepo.On("GetProfileByAuthorID", 7).
		Return(&model.Profile{ID: 3, AuthorID: 7}, nil).Once()
	mockRepo.On("SetProfileAvatar", 7, mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "avatar_7_") && strings.HasSuffix(name, ".png")
	})).Return(nil).Once()

	profileService := NewProfileService(mockRepo, t.TempDir())
	filename, err := profileService.UploadAvatar(7, strings.NewReader("fake image bytes"), "me.PNG")

	assert.NoError(t, err)
	assert.NotEmpty(t, filename)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_UploadAvatarWithoutProfile(t *testing.T) {
	mockRepo := new(mockProfileRepo)
	mockRepo.On("GetProfileByAuthorID", 7).Return(nil, sql.ErrNoRows).Once()

	profileService := NewProfileService(mockRepo, t.TempDir())
	_, err := profileService.UploadAvatar(7, strings.NewReader("fake image bytes"), "me.png")

	assert.ErrorIs(t, err, ErrProfileNotFound)
	mockRepo.AssertExpectations(t)
}
