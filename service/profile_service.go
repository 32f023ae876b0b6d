package service

import (
	"database/sql"
	"errors"
	"fmt"
	"go-blog-api/common"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ProfileService handles the optional public profile of an author.
type ProfileService struct {
	profileRepo repository.IProfileRepository
	mediaDir    string
}

func NewProfileService(profileRepo repository.IProfileRepository, mediaDir string) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, mediaDir: mediaDir}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateProfile creates the profile for an author. Each author has at
// most one profile; a second create fails with ErrProfileExists.
func (s *ProfileService) CreateProfile(authorID int, req model.ProfileRequest) (*model.Profile, error) {
	if err := common.ValidatePhoneNumber(req.PhoneNumber); err != nil {
		return nil, err
	}

	if _, err := s.profileRepo.GetProfileByAuthorID(authorID); err == nil {
		return nil, ErrProfileExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	profile := &model.Profile{
		AuthorID:    authorID,
		FirstName:   nullable(req.FirstName),
		LastName:    nullable(req.LastName),
		PhoneNumber: nullable(req.PhoneNumber),
	}
	if err := s.profileRepo.CreateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) GetProfile(authorID int) (*model.Profile, error) {
	profile, err := s.profileRepo.GetProfileByAuthorID(authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile partially updates the author's profile; empty fields in
// the request are left untouched.
func (s *ProfileService) UpdateProfile(authorID int, req model.ProfileRequest) (*model.Profile, error) {
	if err := common.ValidatePhoneNumber(req.PhoneNumber); err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(authorID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		profile.FirstName = nullable(req.FirstName)
	}
	if req.LastName != "" {
		profile.LastName = nullable(req.LastName)
	}
	if req.PhoneNumber != "" {
		profile.PhoneNumber = nullable(req.PhoneNumber)
	}

	if err := s.profileRepo.UpdateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UploadAvatar stores an uploaded avatar under the media directory and
// records the generated filename on the author's profile. The caller
// has already validated the file extension. Requires an existing
// profile.
func (s *ProfileService) UploadAvatar(authorID int, file io.Reader, originalFilename string) (string, error) {
	profile, err := s.GetProfile(authorID)
	if err != nil {
		return "", err
	}

	uploadsDir := filepath.Join(s.mediaDir, "uploads")
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	filename := fmt.Sprintf("avatar_%d_%s%s", profile.AuthorID, uuid.NewString(), ext)

	dst, err := os.Create(filepath.Join(uploadsDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	if err := s.profileRepo.SetProfileAvatar(profile.AuthorID, filename); err != nil {
		return "", err
	}

	logger.Log.WithField("author_id", profile.AuthorID).Info("Profile avatar uploaded")
	return filename, nil
}

func (s *ProfileService) DeleteProfile(authorID int) error {
	err := s.profileRepo.DeleteProfile(authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProfileNotFound
	}
	return err
}
