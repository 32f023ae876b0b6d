package service

import (
	"database/sql"
	"errors"
	"go-blog-api/common"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"

	"github.com/sirupsen/logrus"
)

// AuthorService handles author-related business logic beyond
// authentication: password changes, role administration and listings.
type AuthorService struct {
	authorRepo repository.IAuthorRepository
	auth       *AuthService
}

func NewAuthorService(authorRepo repository.IAuthorRepository, auth *AuthService) *AuthorService {
	return &AuthorService{authorRepo: authorRepo, auth: auth}
}

// ChangePassword re-hashes and stores a new password after verifying
// the old one and the confirmation.
func (s *AuthorService) ChangePassword(author *model.Author, req model.ChangePasswordRequest) error {
	if !s.auth.CheckPasswordHash(req.OldPassword, author.HashedPassword) {
		return errors.New("incorrect old password")
	}
	if err := common.ValidatePassword(req.NewPassword); err != nil {
		return err
	}
	if req.NewPassword != req.NewPasswordConfirm {
		return errors.New("the new password and confirmed new password must be equal")
	}

	hashedPassword, err := s.auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	logger.Log.WithField("email", author.Email).Info("Author password changed")
	return s.authorRepo.UpdatePassword(author.Email, hashedPassword)
}

// ChangeRole validates the role and calls the repository to update it.
func (s *AuthorService) ChangeRole(req model.ChangeRoleRequest) (*model.Author, error) {
	// We ensure that only valid roles can be assigned.
	if !req.Role.IsValid() {
		return nil, errors.New("invalid role specified")
	}

	if err := s.authorRepo.UpdateRole(req.AuthorID, string(req.Role)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"author_id": req.AuthorID,
		"role":      req.Role,
	}).Info("Author role changed")

	return s.authorRepo.GetAuthorByID(req.AuthorID)
}

// GetAllAuthors retrieves every registered author. For admin use only.
func (s *AuthorService) GetAllAuthors() ([]*model.Author, error) {
	return s.authorRepo.GetAllAuthors()
}
