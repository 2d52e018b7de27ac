package service

import (
	"context"
	"fmt"

	"quill/internal/auth"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/storage"
	"quill/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
	store    storage.ObjectStore
}

type UpdateUserInput struct {
	UserID   uint
	Name     string
	Email    string
	Password string
	Image    string
}

func NewUserService(userRepo repository.UserRepository, store storage.ObjectStore) *UserService {
	return &UserService{
		userRepo: userRepo,
		store:    store,
	}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser applies a partial profile update. Omitted fields keep their
// stored values; a new password is re-validated and re-hashed, a new image
// payload is pushed to the object store.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = in.Email
	}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = hashed
	}
	if in.Image != "" {
		url := in.Image
		if s.store != nil {
			data, contentType, err := storage.DecodePayload(in.Image)
			if err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			url, err = s.store.Upload(ctx, fmt.Sprintf("avatars/user-%d", user.ID), data, contentType)
			if err != nil {
				return nil, models.NewInternalError(err)
			}
		}
		user.Image = url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}
