// Package avatar manages profile pictures: normalize the uploaded image,
// store it in object storage and record its location on the user row.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/pmartins-dev/roster-api/internal/adapter/repository"
	"github.com/pmartins-dev/roster-api/internal/adapter/storage"
	"github.com/pmartins-dev/roster-api/internal/domain"
	"github.com/pmartins-dev/roster-api/internal/domain/entity"
	"github.com/pmartins-dev/roster-api/internal/pkg/apperror"
	"github.com/pmartins-dev/roster-api/internal/pkg/validation"
)

const avatarContentType = "image/jpeg"

type Service struct {
	userRepo  repository.UserRepository
	storage   storage.ImageStorage
	processor storage.ImageProcessor
}

func NewService(userRepo repository.UserRepository, imageStorage storage.ImageStorage, processor storage.ImageProcessor) *Service {
	return &Service{
		userRepo:  userRepo,
		storage:   imageStorage,
		processor: processor,
	}
}

type UploadInput struct {
	UserID string
	File   io.Reader
}

// Upload replaces the user's avatar. The previous object, if any, is removed
// after the new one is in place so a failed upload never loses the old image.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*entity.User, error) {
	id, err := validation.UserID(input.UserID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	processed, size, err := s.processor.Process(input.File)
	if err != nil {
		return nil, apperror.InvalidInput("unsupported or corrupt image")
	}

	key := fmt.Sprintf("avatars/%s/%s.jpg", user.ID, uuid.New())
	if err := s.storage.Upload(ctx, key, processed, avatarContentType, size); err != nil {
		return nil, fmt.Errorf("uploading avatar: %w", err)
	}

	oldKey := user.AvatarKey
	user.SetAvatar(s.storage.GetURL(key), key)

	if err := s.userRepo.Update(ctx, user); err != nil {
		_ = s.storage.Delete(ctx, key)
		return nil, fmt.Errorf("saving avatar reference: %w", err)
	}

	if oldKey != "" {
		_ = s.storage.Delete(ctx, oldKey)
	}

	return user, nil
}

// Remove deletes the stored avatar. Removing a user with no avatar is a
// successful no-op.
func (s *Service) Remove(ctx context.Context, rawID string) (*entity.User, error) {
	id, err := validation.UserID(rawID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if user.AvatarKey == "" {
		return user, nil
	}

	key := user.AvatarKey
	user.ClearAvatar()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("clearing avatar reference: %w", err)
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		return nil, fmt.Errorf("deleting avatar object: %w", err)
	}

	return user, nil
}
