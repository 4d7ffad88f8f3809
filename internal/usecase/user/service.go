// Package user implements the account service: create, list, read, update
// and delete over the user repository, with field validation and the email
// uniqueness fast-fail applied in a fixed order before any write.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pmartins-dev/roster-api/internal/adapter/repository"
	"github.com/pmartins-dev/roster-api/internal/domain"
	"github.com/pmartins-dev/roster-api/internal/domain/entity"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/auth"
	"github.com/pmartins-dev/roster-api/internal/pkg/apperror"
	"github.com/pmartins-dev/roster-api/internal/pkg/validation"
)

type Service struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
}

func NewService(userRepo repository.UserRepository, hasher *auth.PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     string // optional; empty means the default role
}

// Create validates name, email (syntax then uniqueness), password and role
// in that order, failing on the first violation, then hashes the password
// and persists the user. The stored record never holds the plaintext.
//
// The uniqueness read here is a fast-fail; two concurrent creates can both
// pass it. The unique index on users.email is the real constraint, and the
// repository reports a lost race as domain.ErrEmailTaken.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.User, error) {
	if err := validation.Name(input.Name); err != nil {
		return nil, err
	}

	if err := validation.Email(input.Email); err != nil {
		return nil, err
	}
	taken, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if taken {
		return nil, apperror.Conflict("email already in use")
	}

	if err := validation.Password(input.Password); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	role := entity.RoleStudent
	if input.Role != "" {
		role, err = validation.Role(input.Role)
		if err != nil {
			return nil, err
		}
	}

	user := entity.NewUser(input.Name, input.Email, hash, role)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, apperror.Conflict("email already in use")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

type Filter struct {
	Name  string
	Email string
	Role  string
}

// List returns users matching the filter, in repository order. An empty
// filter returns everyone; no match returns an empty slice.
func (s *Service) List(ctx context.Context, filter Filter) ([]entity.User, error) {
	users, err := s.userRepo.List(ctx, repository.UserFilter{
		Name:  filter.Name,
		Email: filter.Email,
		Role:  entity.Role(filter.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// GetByID checks id well-formedness before touching the repository.
func (s *Service) GetByID(ctx context.Context, rawID string) (*entity.User, error) {
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
	return user, nil
}

type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// Update applies partial semantics: only supplied fields are validated and
// changed. Validation order is id, name, email (uniqueness against other
// users only), password, role; the write is a single repository update.
func (s *Service) Update(ctx context.Context, rawID string, input UpdateInput) (*entity.User, error) {
	id, err := validation.UserID(rawID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := validation.Name(*input.Name); err != nil {
			return nil, err
		}
	}

	if input.Email != nil {
		if err := validation.Email(*input.Email); err != nil {
			return nil, err
		}
		owner, err := s.userRepo.GetByEmail(ctx, *input.Email)
		switch {
		case err == nil:
			// Keeping your own email is not a conflict.
			if owner.ID != id {
				return nil, apperror.Conflict("email already in use")
			}
		case errors.Is(err, domain.ErrUserNotFound):
		default:
			return nil, fmt.Errorf("checking email: %w", err)
		}
	}

	var passwordHash string
	if input.Password != nil {
		if err := validation.Password(*input.Password); err != nil {
			return nil, err
		}
		passwordHash, err = s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
	}

	var role entity.Role
	if input.Role != nil {
		role, err = validation.Role(*input.Role)
		if err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		user.PasswordHash = passwordHash
	}
	if input.Role != nil {
		user.Role = role
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return nil, apperror.Conflict("email already in use")
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return user, nil
}

// Delete removes the user permanently and returns the removed record.
func (s *Service) Delete(ctx context.Context, rawID string) (*entity.User, error) {
	id, err := validation.UserID(rawID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("deleting user: %w", err)
	}
	return user, nil
}

// DeleteAll empties the collection. Deleting nothing is still a success.
func (s *Service) DeleteAll(ctx context.Context) error {
	if err := s.userRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("deleting all users: %w", err)
	}
	return nil
}
