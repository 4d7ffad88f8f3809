package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pmartins-dev/roster-api/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// UserFilter narrows List results. Zero-valued fields are ignored; the zero
// filter matches every user.
type UserFilter struct {
	Name  string
	Email string
	Role  entity.Role
}

// UserRepository owns durability and the hard uniqueness constraint on email.
// Create and Update return domain.ErrEmailTaken when that constraint is
// violated, regardless of any check the caller ran beforehand.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) (*entity.User, error)
	DeleteAll(ctx context.Context) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
