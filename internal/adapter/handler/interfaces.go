package handler

import (
	"context"

	"github.com/pmartins-dev/roster-api/internal/domain/entity"
	"github.com/pmartins-dev/roster-api/internal/usecase/avatar"
	"github.com/pmartins-dev/roster-api/internal/usecase/user"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type UserService interface {
	Create(ctx context.Context, input user.CreateInput) (*entity.User, error)
	List(ctx context.Context, filter user.Filter) ([]entity.User, error)
	GetByID(ctx context.Context, rawID string) (*entity.User, error)
	Update(ctx context.Context, rawID string, input user.UpdateInput) (*entity.User, error)
	Delete(ctx context.Context, rawID string) (*entity.User, error)
}

type AvatarService interface {
	Upload(ctx context.Context, input avatar.UploadInput) (*entity.User, error)
	Remove(ctx context.Context, rawID string) (*entity.User, error)
}
