package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pmartins-dev/roster-api/internal/adapter/repository"
	"github.com/pmartins-dev/roster-api/internal/domain"
	"github.com/pmartins-dev/roster-api/internal/domain/entity"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/auth"
	"github.com/pmartins-dev/roster-api/internal/mocks"
	"github.com/pmartins-dev/roster-api/internal/pkg/apperror"
	"github.com/pmartins-dev/roster-api/internal/usecase/user"
)

func newTestService(t *testing.T) (*user.Service, *mocks.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	// Low cost keeps the hashing fast in tests.
	return user.NewService(repo, auth.NewPasswordHasher(4)), repo
}

func assertAppError(t *testing.T, err error, code string, status int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, status, appErr.StatusCode)
	return appErr
}

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with the default role", func(t *testing.T) {
		svc, repo := newTestService(t)
		hasher := auth.NewPasswordHasher(4)

		repo.EXPECT().ExistsByEmail(ctx, "ann@example.com").Return(false, nil)
		var stored *entity.User
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *entity.User) error {
			stored = u
			return nil
		})

		created, err := svc.Create(ctx, user.CreateInput{
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "secret",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, stored, created)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, entity.RoleStudent, created.Role)
		assert.NotEqual(t, "secret", created.PasswordHash)
		assert.NoError(t, hasher.Compare(created.PasswordHash, "secret"))
	})

	t.Run("keeps the supplied role", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().ExistsByEmail(ctx, "bob@example.com").Return(false, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		created, err := svc.Create(ctx, user.CreateInput{
			Name:     "Bob",
			Email:    "bob@example.com",
			Password: "secret",
			Role:     "instructor",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleInstructor, created.Role)
	})

	t.Run("rejects an empty name before touching the repository", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, user.CreateInput{
			Name:     "  ",
			Email:    "not-an-email",
			Password: "x",
		})
		appErr := assertAppError(t, err, "INVALID_INPUT", 400)
		assert.Contains(t, appErr.Message, "name")
	})

	t.Run("rejects a malformed email before the uniqueness check", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, user.CreateInput{
			Name:     "Ann",
			Email:    "not-an-email",
			Password: "secret",
		})
		assertAppError(t, err, "INVALID_INPUT", 400)
	})

	t.Run("rejects a taken email before validating the password", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().ExistsByEmail(ctx, "ann@example.com").Return(true, nil)

		_, err := svc.Create(ctx, user.CreateInput{
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "x", // would also fail, but the conflict wins
		})
		appErr := assertAppError(t, err, "CONFLICT", 400)
		assert.Equal(t, "email already in use", appErr.Message)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().ExistsByEmail(ctx, "ann@example.com").Return(false, nil)

		_, err := svc.Create(ctx, user.CreateInput{
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "12345",
		})
		assertAppError(t, err, "INVALID_INPUT", 400)
	})

	t.Run("rejects a short multibyte password", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().ExistsByEmail(ctx, "ann@example.com").Return(false, nil)

		// Six bytes, three characters; must still be too short.
		_, err := svc.Create(ctx, user.CreateInput{
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "ñññ",
		})
		assertAppError(t, err, "INVALID_INPUT", 400)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().ExistsByEmail(ctx, "ann@example.com").Return(false, nil)

		_, err := svc.Create(ctx, user.CreateInput{
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "secret",
			Role:     "admin",
		})
		assertAppError(t, err, "INVALID_INPUT", 400)
	})

	t.Run("maps a lost uniqueness race to a conflict", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().ExistsByEmail(ctx, "ann@example.com").Return(false, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(domain.ErrEmailTaken)

		_, err := svc.Create(ctx, user.CreateInput{
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "secret",
		})
		assertAppError(t, err, "CONFLICT", 400)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the filter through", func(t *testing.T) {
		svc, repo := newTestService(t)
		want := []entity.User{*entity.NewUser("Ann", "ann@example.com", "hash", entity.RoleStudent)}

		repo.EXPECT().
			List(ctx, repository.UserFilter{Email: "ann@example.com", Role: entity.RoleStudent}).
			Return(want, nil)

		got, err := svc.List(ctx, user.Filter{Email: "ann@example.com", Role: "student"})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("returns an empty slice when nothing matches", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().List(ctx, repository.UserFilter{}).Return([]entity.User{}, nil)

		got, err := svc.List(ctx, user.Filter{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the user", func(t *testing.T) {
		svc, repo := newTestService(t)
		want := entity.NewUser("Ann", "ann@example.com", "hash", entity.RoleStudent)

		repo.EXPECT().GetByID(ctx, want.ID).Return(want, nil)

		got, err := svc.GetByID(ctx, want.ID.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("rejects a malformed id before touching the repository", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetByID(ctx, "not-a-uuid")
		assertAppError(t, err, "INVALID_INPUT", 400)
	})

	t.Run("maps a missing user to not found", func(t *testing.T) {
		svc, repo := newTestService(t)
		id := uuid.New()

		repo.EXPECT().GetByID(ctx, id).Return(nil, domain.ErrUserNotFound)

		_, err := svc.GetByID(ctx, id.String())
		assertAppError(t, err, "NOT_FOUND", 404)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only the supplied fields", func(t *testing.T) {
		svc, repo := newTestService(t)
		existing := entity.NewUser("Ann", "ann@example.com", "hash", entity.RoleStudent)

		repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *entity.User) error {
			assert.Equal(t, "Anna", u.Name)
			assert.Equal(t, "ann@example.com", u.Email)
			assert.Equal(t, "hash", u.PasswordHash)
			assert.Equal(t, entity.RoleStudent, u.Role)
			return nil
		})

		updated, err := svc.Update(ctx, existing.ID.String(), user.UpdateInput{Name: strPtr("Anna")})
		require.NoError(t, err)
		assert.Equal(t, "Anna", updated.Name)
	})

	t.Run("rejects a malformed id before touching the repository", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Update(ctx, "not-a-uuid", user.UpdateInput{Name: strPtr("Anna")})
		assertAppError(t, err, "INVALID_INPUT", 400)
	})

	t.Run("rejects an email already owned by another user", func(t *testing.T) {
		svc, repo := newTestService(t)
		other := entity.NewUser("Bob", "bob@example.com", "hash", entity.RoleStudent)
		id := uuid.New()

		repo.EXPECT().GetByEmail(ctx, "bob@example.com").Return(other, nil)

		_, err := svc.Update(ctx, id.String(), user.UpdateInput{Email: strPtr("bob@example.com")})
		assertAppError(t, err, "CONFLICT", 400)
	})

	t.Run("keeping your own email is not a conflict", func(t *testing.T) {
		svc, repo := newTestService(t)
		existing := entity.NewUser("Ann", "ann@example.com", "hash", entity.RoleStudent)

		repo.EXPECT().GetByEmail(ctx, "ann@example.com").Return(existing, nil)
		repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		updated, err := svc.Update(ctx, existing.ID.String(), user.UpdateInput{Email: strPtr("ann@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", updated.Email)
	})

	t.Run("an unclaimed email passes the uniqueness check", func(t *testing.T) {
		svc, repo := newTestService(t)
		existing := entity.NewUser("Ann", "ann@example.com", "hash", entity.RoleStudent)

		repo.EXPECT().GetByEmail(ctx, "new@example.com").Return(nil, domain.ErrUserNotFound)
		repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		updated, err := svc.Update(ctx, existing.ID.String(), user.UpdateInput{Email: strPtr("new@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
	})

	t.Run("re-hashes a supplied password", func(t *testing.T) {
		svc, repo := newTestService(t)
		hasher := auth.NewPasswordHasher(4)
		existing := entity.NewUser("Ann", "ann@example.com", "old-hash", entity.RoleStudent)

		repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		updated, err := svc.Update(ctx, existing.ID.String(), user.UpdateInput{Password: strPtr("newsecret")})
		require.NoError(t, err)
		assert.NotEqual(t, "old-hash", updated.PasswordHash)
		assert.NotEqual(t, "newsecret", updated.PasswordHash)
		assert.NoError(t, hasher.Compare(updated.PasswordHash, "newsecret"))
	})

	t.Run("rejects a short password without loading the user", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Update(ctx, uuid.New().String(), user.UpdateInput{Password: strPtr("12345")})
		assertAppError(t, err, "INVALID_INPUT", 400)
	})

	t.Run("rejects an unknown role without loading the user", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Update(ctx, uuid.New().String(), user.UpdateInput{Role: strPtr("admin")})
		assertAppError(t, err, "INVALID_INPUT", 400)
	})

	t.Run("maps a missing user to not found", func(t *testing.T) {
		svc, repo := newTestService(t)
		id := uuid.New()

		repo.EXPECT().GetByID(ctx, id).Return(nil, domain.ErrUserNotFound)

		_, err := svc.Update(ctx, id.String(), user.UpdateInput{Name: strPtr("Anna")})
		assertAppError(t, err, "NOT_FOUND", 404)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the removed user", func(t *testing.T) {
		svc, repo := newTestService(t)
		existing := entity.NewUser("Ann", "ann@example.com", "hash", entity.RoleStudent)

		repo.EXPECT().Delete(ctx, existing.ID).Return(existing, nil)

		removed, err := svc.Delete(ctx, existing.ID.String())
		require.NoError(t, err)
		assert.Equal(t, existing, removed)
	})

	t.Run("rejects a malformed id before touching the repository", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Delete(ctx, "not-a-uuid")
		assertAppError(t, err, "INVALID_INPUT", 400)
	})

	t.Run("maps a missing user to not found", func(t *testing.T) {
		svc, repo := newTestService(t)
		id := uuid.New()

		repo.EXPECT().Delete(ctx, id).Return(nil, domain.ErrUserNotFound)

		_, err := svc.Delete(ctx, id.String())
		assertAppError(t, err, "NOT_FOUND", 404)
	})
}

func TestService_DeleteAll(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to the repository", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().DeleteAll(ctx).Return(nil)

		assert.NoError(t, svc.DeleteAll(ctx))
	})

	t.Run("wraps repository failures", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().DeleteAll(ctx).Return(assert.AnError)

		err := svc.DeleteAll(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
