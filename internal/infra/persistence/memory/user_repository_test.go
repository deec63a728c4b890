package memory

import (
	"context"
	"testing"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email, username string) *entity.User {
	return &entity.User{
		Email:        email,
		Username:     username,
		PasswordHash: "hashed",
		Role:         entity.RoleUser,
	}
}

func TestUserRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	first := newUser("a@x.com", "a")
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, int64(1), first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := newUser("b@x.com", "b")
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, int64(2), second.ID)
}

func TestUserRepository_CreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("a@x.com", "a")))

	err := repo.Create(ctx, newUser("a@x.com", "other"))
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_FindByID(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created := newUser("a@x.com", "a")
	require.NoError(t, repo.Create(ctx, created))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", found.Email)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("a@x.com", "a")))

	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a", found.Username)

	// No normalization: lookup is case-sensitive, as supplied.
	_, err = repo.FindByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_FindAllPreservesInsertionOrder(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	emails := []string{"c@x.com", "a@x.com", "b@x.com"}
	for _, email := range emails {
		require.NoError(t, repo.Create(ctx, newUser(email, email)))
	}

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for i, email := range emails {
		assert.Equal(t, email, users[i].Email)
	}
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("a@x.com", "a")))

	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	found.Username = "mutated"

	again, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a", again.Username)
}
