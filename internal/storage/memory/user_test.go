package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

// createTestUser регистрирует пользователя и возвращает его ID
func createTestUser(t *testing.T, users *UserMemoryStorage, username string) uint {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, users.CreateUser(context.Background(), u))
	return u.ID
}

func TestUserMemoryStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	users := NewUserMemoryStorage()

	t.Run("Successful user creation", func(t *testing.T) {
		u := &models.User{Username: "testuser", Email: "test@example.com"}
		err := users.CreateUser(ctx, u)
		require.NoError(t, err)
		assert.NotZero(t, u.ID)

		stored, err := users.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "testuser", stored.Username)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		err := users.CreateUser(ctx, &models.User{Username: "testuser"})
		assert.ErrorIs(t, err, storage.ErrDuplicate)
	})
}

func TestUserMemoryStorage_GetUser(t *testing.T) {
	ctx := context.Background()
	users := NewUserMemoryStorage()
	id := createTestUser(t, users, "alice")

	t.Run("By username", func(t *testing.T) {
		u, err := users.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := users.GetUserByUsername(ctx, "bob")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = users.GetUserByID(ctx, 999)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Returned copy does not alias storage", func(t *testing.T) {
		u, err := users.GetUserByID(ctx, id)
		require.NoError(t, err)
		u.Username = "mallory"

		again, err := users.GetUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "alice", again.Username)
	})
}

func TestGroupMemoryStorage(t *testing.T) {
	ctx := context.Background()
	groups := NewGroupMemoryStorage()

	first := &models.Group{Title: "Cats", Slug: "cats"}
	require.NoError(t, groups.CreateGroup(ctx, first))
	require.NoError(t, groups.CreateGroup(ctx, &models.Group{Title: "Dogs", Slug: "dogs"}))

	t.Run("Duplicate slug", func(t *testing.T) {
		err := groups.CreateGroup(ctx, &models.Group{Title: "Cats again", Slug: "cats"})
		assert.ErrorIs(t, err, storage.ErrDuplicate)
	})

	t.Run("Get all groups in id order", func(t *testing.T) {
		all, err := groups.GetAllGroups(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "cats", all[0].Slug)
		assert.Equal(t, "dogs", all[1].Slug)
	})

	t.Run("Get by id", func(t *testing.T) {
		g, err := groups.GetGroupByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cats", g.Title)

		_, err = groups.GetGroupByID(ctx, 42)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
