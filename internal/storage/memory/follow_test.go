package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

func TestFollowMemoryStorage(t *testing.T) {
	ctx := context.Background()
	users := NewUserMemoryStorage()
	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")
	carol := createTestUser(t, users, "Carol")
	follows := NewFollowMemoryStorage(users)

	f := &models.Follow{UserID: alice, FollowingID: bob}
	require.NoError(t, follows.CreateFollow(ctx, f))
	require.NoError(t, follows.CreateFollow(ctx, &models.Follow{UserID: alice, FollowingID: carol}))
	require.NoError(t, follows.CreateFollow(ctx, &models.Follow{UserID: bob, FollowingID: alice}))

	t.Run("Usernames are resolved", func(t *testing.T) {
		assert.Equal(t, "alice", f.User.Username)
		assert.Equal(t, "bob", f.Following.Username)
	})

	t.Run("Duplicate edge", func(t *testing.T) {
		err := follows.CreateFollow(ctx, &models.Follow{UserID: alice, FollowingID: bob})
		assert.ErrorIs(t, err, storage.ErrDuplicate)
	})

	t.Run("Exists", func(t *testing.T) {
		exists, err := follows.FollowExists(ctx, alice, bob)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = follows.FollowExists(ctx, carol, alice)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Only own edges", func(t *testing.T) {
		list, err := follows.GetFollows(ctx, alice, "")
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, item := range list {
			assert.Equal(t, alice, item.UserID)
		}
	})

	t.Run("Search is a case-insensitive substring", func(t *testing.T) {
		list, err := follows.GetFollows(ctx, alice, "car")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Carol", list[0].Following.Username)

		list, err = follows.GetFollows(ctx, alice, "zzz")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestFollowMemoryStorage_ConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	users := NewUserMemoryStorage()
	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")
	follows := NewFollowMemoryStorage(users)

	const n = 20
	var created, duplicates int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := follows.CreateFollow(ctx, &models.Follow{UserID: alice, FollowingID: bob})
			switch {
			case err == nil:
				atomic.AddInt32(&created, 1)
			case errors.Is(err, storage.ErrDuplicate):
				atomic.AddInt32(&duplicates, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created)
	assert.Equal(t, int32(n-1), duplicates)
}
