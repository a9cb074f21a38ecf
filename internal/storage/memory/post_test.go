package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

func TestPostMemoryStorage_CreatePost(t *testing.T) {
	ctx := context.Background()
	users := NewUserMemoryStorage()
	authorID := createTestUser(t, users, "author")
	posts := NewPostMemoryStorage(users)

	t.Run("Success post creation", func(t *testing.T) {
		p := &models.Post{Text: "Test content", AuthorID: authorID}
		err := posts.CreatePost(ctx, p)
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.Equal(t, "author", p.Author.Username)

		stored, err := posts.GetPostById(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, stored.ID)
		assert.Equal(t, "Test content", stored.Text)
		assert.Equal(t, "author", stored.Author.Username)
	})

	t.Run("Trying to get not exist post", func(t *testing.T) {
		_, err := posts.GetPostById(ctx, 23425532)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestPostMemoryStorage_GetAllPosts(t *testing.T) {
	ctx := context.Background()
	users := NewUserMemoryStorage()
	authorID := createTestUser(t, users, "author")
	posts := NewPostMemoryStorage(users)

	for i := 1; i <= 5; i++ {
		require.NoError(t, posts.CreatePost(ctx, &models.Post{Text: "post " + strconv.Itoa(i), AuthorID: authorID}))
	}

	t.Run("Get all posts", func(t *testing.T) {
		all, total, err := posts.GetAllPosts(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, all, 5)
		assert.Equal(t, "post 1", all[0].Text)
	})

	t.Run("Limit and offset", func(t *testing.T) {
		page, total, err := posts.GetAllPosts(ctx, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, page, 2)
		assert.Equal(t, "post 2", page[0].Text)
		assert.Equal(t, "post 3", page[1].Text)
	})

	t.Run("Offset past the end", func(t *testing.T) {
		page, total, err := posts.GetAllPosts(ctx, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Empty(t, page)
	})
}

func TestPostMemoryStorage_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	users := NewUserMemoryStorage()
	authorID := createTestUser(t, users, "author")
	posts := NewPostMemoryStorage(users)

	p := &models.Post{Text: "before", AuthorID: authorID}
	require.NoError(t, posts.CreatePost(ctx, p))

	t.Run("Update keeps author", func(t *testing.T) {
		groupID := uint(3)
		p.Text = "after"
		p.GroupID = &groupID
		p.AuthorID = 999
		require.NoError(t, posts.UpdatePost(ctx, p))

		stored, err := posts.GetPostById(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", stored.Text)
		require.NotNil(t, stored.GroupID)
		assert.Equal(t, uint(3), *stored.GroupID)
		assert.Equal(t, authorID, stored.AuthorID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, posts.DeletePostById(ctx, p.ID))

		_, err := posts.GetPostById(ctx, p.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, posts.DeletePostById(ctx, p.ID), storage.ErrNotFound)
	})
}

func TestPostMemoryStorage_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	users := NewUserMemoryStorage()
	authorID := createTestUser(t, users, "author")
	posts := NewPostMemoryStorage(users)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, posts.CreatePost(ctx, &models.Post{Text: "x", AuthorID: authorID}))
		}()
	}
	wg.Wait()

	_, total, err := posts.GetAllPosts(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, n, total)
}

func TestPostMemoryStorage_DeleteCascadesComments(t *testing.T) {
	ctx := context.Background()
	users := NewUserMemoryStorage()
	authorID := createTestUser(t, users, "author")
	posts := NewPostMemoryStorage(users)
	comments := NewCommentMemoryStorage(users)
	posts.CascadeComments(comments)

	doomed := &models.Post{Text: "doomed", AuthorID: authorID}
	kept := &models.Post{Text: "kept", AuthorID: authorID}
	require.NoError(t, posts.CreatePost(ctx, doomed))
	require.NoError(t, posts.CreatePost(ctx, kept))

	for _, postID := range []uint{doomed.ID, doomed.ID, kept.ID} {
		require.NoError(t, comments.CreateComment(ctx, &models.Comment{Text: "c", AuthorID: authorID, PostID: postID}))
	}

	require.NoError(t, posts.DeletePostById(ctx, doomed.ID))

	left, err := comments.GetComments(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	left, err = comments.GetComments(ctx, kept.ID)
	require.NoError(t, err)
	assert.Len(t, left, 1)

	comments.mu.Lock()
	assert.Len(t, comments.comments, 1)
	comments.mu.Unlock()
}
