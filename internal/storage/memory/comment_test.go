package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

func TestCommentMemoryStorage(t *testing.T) {
	ctx := context.Background()
	users := NewUserMemoryStorage()
	authorID := createTestUser(t, users, "commenter")
	comments := NewCommentMemoryStorage(users)

	first := &models.Comment{Text: "first", AuthorID: authorID, PostID: 1}
	require.NoError(t, comments.CreateComment(ctx, first))
	require.NoError(t, comments.CreateComment(ctx, &models.Comment{Text: "second", AuthorID: authorID, PostID: 1}))
	require.NoError(t, comments.CreateComment(ctx, &models.Comment{Text: "elsewhere", AuthorID: authorID, PostID: 2}))

	t.Run("Author is resolved on create", func(t *testing.T) {
		assert.Equal(t, "commenter", first.Author.Username)
	})

	t.Run("Comments are scoped to the post", func(t *testing.T) {
		list, err := comments.GetComments(ctx, 1)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "first", list[0].Text)
		assert.Equal(t, "second", list[1].Text)

		empty, err := comments.GetComments(ctx, 3)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("Get comment under the wrong post", func(t *testing.T) {
		_, err := comments.GetComment(ctx, 2, first.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		c, err := comments.GetComment(ctx, 1, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", c.Text)
	})

	t.Run("Update and delete", func(t *testing.T) {
		first.Text = "edited"
		require.NoError(t, comments.UpdateComment(ctx, first))

		c, err := comments.GetComment(ctx, 1, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "edited", c.Text)

		require.NoError(t, comments.DeleteComment(ctx, first.ID))
		_, err = comments.GetComment(ctx, 1, first.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
