package comment

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

// CommentStorage returns comments with Author loaded. GetComment only finds
// a comment that belongs to postID.
type CommentStorage interface {
	CreateComment(ctx context.Context, c *models.Comment) error
	GetComment(ctx context.Context, postID, id uint) (*models.Comment, error)
	GetComments(ctx context.Context, postID uint) ([]*models.Comment, error)
	UpdateComment(ctx context.Context, c *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error
}
