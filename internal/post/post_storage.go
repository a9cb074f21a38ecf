package post

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

// PostStorage returns posts with Author loaded; CreatePost fills ID and
// Author of the given post. GetAllPosts orders by id;
// limit <= 0 returns every post from offset on, total is the unpaged count.
type PostStorage interface {
	CreatePost(ctx context.Context, p *models.Post) error
	GetPostById(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context, limit, offset int) (posts []*models.Post, total int, err error)
	UpdatePost(ctx context.Context, p *models.Post) error
	DeletePostById(ctx context.Context, id uint) error
}
