package mocks

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

// FailingPostStorage returns Err from every call.
type FailingPostStorage struct {
	Err error
}

func (m *FailingPostStorage) CreatePost(ctx context.Context, p *models.Post) error {
	return m.Err
}

func (m *FailingPostStorage) GetPostById(ctx context.Context, id uint) (*models.Post, error) {
	return nil, m.Err
}

func (m *FailingPostStorage) GetAllPosts(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	return nil, 0, m.Err
}

func (m *FailingPostStorage) UpdatePost(ctx context.Context, p *models.Post) error {
	return m.Err
}

func (m *FailingPostStorage) DeletePostById(ctx context.Context, id uint) error {
	return m.Err
}
