package group

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

type GroupStorage interface {
	CreateGroup(ctx context.Context, g *models.Group) error
	GetGroupByID(ctx context.Context, id uint) (*models.Group, error)
	GetAllGroups(ctx context.Context) ([]*models.Group, error)
}

// Cache stores rendered group reads. A miss is (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}
