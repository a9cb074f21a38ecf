package user

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

// UserStorage returns storage.ErrDuplicate for a taken username and
// storage.ErrNotFound for unknown users.
type UserStorage interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}
