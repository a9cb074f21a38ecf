package follow

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

// FollowStorage keeps (UserID, FollowingID) unique: CreateFollow returns
// storage.ErrDuplicate when the edge exists, including when a concurrent
// insert won the race. Returned follows have User and Following loaded.
type FollowStorage interface {
	CreateFollow(ctx context.Context, f *models.Follow) error
	FollowExists(ctx context.Context, userID, followingID uint) (bool, error)
	GetFollows(ctx context.Context, userID uint, search string) ([]*models.Follow, error)
}
