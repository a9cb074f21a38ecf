package mocks

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

type followStorage interface {
	CreateFollow(ctx context.Context, f *models.Follow) error
	FollowExists(ctx context.Context, userID, followingID uint) (bool, error)
	GetFollows(ctx context.Context, userID uint, search string) ([]*models.Follow, error)
}

// RacyFollowStorage always answers that no follow exists, as if a concurrent
// request committed between the pre-check and the insert. Inserts still go to
// the wrapped storage and hit its uniqueness check.
type RacyFollowStorage struct {
	followStorage
}

func NewRacyFollowStorage(inner followStorage) *RacyFollowStorage {
	return &RacyFollowStorage{followStorage: inner}
}

func (m *RacyFollowStorage) FollowExists(ctx context.Context, userID, followingID uint) (bool, error) {
	return false, nil
}
