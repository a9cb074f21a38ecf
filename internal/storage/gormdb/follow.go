package gormdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/yatube/models"
)

type FollowGormStorage struct {
	db *gorm.DB
}

func NewFollowGormStorage(db *gorm.DB) *FollowGormStorage {
	return &FollowGormStorage{db: db}
}

// CreateFollow полагается на уникальный индекс idx_follow_user_following:
// проигравшая гонку вставка получает storage.ErrDuplicate
func (s *FollowGormStorage) CreateFollow(ctx context.Context, f *models.Follow) error {
	err := s.db.Set("gorm:save_associations", false).Create(f).Error
	if err != nil {
		return fmt.Errorf("could not create follow: %w", translate(err))
	}

	err = s.db.First(&f.User, f.UserID).Error
	if err != nil {
		return fmt.Errorf("could not load follower: %w", translate(err))
	}
	err = s.db.First(&f.Following, f.FollowingID).Error
	if err != nil {
		return fmt.Errorf("could not load following: %w", translate(err))
	}
	return nil
}

func (s *FollowGormStorage) FollowExists(ctx context.Context, userID, followingID uint) (bool, error) {
	var count int
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("could not check follow: %w", err)
	}
	return count > 0, nil
}

func (s *FollowGormStorage) GetFollows(ctx context.Context, userID uint, search string) ([]*models.Follow, error) {
	query := s.db.Preload("User").Preload("Following").
		Where("follows.user_id = ?", userID)

	if search != "" {
		query = query.Select("follows.*").
			Joins("JOIN users ON users.id = follows.following_id").
			Where(`LOWER(users.username) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(search))+"%")
	}

	follows := make([]*models.Follow, 0)
	err := query.Order("follows.id asc").Find(&follows).Error
	if err != nil {
		return nil, fmt.Errorf("could not get follows: %w", err)
	}
	return follows, nil
}

// escapeLike экранирует спецсимволы LIKE для обоих диалектов
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
