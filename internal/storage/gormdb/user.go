package gormdb

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/yatube/models"
)

type UserGormStorage struct {
	db *gorm.DB
}

func NewUserGormStorage(db *gorm.DB) *UserGormStorage {
	return &UserGormStorage{db: db}
}

// CreateUser полагается на уникальный индекс по username
func (s *UserGormStorage) CreateUser(ctx context.Context, u *models.User) error {
	err := s.db.Create(u).Error
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

func (s *UserGormStorage) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := s.db.First(&u, id).Error
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, translate(err))
	}
	return &u, nil
}

func (s *UserGormStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, fmt.Errorf("user with username %s: %w", username, translate(err))
	}
	return &u, nil
}
