package gormdb

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/yatube/models"
)

type GroupGormStorage struct {
	db *gorm.DB
}

func NewGroupGormStorage(db *gorm.DB) *GroupGormStorage {
	return &GroupGormStorage{db: db}
}

func (s *GroupGormStorage) CreateGroup(ctx context.Context, g *models.Group) error {
	err := s.db.Create(g).Error
	if err != nil {
		return fmt.Errorf("could not create group: %w", translate(err))
	}
	return nil
}

func (s *GroupGormStorage) GetGroupByID(ctx context.Context, id uint) (*models.Group, error) {
	var g models.Group
	err := s.db.First(&g, id).Error
	if err != nil {
		return nil, fmt.Errorf("could not get group by id: %w", translate(err))
	}
	return &g, nil
}

func (s *GroupGormStorage) GetAllGroups(ctx context.Context) ([]*models.Group, error) {
	groups := make([]*models.Group, 0)
	err := s.db.Order("id asc").Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("could not get groups: %w", err)
	}
	return groups, nil
}
