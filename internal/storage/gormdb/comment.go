package gormdb

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type CommentGormStorage struct {
	db *gorm.DB
}

func NewCommentGormStorage(db *gorm.DB) *CommentGormStorage {
	return &CommentGormStorage{db: db}
}

func (s *CommentGormStorage) CreateComment(ctx context.Context, c *models.Comment) error {
	err := s.db.Set("gorm:save_associations", false).Create(c).Error
	if err != nil {
		return fmt.Errorf("could not create comment: %w", translate(err))
	}

	err = s.db.First(&c.Author, c.AuthorID).Error
	if err != nil {
		return fmt.Errorf("could not load comment author: %w", translate(err))
	}
	return nil
}

// GetComment находит комментарий только внутри своего поста
func (s *CommentGormStorage) GetComment(ctx context.Context, postID, id uint) (*models.Comment, error) {
	var c models.Comment
	err := s.db.Preload("Author").Where("id = ? AND post_id = ?", id, postID).First(&c).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comment: %w", translate(err))
	}
	return &c, nil
}

func (s *CommentGormStorage) GetComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	err := s.db.Preload("Author").Where("post_id = ?", postID).Order("id asc").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}
	return comments, nil
}

func (s *CommentGormStorage) UpdateComment(ctx context.Context, c *models.Comment) error {
	res := s.db.Model(&models.Comment{}).Where("id = ?", c.ID).Update("text", c.Text)
	if res.Error != nil {
		return fmt.Errorf("could not update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *CommentGormStorage) DeleteComment(ctx context.Context, id uint) error {
	res := s.db.Where("id = ?", id).Delete(&models.Comment{})
	if res.Error != nil {
		return fmt.Errorf("could not delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
