package gormdb

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type PostGormStorage struct {
	db *gorm.DB
}

func NewPostGormStorage(db *gorm.DB) *PostGormStorage {
	return &PostGormStorage{db: db}
}

func (s *PostGormStorage) CreatePost(ctx context.Context, p *models.Post) error {
	// автора не сохраняем ассоциацией, только author_id
	err := s.db.Set("gorm:save_associations", false).Create(p).Error
	if err != nil {
		return fmt.Errorf("could not create post: %w", translate(err))
	}

	err = s.db.First(&p.Author, p.AuthorID).Error
	if err != nil {
		return fmt.Errorf("could not load post author: %w", translate(err))
	}
	return nil
}

func (s *PostGormStorage) GetPostById(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	err := s.db.Preload("Author").First(&p, id).Error
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", translate(err))
	}
	return &p, nil
}

func (s *PostGormStorage) GetAllPosts(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	var total int
	err := s.db.Model(&models.Post{}).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not count posts: %w", err)
	}

	query := s.db.Preload("Author").Order("id asc")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	posts := make([]*models.Post, 0)
	err = query.Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not get posts: %w", err)
	}
	return posts, total, nil
}

func (s *PostGormStorage) UpdatePost(ctx context.Context, p *models.Post) error {
	var group interface{} = gorm.Expr("NULL")
	if p.GroupID != nil {
		group = *p.GroupID
	}

	res := s.db.Model(&models.Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"text":     p.Text,
		"image":    p.Image,
		"group_id": group,
	})
	if res.Error != nil {
		return fmt.Errorf("could not update post: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeletePostById удаляет пост вместе с комментариями
func (s *PostGormStorage) DeletePostById(ctx context.Context, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error
		if err != nil {
			return fmt.Errorf("could not delete post comments: %w", err)
		}

		res := tx.Where("id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return fmt.Errorf("could not delete post: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}
