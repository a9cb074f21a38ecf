package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type CommentMemoryStorage struct {
	mu       sync.Mutex
	comments map[uint]*models.Comment
	nextID   uint
	users    userLookup
}

func NewCommentMemoryStorage(users userLookup) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments: make(map[uint]*models.Comment),
		nextID:   1,
		users:    users,
	}
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, c *models.Comment) error {
	s.mu.Lock()
	c.ID = s.nextID
	s.nextID++
	stored := *c
	stored.Author = models.User{}
	s.comments[c.ID] = &stored
	s.mu.Unlock()

	c.Author = resolveUser(ctx, s.users, c.AuthorID)
	return nil
}

func (s *CommentMemoryStorage) GetComment(ctx context.Context, postID, id uint) (*models.Comment, error) {
	s.mu.Lock()
	c, exists := s.comments[id]
	if !exists || c.PostID != postID {
		s.mu.Unlock()
		return nil, storage.ErrNotFound
	}
	out := *c
	s.mu.Unlock()

	out.Author = resolveUser(ctx, s.users, out.AuthorID)
	return &out, nil
}

func (s *CommentMemoryStorage) GetComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	s.mu.Lock()
	comments := make([]*models.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			out := *c
			comments = append(comments, &out)
		}
	}
	s.mu.Unlock()

	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	for _, c := range comments {
		c.Author = resolveUser(ctx, s.users, c.AuthorID)
	}
	return comments, nil
}

func (s *CommentMemoryStorage) UpdateComment(ctx context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.comments[c.ID]
	if !exists {
		return storage.ErrNotFound
	}
	existing.Text = c.Text
	return nil
}

func (s *CommentMemoryStorage) DeleteComment(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.comments[id]; !exists {
		return storage.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

// deletePostComments удаляет все комментарии поста; вызывается PostMemoryStorage
func (s *CommentMemoryStorage) deletePostComments(postID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
}
