package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type PostMemoryStorage struct {
	mu     sync.Mutex
	posts  map[uint]*models.Post
	nextId uint
	users  userLookup // хранилище пользователей для подстановки автора (DI)
	// comments получает удаление поста, как ON DELETE CASCADE в gormdb
	comments postCommentsCleaner
}

type postCommentsCleaner interface {
	deletePostComments(postID uint)
}

func NewPostMemoryStorage(users userLookup) *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:  make(map[uint]*models.Post),
		nextId: 1,
		users:  users,
	}
}

// CascadeComments makes DeletePostById also drop the post's comments.
func (s *PostMemoryStorage) CascadeComments(comments *CommentMemoryStorage) {
	s.mu.Lock()
	s.comments = comments
	s.mu.Unlock()
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, p *models.Post) error {
	s.mu.Lock()
	p.ID = s.nextId
	s.nextId++
	stored := *p
	stored.Author = models.User{}
	stored.GroupID = copyID(p.GroupID)
	s.posts[p.ID] = &stored
	s.mu.Unlock()

	p.Author = resolveUser(ctx, s.users, p.AuthorID)
	return nil
}

func (s *PostMemoryStorage) GetPostById(ctx context.Context, id uint) (*models.Post, error) {
	s.mu.Lock()
	p, exists := s.posts[id]
	if !exists {
		s.mu.Unlock()
		return nil, storage.ErrNotFound
	}
	out := *p
	out.GroupID = copyID(p.GroupID)
	s.mu.Unlock()

	out.Author = resolveUser(ctx, s.users, out.AuthorID)
	return &out, nil
}

func (s *PostMemoryStorage) GetAllPosts(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	s.mu.Lock()
	all := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out := *p
		out.GroupID = copyID(p.GroupID)
		all = append(all, &out)
	}
	s.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)

	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	page := all[offset:end]

	for _, p := range page {
		p.Author = resolveUser(ctx, s.users, p.AuthorID)
	}
	return page, total, nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.posts[p.ID]
	if !exists {
		return storage.ErrNotFound
	}

	// автор и дата публикации не меняются
	existing.Text = p.Text
	existing.Image = p.Image
	existing.GroupID = copyID(p.GroupID)
	return nil
}

func (s *PostMemoryStorage) DeletePostById(ctx context.Context, id uint) error {
	s.mu.Lock()
	if _, exists := s.posts[id]; !exists {
		s.mu.Unlock()
		return storage.ErrNotFound
	}
	delete(s.posts, id)
	comments := s.comments
	s.mu.Unlock()

	if comments != nil {
		comments.deletePostComments(id)
	}
	return nil
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
