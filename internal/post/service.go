package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VitaminP8/yatube/internal/apperr"
	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/permission"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

// Fields is the client-writable part of a post. A nil pointer means the
// field was not sent; GroupSet with a nil Group clears the group.
// SaveImage stores an uploaded file and returns its path; it runs only after
// the permission checks and validation have passed.
type Fields struct {
	Text      *string
	Image     *string
	SaveImage func() (string, error)
	Group     *uint
	GroupSet  bool
}

// ImageStore removes image files the service no longer references.
type ImageStore interface {
	RemovePostImage(rel string) error
}

type Service struct {
	posts  PostStorage
	groups group.GroupStorage
	policy permission.Policy
	images ImageStore
	now    func() time.Time
}

type Option func(*Service)

// WithImageStore makes the service delete replaced images and images of
// posts that failed to save or were deleted.
func WithImageStore(images ImageStore) Option {
	return func(s *Service) { s.images = images }
}

func NewService(posts PostStorage, groups group.GroupStorage, policy permission.Policy, opts ...Option) *Service {
	s := &Service{posts: posts, groups: groups, policy: policy, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	if err := s.policy.Check(auth.ActorFromContext(ctx), permission.List, nil).Err(); err != nil {
		return nil, 0, err
	}

	posts, total, err := s.posts.GetAllPosts(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("could not get posts: %w", err)
	}
	return posts, total, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Post, error) {
	if err := s.policy.Check(auth.ActorFromContext(ctx), permission.Retrieve, nil).Err(); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Create stores a post authored by the caller.
func (s *Service) Create(ctx context.Context, f Fields) (*models.Post, error) {
	actor := auth.ActorFromContext(ctx)
	if err := s.policy.Check(actor, permission.Create, nil).Err(); err != nil {
		return nil, err
	}

	p := &models.Post{AuthorID: actor.ID, PubDate: s.now().UTC()}
	saved, err := s.apply(ctx, p, f, false)
	if err != nil {
		return nil, err
	}

	if err := s.posts.CreatePost(ctx, p); err != nil {
		s.removeImage(saved)
		return nil, fmt.Errorf("could not create post: %w", err)
	}
	return p, nil
}

// Update replaces (partial=false) or patches the post. The author never changes.
func (s *Service) Update(ctx context.Context, id uint, f Fields, partial bool) (*models.Post, error) {
	action := permission.Update
	if partial {
		action = permission.PartialUpdate
	}

	actor := auth.ActorFromContext(ctx)
	if err := s.policy.Check(actor, action, nil).Err(); err != nil {
		return nil, err
	}

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(actor, action, p).Err(); err != nil {
		return nil, err
	}

	previous := p.Image
	saved, err := s.apply(ctx, p, f, partial)
	if err != nil {
		return nil, err
	}

	if err := s.posts.UpdatePost(ctx, p); err != nil {
		s.removeImage(saved)
		return nil, fmt.Errorf("could not update post: %w", err)
	}
	if previous != p.Image {
		s.removeImage(previous)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	actor := auth.ActorFromContext(ctx)
	if err := s.policy.Check(actor, permission.Destroy, nil).Err(); err != nil {
		return err
	}

	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Check(actor, permission.Destroy, p).Err(); err != nil {
		return err
	}

	err = s.posts.DeletePostById(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(apperr.MsgNotFound)
	}
	if err != nil {
		return fmt.Errorf("could not delete post: %w", err)
	}
	s.removeImage(p.Image)
	return nil
}

// removeImage не возвращает ошибку: запись поста уже сохранена или удалена
func (s *Service) removeImage(rel string) {
	if s.images == nil || rel == "" {
		return
	}
	_ = s.images.RemovePostImage(rel)
}

func (s *Service) load(ctx context.Context, id uint) (*models.Post, error) {
	p, err := s.posts.GetPostById(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound(apperr.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}
	return p, nil
}

// apply validates f and copies it onto p. It returns the path of a newly saved image, if any.
func (s *Service) apply(ctx context.Context, p *models.Post, f Fields, partial bool) (string, error) {
	verr := &apperr.Error{Kind: apperr.KindValidation}

	var text string
	switch {
	case f.Text == nil:
		if !partial {
			verr.Add("text", apperr.MsgRequired)
		}
	case strings.TrimSpace(*f.Text) == "":
		verr.Add("text", apperr.MsgBlank)
	default:
		text = strings.TrimSpace(*f.Text)
	}

	if f.GroupSet && f.Group != nil {
		_, err := s.groups.GetGroupByID(ctx, *f.Group)
		if errors.Is(err, storage.ErrNotFound) {
			verr.Add("group", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *f.Group))
		} else if err != nil {
			return "", fmt.Errorf("could not get group: %w", err)
		}
	}

	if len(verr.Fields) > 0 {
		return "", verr
	}

	var saved string
	if f.SaveImage != nil {
		rel, err := f.SaveImage()
		if err != nil {
			return "", err
		}
		saved = rel
		f.Image = &rel
	}

	if f.Text != nil {
		p.Text = text
	}
	if f.GroupSet {
		p.GroupID = f.Group
	}
	if f.Image != nil {
		p.Image = *f.Image
	}
	return saved, nil
}
