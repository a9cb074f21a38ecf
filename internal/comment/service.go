package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VitaminP8/yatube/internal/apperr"
	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/permission"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

// Service handles comments nested under a post. Every operation resolves the
// parent post first and fails with NotFound if it is gone.
type Service struct {
	comments CommentStorage
	posts    post.PostStorage
	policy   permission.Policy
	now      func() time.Time
}

func NewService(comments CommentStorage, posts post.PostStorage, policy permission.Policy) *Service {
	return &Service{comments: comments, posts: posts, policy: policy, now: time.Now}
}

func (s *Service) List(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if err := s.policy.Check(auth.ActorFromContext(ctx), permission.List, nil).Err(); err != nil {
		return nil, err
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.GetComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}
	return comments, nil
}

func (s *Service) Get(ctx context.Context, postID, id uint) (*models.Comment, error) {
	if err := s.policy.Check(auth.ActorFromContext(ctx), permission.Retrieve, nil).Err(); err != nil {
		return nil, err
	}
	return s.load(ctx, postID, id)
}

// Create attaches a comment by the caller to the post from the path.
func (s *Service) Create(ctx context.Context, postID uint, text *string) (*models.Comment, error) {
	actor := auth.ActorFromContext(ctx)
	if err := s.policy.Check(actor, permission.Create, nil).Err(); err != nil {
		return nil, err
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	body, err := validateText(text, false)
	if err != nil {
		return nil, err
	}

	c := &models.Comment{
		Text:     body,
		Created:  s.now().UTC(),
		AuthorID: actor.ID,
		PostID:   postID,
	}
	if err := s.comments.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, postID, id uint, text *string, partial bool) (*models.Comment, error) {
	action := permission.Update
	if partial {
		action = permission.PartialUpdate
	}

	actor := auth.ActorFromContext(ctx)
	if err := s.policy.Check(actor, action, nil).Err(); err != nil {
		return nil, err
	}

	c, err := s.load(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(actor, action, c).Err(); err != nil {
		return nil, err
	}

	body, err := validateText(text, partial)
	if err != nil {
		return nil, err
	}
	if text != nil {
		c.Text = body
	}

	if err := s.comments.UpdateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("could not update comment: %w", err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, postID, id uint) error {
	actor := auth.ActorFromContext(ctx)
	if err := s.policy.Check(actor, permission.Destroy, nil).Err(); err != nil {
		return err
	}

	c, err := s.load(ctx, postID, id)
	if err != nil {
		return err
	}
	if err := s.policy.Check(actor, permission.Destroy, c).Err(); err != nil {
		return err
	}

	err = s.comments.DeleteComment(ctx, c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(apperr.MsgNotFound)
	}
	if err != nil {
		return fmt.Errorf("could not delete comment: %w", err)
	}
	return nil
}

func (s *Service) requirePost(ctx context.Context, postID uint) error {
	_, err := s.posts.GetPostById(ctx, postID)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(apperr.MsgNotFound)
	}
	if err != nil {
		return fmt.Errorf("post not found: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, postID, id uint) (*models.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	c, err := s.comments.GetComment(ctx, postID, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound(apperr.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get comment: %w", err)
	}
	return c, nil
}

func validateText(text *string, partial bool) (string, error) {
	if text == nil {
		if partial {
			return "", nil
		}
		return "", apperr.Validation("text", apperr.MsgRequired)
	}
	trimmed := strings.TrimSpace(*text)
	if trimmed == "" {
		return "", apperr.Validation("text", apperr.MsgBlank)
	}
	return trimmed, nil
}
