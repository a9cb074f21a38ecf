package follow

import (
	"context"
	"errors"
	"fmt"

	"github.com/VitaminP8/yatube/internal/apperr"
	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/permission"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"
)

const (
	MsgMissingFollowing = "Missing field following."
	MsgSelfFollow       = "Attempt to follow yourself."
	MsgAlreadyFollowing = "Subscription already exists."
)

type Service struct {
	follows FollowStorage
	users   user.UserStorage
}

func NewService(follows FollowStorage, users user.UserStorage) *Service {
	return &Service{follows: follows, users: users}
}

// List returns the caller's own follow edges, filtered by a case-insensitive
// substring of the followed username when search is not empty.
func (s *Service) List(ctx context.Context, search string) ([]*models.Follow, error) {
	actor := auth.ActorFromContext(ctx)
	if err := permission.Authenticated(actor).Err(); err != nil {
		return nil, err
	}

	follows, err := s.follows.GetFollows(ctx, actor.ID, search)
	if err != nil {
		return nil, fmt.Errorf("could not get follows: %w", err)
	}
	return follows, nil
}

// Create runs the follow pipeline: required field, target lookup, self-follow,
// duplicate pre-check, then the insert. A duplicate reported by the insert
// itself maps to the same error as the pre-check.
func (s *Service) Create(ctx context.Context, following *string) (*models.Follow, error) {
	actor := auth.ActorFromContext(ctx)
	if err := permission.Authenticated(actor).Err(); err != nil {
		return nil, err
	}

	if following == nil {
		return nil, apperr.Validation(apperr.MessageField, MsgMissingFollowing)
	}

	target, err := s.users.GetUserByUsername(ctx, *following)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound(apperr.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	if target.ID == actor.ID {
		return nil, apperr.Validation(apperr.MessageField, MsgSelfFollow)
	}

	exists, err := s.follows.FollowExists(ctx, actor.ID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("could not check follow: %w", err)
	}
	if exists {
		return nil, apperr.Validation(apperr.MessageField, MsgAlreadyFollowing)
	}

	f := &models.Follow{UserID: actor.ID, FollowingID: target.ID}
	err = s.follows.CreateFollow(ctx, f)
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, apperr.Validation(apperr.MessageField, MsgAlreadyFollowing)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create follow: %w", err)
	}
	return f, nil
}
