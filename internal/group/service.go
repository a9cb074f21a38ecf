package group

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/VitaminP8/yatube/internal/apperr"
	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/permission"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

const (
	listKey     = "groups:all"
	detailKeyPf = "groups:"
)

// Service is the read-only group surface. Groups are only written by the seed
// tool, so reads may be served from the cache until its TTL runs out.
type Service struct {
	groups GroupStorage
	cache  Cache
	policy permission.Policy
	log    *zap.Logger
}

// NewService builds the service; cache may be nil.
func NewService(groups GroupStorage, cache Cache, policy permission.Policy, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{groups: groups, cache: cache, policy: policy, log: log}
}

func (s *Service) List(ctx context.Context) ([]*models.Group, error) {
	if err := s.policy.Check(auth.ActorFromContext(ctx), permission.List, nil).Err(); err != nil {
		return nil, err
	}

	var cached []*models.Group
	if s.cacheGet(ctx, listKey, &cached) {
		return cached, nil
	}

	groups, err := s.groups.GetAllGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get groups: %w", err)
	}
	s.cacheSet(ctx, listKey, groups)
	return groups, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Group, error) {
	if err := s.policy.Check(auth.ActorFromContext(ctx), permission.Retrieve, nil).Err(); err != nil {
		return nil, err
	}

	key := detailKeyPf + strconv.FormatUint(uint64(id), 10)
	var cached models.Group
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	g, err := s.groups.GetGroupByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound(apperr.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get group: %w", err)
	}
	s.cacheSet(ctx, key, g)
	return g, nil
}

// Cache failures degrade to a storage read.
func (s *Service) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.log.Warn("group cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.log.Warn("group cache write failed", zap.String("key", key), zap.Error(err))
	}
}
