package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type GroupMemoryStorage struct {
	mu     sync.Mutex
	groups map[uint]*models.Group
	slugs  map[string]uint
	nextId uint
}

func NewGroupMemoryStorage() *GroupMemoryStorage {
	return &GroupMemoryStorage{
		groups: make(map[uint]*models.Group),
		slugs:  make(map[string]uint),
		nextId: 1,
	}
}

func (s *GroupMemoryStorage) CreateGroup(ctx context.Context, g *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.slugs[g.Slug]; exists {
		return storage.ErrDuplicate
	}

	g.ID = s.nextId
	s.nextId++

	stored := *g
	s.groups[g.ID] = &stored
	s.slugs[g.Slug] = g.ID
	return nil
}

func (s *GroupMemoryStorage) GetGroupByID(ctx context.Context, id uint) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, exists := s.groups[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	out := *g
	return &out, nil
}

func (s *GroupMemoryStorage) GetAllGroups(ctx context.Context) ([]*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]*models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		out := *g
		groups = append(groups, &out)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}
