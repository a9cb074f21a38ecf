package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type followKey struct {
	userID      uint
	followingID uint
}

type FollowMemoryStorage struct {
	mu      sync.Mutex
	follows map[uint]*models.Follow
	edges   map[followKey]uint
	nextID  uint
	users   userLookup
}

func NewFollowMemoryStorage(users userLookup) *FollowMemoryStorage {
	return &FollowMemoryStorage{
		follows: make(map[uint]*models.Follow),
		edges:   make(map[followKey]uint),
		nextID:  1,
		users:   users,
	}
}

// CreateFollow проверяет пару и вставляет под одной блокировкой,
// поэтому из двух одновременных вставок проходит только одна.
func (s *FollowMemoryStorage) CreateFollow(ctx context.Context, f *models.Follow) error {
	s.mu.Lock()
	key := followKey{userID: f.UserID, followingID: f.FollowingID}
	if _, exists := s.edges[key]; exists {
		s.mu.Unlock()
		return storage.ErrDuplicate
	}

	f.ID = s.nextID
	s.nextID++
	stored := models.Follow{ID: f.ID, UserID: f.UserID, FollowingID: f.FollowingID}
	s.follows[f.ID] = &stored
	s.edges[key] = f.ID
	s.mu.Unlock()

	s.resolve(ctx, f)
	return nil
}

func (s *FollowMemoryStorage) FollowExists(ctx context.Context, userID, followingID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.edges[followKey{userID: userID, followingID: followingID}]
	return exists, nil
}

func (s *FollowMemoryStorage) GetFollows(ctx context.Context, userID uint, search string) ([]*models.Follow, error) {
	s.mu.Lock()
	follows := make([]*models.Follow, 0)
	for _, f := range s.follows {
		if f.UserID == userID {
			out := *f
			follows = append(follows, &out)
		}
	}
	s.mu.Unlock()

	sort.Slice(follows, func(i, j int) bool { return follows[i].ID < follows[j].ID })

	needle := strings.ToLower(search)
	result := make([]*models.Follow, 0, len(follows))
	for _, f := range follows {
		s.resolve(ctx, f)
		if needle != "" && !strings.Contains(strings.ToLower(f.Following.Username), needle) {
			continue
		}
		result = append(result, f)
	}
	return result, nil
}

func (s *FollowMemoryStorage) resolve(ctx context.Context, f *models.Follow) {
	f.User = resolveUser(ctx, s.users, f.UserID)
	f.Following = resolveUser(ctx, s.users, f.FollowingID)
}
