package memory

import (
	"context"
	"sync"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

// userLookup лишь подставляет автора в посты, комментарии и подписки
type userLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type UserMemoryStorage struct {
	mu         sync.Mutex
	users      map[uint]*models.User
	byUsername map[string]uint
	nextId     uint
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:      make(map[uint]*models.User),
		byUsername: make(map[string]uint),
		nextId:     1,
	}
}

func (s *UserMemoryStorage) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// уникальность username проверяется под той же блокировкой, что и вставка
	if _, exists := s.byUsername[u.Username]; exists {
		return storage.ErrDuplicate
	}

	u.ID = s.nextId
	s.nextId++

	stored := *u
	s.users[u.ID] = &stored
	s.byUsername[u.Username] = u.ID
	return nil
}

func (s *UserMemoryStorage) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *UserMemoryStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.byUsername[username]
	if !exists {
		return nil, storage.ErrNotFound
	}
	out := *s.users[id]
	return &out, nil
}

// resolveUser возвращает пользователя или пустую структуру, если его нет
func resolveUser(ctx context.Context, users userLookup, id uint) models.User {
	u, err := users.GetUserByID(ctx, id)
	if err != nil {
		return models.User{ID: id}
	}
	return *u
}
