package memstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/taskai/internal/domain"
	"github.com/phrazzld/taskai/internal/platform/logger"
	"github.com/phrazzld/taskai/internal/store"
)

// UserStore implements store.UserStore backed by in-memory maps.
type UserStore struct {
	mu         sync.RWMutex
	users      map[int64]*domain.User
	byUsername map[string]int64
	nextID     int64
	logger     *slog.Logger
}

// Ensure UserStore implements the store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a new empty in-memory user store.
func NewUserStore(log *slog.Logger) *UserStore {
	if log == nil {
		log = slog.Default()
	}

	return &UserStore{
		users:      make(map[int64]*domain.User),
		byUsername: make(map[string]int64),
		nextID:     1,
		logger:     log.With(slog.String("component", "user_store")),
	}
}

// Create saves a new user, assigning the next monotonic ID.
// Returns store.ErrUsernameExists if the username is already taken.
func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if user.HashedPassword == "" {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyHashedPassword)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Uniqueness must be checked under the same lock as the insert so
	// concurrent registrations of the same username cannot both succeed.
	if _, exists := s.byUsername[user.Username]; exists {
		return nil, store.ErrUsernameExists
	}

	stored := *user
	stored.ID = s.nextID
	stored.Password = "" // Plaintext never kept beyond registration
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.nextID++

	s.users[stored.ID] = &stored
	s.byUsername[stored.Username] = stored.ID

	log.Debug("user created",
		slog.Int64("user_id", stored.ID),
		slog.String("username", stored.Username))

	result := stored
	return &result, nil
}

// GetByID retrieves a user by ID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}

	result := *user
	return &result, nil
}

// GetByUsername retrieves a user by username.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}

	result := *s.users[id]
	return &result, nil
}
