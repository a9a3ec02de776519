package memstore_test

import (
	"context"
	"sync"
	"testing"

	"github.com/phrazzld/taskai/internal/domain"
	"github.com/phrazzld/taskai/internal/platform/memstore"
	"github.com/phrazzld/taskai/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredUser(t *testing.T, s *memstore.UserStore, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:       username,
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	created, err := s.Create(context.Background(), user)
	require.NoError(t, err)
	return created
}

func TestUserStoreCreate(t *testing.T) {
	t.Parallel()

	s := memstore.NewUserStore(nil)
	ctx := context.Background()

	created := newStoredUser(t, s, "alice")
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "alice", created.Username)
	assert.Empty(t, created.Password)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byName, err := s.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created, byName)
}

func TestUserStoreCreateDuplicateUsername(t *testing.T) {
	t.Parallel()

	s := memstore.NewUserStore(nil)

	newStoredUser(t, s, "alice")

	dup := &domain.User{Username: "alice", HashedPassword: "$2a$10$abcdefghijklmnopqrstuv"}
	_, err := s.Create(context.Background(), dup)
	assert.ErrorIs(t, err, store.ErrUsernameExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestUserStoreCreateRequiresHashedPassword(t *testing.T) {
	t.Parallel()

	s := memstore.NewUserStore(nil)

	// A plaintext-only user must be rejected: the store never hashes.
	user := &domain.User{Username: "alice", Password: "plaintext-password"}
	_, err := s.Create(context.Background(), user)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestUserStoreGetMissing(t *testing.T) {
	t.Parallel()

	s := memstore.NewUserStore(nil)
	ctx := context.Background()

	_, err := s.GetByID(ctx, 42)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = s.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestUserStoreConcurrentRegistrationSameUsername(t *testing.T) {
	t.Parallel()

	s := memstore.NewUserStore(nil)
	ctx := context.Background()

	// Exactly one of N concurrent registrations of a username may win.
	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := &domain.User{
				Username:       "contested",
				HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
			}
			_, errs[i] = s.Create(ctx, user)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, store.ErrUsernameExists)
		}
	}
	assert.Equal(t, 1, winners)
}
