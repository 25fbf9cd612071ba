package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"go-docs-api/internal/model"
	"go-docs-api/internal/password"
	"go-docs-api/pkg/apierror"
)

// fakeUserCRUDStore adds the management operations on top of the
// uniqueness-enforcing fake used by the auth tests.
type fakeUserCRUDStore struct {
	*fakeUserStore
}

func newFakeUserCRUDStore() *fakeUserCRUDStore {
	return &fakeUserCRUDStore{fakeUserStore: newFakeUserStore()}
}

func (s *fakeUserCRUDStore) Update(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.users[u.Username]
	if !exists || existing.ID != u.ID {
		return model.ErrUserNotFound
	}
	s.users[u.Username] = u
	return nil
}

func (s *fakeUserCRUDStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for username, u := range s.users {
		if u.ID == id {
			delete(s.users, username)
			return nil
		}
	}
	return model.ErrUserNotFound
}

func (s *fakeUserCRUDStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func TestUserServiceCreate(t *testing.T) {
	t.Parallel()

	hasher := password.NewSHA256Hasher()

	t.Run("creates an account with a hashed password", func(t *testing.T) {
		store := newFakeUserCRUDStore()
		svc := NewUserService(store, hasher)

		profile, err := svc.Create(context.Background(), model.RegisterRequest{
			Username: "bob",
			Password: "secret1",
			Nickname: "Bob",
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), profile.ID)
		require.Equal(t, "bob", profile.Username)

		stored, err := store.FindByUsername(context.Background(), "bob")
		require.NoError(t, err)
		require.Equal(t, hasher.Hash("secret1"), stored.PasswordHash)
		require.NotEqual(t, "secret1", stored.PasswordHash)
	})

	t.Run("duplicate username maps to the same conflict as registration", func(t *testing.T) {
		store := newFakeUserCRUDStore()
		svc := NewUserService(store, hasher)

		_, err := svc.Create(context.Background(), model.RegisterRequest{Username: "bob", Password: "secret1"})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), model.RegisterRequest{Username: "bob", Password: "secret2"})
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
		require.Equal(t, "ALREADY_EXISTS", apiErr.Code)
		require.Contains(t, apiErr.Message, "bob")
	})

	t.Run("insert-time unique violation maps to conflict too", func(t *testing.T) {
		store := newFakeUserCRUDStore()
		svc := NewUserService(&blindCRUDStore{store}, hasher)

		_, err := svc.Create(context.Background(), model.RegisterRequest{Username: "bob", Password: "secret1"})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), model.RegisterRequest{Username: "bob", Password: "secret2"})
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
	})

	t.Run("invalid payload is rejected before the store is touched", func(t *testing.T) {
		store := newFakeUserCRUDStore()
		svc := NewUserService(store, hasher)

		_, err := svc.Create(context.Background(), model.RegisterRequest{Username: "", Password: "x"})
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)

		users, err := store.List(context.Background())
		require.NoError(t, err)
		require.Empty(t, users)
	})
}

// blindCRUDStore hides existing accounts from the pre-check so the
// insert-time ErrUsernameTaken path is exercised.
type blindCRUDStore struct {
	*fakeUserCRUDStore
}

func (s *blindCRUDStore) FindByUsername(context.Context, string) (model.User, error) {
	return model.User{}, model.ErrUserNotFound
}
