package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-docs-api/internal/model"
	"go-docs-api/internal/password"
	"go-docs-api/internal/token"
	"go-docs-api/pkg/apierror"
)

// fakeUserStore enforces the username uniqueness constraint atomically
// under its mutex, mirroring the database's unique index.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (s *fakeUserStore) FindByID(_ context.Context, id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[username]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) Create(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Username]; exists {
		return model.User{}, model.ErrUsernameTaken
	}

	s.nextID++
	u.ID = s.nextID
	s.users[u.Username] = u
	return u, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserStore, *token.Manager) {
	t.Helper()

	store := newFakeUserStore()
	tokens, err := token.NewManager(token.Config{Secret: []byte("test-secret"), TTL: time.Hour})
	require.NoError(t, err)

	return NewAuthService(store, password.NewSHA256Hasher(), tokens), store, tokens
}

func TestAuthServiceRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates an account and hides the digest", func(t *testing.T) {
		svc, store, _ := newTestAuthService(t)

		profile, err := svc.Register(context.Background(), model.RegisterRequest{
			Username: "alice",
			Password: "password1",
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), profile.ID)
		require.Equal(t, "alice", profile.Username)
		require.False(t, profile.CreatedAt.IsZero())

		stored, err := store.FindByUsername(context.Background(), "alice")
		require.NoError(t, err)
		require.NotEqual(t, "password1", stored.PasswordHash)
		require.Len(t, stored.PasswordHash, 64)
	})

	t.Run("duplicate username fails with conflict", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)

		_, err := svc.Register(context.Background(), model.RegisterRequest{Username: "alice", Password: "password1"})
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), model.RegisterRequest{Username: "alice", Password: "password2"})
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
		require.Contains(t, apiErr.Message, "alice")
	})

	t.Run("insert-time uniqueness violation surfaces as the same conflict", func(t *testing.T) {
		store := newFakeUserStore()
		_, err := store.Create(context.Background(), model.User{Username: "bob"})
		require.NoError(t, err)

		tokens, err := token.NewManager(token.Config{Secret: []byte("test-secret"), TTL: time.Hour})
		require.NoError(t, err)

		// blindStore simulates losing the race: the pre-check misses the
		// concurrent row but the insert hits the unique constraint.
		svc := NewAuthService(blindStore{store}, password.NewSHA256Hasher(), tokens)

		_, err = svc.Register(context.Background(), model.RegisterRequest{Username: "bob", Password: "password1"})
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
	})

	t.Run("concurrent registrations persist exactly one account", func(t *testing.T) {
		svc, store, _ := newTestAuthService(t)

		const attempts = 16
		var wg sync.WaitGroup
		errs := make([]error, attempts)

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Register(context.Background(), model.RegisterRequest{
					Username: "alice",
					Password: "password1",
				})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
		}
		require.Equal(t, 1, succeeded)
		require.Len(t, store.users, 1)
	})

	t.Run("rejects an invalid payload", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)

		_, err := svc.Register(context.Background(), model.RegisterRequest{Username: "", Password: "short"})
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	register := func(t *testing.T, svc *AuthService, username string, pw string) model.UserProfile {
		t.Helper()
		profile, err := svc.Register(context.Background(), model.RegisterRequest{Username: username, Password: pw})
		require.NoError(t, err)
		return profile
	}

	t.Run("issues a token carrying the account identity", func(t *testing.T) {
		svc, _, tokens := newTestAuthService(t)
		profile := register(t, svc, "alice", "password1")

		result, err := svc.Login(context.Background(), "alice", "password1")
		require.NoError(t, err)
		require.Equal(t, profile.ID, result.User.ID)
		require.NotEmpty(t, result.Token)

		claims, err := tokens.Verify(result.Token)
		require.NoError(t, err)
		require.Equal(t, profile.ID, claims.UserID)
		require.Equal(t, "alice", claims.Username)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)
		register(t, svc, "alice", "password1")

		_, wrongPwErr := svc.Login(context.Background(), "alice", "wrong")
		_, unknownErr := svc.Login(context.Background(), "nosuchuser", "x")

		var wrongPwAPIErr, unknownAPIErr *apierror.APIError
		require.ErrorAs(t, wrongPwErr, &wrongPwAPIErr)
		require.ErrorAs(t, unknownErr, &unknownAPIErr)
		require.Equal(t, http.StatusUnauthorized, wrongPwAPIErr.HTTPStatus)
		require.Equal(t, wrongPwAPIErr.Message, unknownAPIErr.Message)
		require.Equal(t, wrongPwAPIErr.Code, unknownAPIErr.Code)
	})

	t.Run("store failures are not reported as bad credentials", func(t *testing.T) {
		svc := NewAuthService(failingUserStore{}, password.NewSHA256Hasher(), nil)

		_, err := svc.Login(context.Background(), "alice", "password1")
		var apiErr *apierror.APIError
		require.False(t, errors.As(err, &apiErr))
	})
}

// blindStore hides existing rows from lookups so the insert path's
// constraint handling can be exercised directly.
type blindStore struct {
	*fakeUserStore
}

func (s blindStore) FindByUsername(context.Context, string) (model.User, error) {
	return model.User{}, model.ErrUserNotFound
}

type failingUserStore struct{}

func (failingUserStore) FindByID(context.Context, int64) (model.User, error) {
	return model.User{}, errors.New("store down")
}

func (failingUserStore) FindByUsername(context.Context, string) (model.User, error) {
	return model.User{}, errors.New("store down")
}

func (failingUserStore) Create(context.Context, model.User) (model.User, error) {
	return model.User{}, errors.New("store down")
}
