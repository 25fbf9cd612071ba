package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go-docs-api/internal/model"
	"go-docs-api/internal/token"
	"go-docs-api/pkg/apierror"
)

// UserStore is the persistence capability the auth service needs. The
// concrete implementation is repository.UserRepository; tests substitute an
// in-memory fake.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

type PasswordHasher interface {
	Hash(plaintext string) string
	Verify(plaintext string, digest string) bool
}

type TokenIssuer interface {
	Issue(userID int64, username string) (string, error)
	Verify(tokenString string) (token.Claims, error)
}

type AuthService struct {
	store  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthService(store UserStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.UserProfile, error) {
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return model.UserProfile{}, apierror.BadRequest("invalid registration payload", model.JoinFieldErrors(fieldErrs))
	}

	username := strings.TrimSpace(req.Username)

	// Pre-check for a friendly message; the unique index on username is
	// what actually enforces the invariant under concurrent registration.
	_, err := s.store.FindByUsername(ctx, username)
	if err == nil {
		return model.UserProfile{}, usernameTaken(username)
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return model.UserProfile{}, fmt.Errorf("check existing username: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		Username:     username,
		PasswordHash: s.hasher.Hash(req.Password),
		Email:        strings.TrimSpace(req.Email),
		Nickname:     strings.TrimSpace(req.Nickname),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.store.Create(ctx, user)
	if errors.Is(err, model.ErrUsernameTaken) {
		// Lost the insert race to a concurrent registration.
		return model.UserProfile{}, usernameTaken(username)
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("persist user: %w", err)
	}

	slog.Info("user registered", "user_id", created.ID, "username", created.Username)
	return created.Profile(), nil
}

func (s *AuthService) Login(ctx context.Context, username string, plaintext string) (model.LoginResult, error) {
	user, err := s.store.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, model.ErrUserNotFound) {
		return model.LoginResult{}, invalidCredentials()
	}
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("find user for login: %w", err)
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return model.LoginResult{}, invalidCredentials()
	}

	signed, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return model.LoginResult{User: user.Profile(), Token: signed}, nil
}

func usernameTaken(username string) *apierror.APIError {
	return apierror.Conflict(fmt.Sprintf("username %q is already taken", username), username)
}

// invalidCredentials is shared by the unknown-user and wrong-password paths
// so the response does not reveal whether the account exists.
func invalidCredentials() *apierror.APIError {
	return apierror.Unauthorized("invalid credentials")
}
