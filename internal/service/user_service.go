package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-docs-api/internal/model"
	"go-docs-api/pkg/apierror"
)

// UserCRUDStore extends UserStore with the generic management operations
// exposed by the users endpoints.
type UserCRUDStore interface {
	UserStore
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.User, error)
}

type UserService struct {
	store  UserCRUDStore
	hasher PasswordHasher
}

func NewUserService(store UserCRUDStore, hasher PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

// Create adds an account directly, without the login side of registration.
// The password is hashed and username uniqueness is enforced the same way
// as during registration.
func (s *UserService) Create(ctx context.Context, req model.RegisterRequest) (model.UserProfile, error) {
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return model.UserProfile{}, apierror.BadRequest("invalid user payload", model.JoinFieldErrors(fieldErrs))
	}

	username := strings.TrimSpace(req.Username)
	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		return model.UserProfile{}, usernameTaken(username)
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return model.UserProfile{}, fmt.Errorf("check username: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.store.Create(ctx, model.User{
		Username:     username,
		PasswordHash: s.hasher.Hash(req.Password),
		Email:        strings.TrimSpace(req.Email),
		Nickname:     strings.TrimSpace(req.Nickname),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return model.UserProfile{}, usernameTaken(username)
		}
		return model.UserProfile{}, fmt.Errorf("create user: %w", err)
	}

	return created.Profile(), nil
}

func (s *UserService) Get(ctx context.Context, id int64) (model.UserProfile, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.UserProfile{}, err
	}
	return user.Profile(), nil
}

func (s *UserService) List(ctx context.Context) ([]model.UserProfile, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	profiles := make([]model.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

// Update changes profile fields only. Username and password are immutable
// through this path.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.UserProfile, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.UserProfile{}, err
	}

	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Nickname != nil {
		user.Nickname = strings.TrimSpace(*req.Nickname)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, user); err != nil {
		return model.UserProfile{}, err
	}
	return user.Profile(), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
