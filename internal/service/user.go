package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crucial707/todo-api/internal/auth"
	"github.com/crucial707/todo-api/internal/metrics"
	"github.com/crucial707/todo-api/internal/models"
	"github.com/crucial707/todo-api/internal/repo"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are rejected outright.
const maxPasswordBytes = 72

type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id int, name, email, passwordHash *string) (*models.User, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]models.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenIssuer interface {
	Issue(userID int) (string, error)
	Verify(token string) (auth.Identity, error)
}

// NewUser is the registration input.
type NewUser struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// UserPatch is a partial self-service update. Nil fields are left untouched.
type UserPatch struct {
	Name     *string `json:"name" validate:"omitnil,required,max=255"`
	Email    *string `json:"email" validate:"omitnil,required,email,max=255"`
	Password *string `json:"password" validate:"omitnil,required"`
}

type UserService struct {
	store     UserStore
	hasher    PasswordHasher
	tokens    TokenIssuer
	events    events
	dummyHash string
}

func NewUserService(store UserStore, hasher PasswordHasher, tokens TokenIssuer, log EventLogger) *UserService {
	s := &UserService{store: store, hasher: hasher, tokens: tokens, events: events{store: log}}
	// Login compares against this when the email is unknown so both failure paths pay for a bcrypt check.
	s.dummyHash, _ = hasher.Hash("not-a-real-password")
	return s
}

// Create registers a user, storing only the password hash.
func (s *UserService) Create(ctx context.Context, in NewUser) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := check(in); err != nil {
		s.events.record(ctx, models.LevelError, "user registration rejected: %v", err)
		return nil, err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, invalid("password", "must be at most 72 bytes")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.store.Create(ctx, in.Name, in.Email, hash)
	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			s.events.record(ctx, models.LevelError, "user registration rejected: email already registered")
			return nil, invalid("email", "already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.events.record(ctx, models.LevelInfo, "user %d registered", user.ID)
	return user, nil
}

// Update changes actor's own record. Any other target is ErrForbidden.
func (s *UserService) Update(ctx context.Context, actor auth.Identity, id int, patch UserPatch) (*models.User, error) {
	if actor.UserID != id {
		return nil, ErrForbidden
	}
	patch.Name = trimPtr(patch.Name)
	if patch.Email != nil {
		e := normalizeEmail(*patch.Email)
		patch.Email = &e
	}
	if err := check(patch); err != nil {
		return nil, err
	}

	var hash *string
	if patch.Password != nil {
		if len(*patch.Password) > maxPasswordBytes {
			return nil, invalid("password", "must be at most 72 bytes")
		}
		h, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = &h
	}

	user, err := s.store.Update(ctx, id, patch.Name, patch.Email, hash)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repo.ErrEmailTaken):
			return nil, invalid("email", "already registered")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.events.record(ctx, models.LevelInfo, "user %d updated", id)
	return user, nil
}

// Delete removes actor's own record along with its tasks.
func (s *UserService) Delete(ctx context.Context, actor auth.Identity, id int) error {
	if actor.UserID != id {
		return ErrForbidden
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.events.record(ctx, models.LevelInfo, "user %d deleted", id)
	return nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Login returns a signed token. Unknown email and wrong password are both ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return "", fmt.Errorf("find user: %w", err)
		}
		s.hasher.Verify(password, s.dummyHash)
		return "", s.loginFailed(ctx)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", s.loginFailed(ctx)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	metrics.IncLoginAttempt("success")
	s.events.record(ctx, models.LevelInfo, "user %d logged in", user.ID)
	return token, nil
}

// VerifyToken resolves a bearer token to the caller's identity.
func (s *UserService) VerifyToken(token string) (auth.Identity, error) {
	return s.tokens.Verify(token)
}

func (s *UserService) loginFailed(ctx context.Context) error {
	metrics.IncLoginAttempt("invalid")
	s.events.record(ctx, models.LevelError, "login rejected: invalid credentials")
	return ErrInvalidCredentials
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
