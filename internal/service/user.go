package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/releaf/releaf/internal/metrics"
	"github.com/releaf/releaf/internal/model"
)

// User service errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyDeleted = errors.New("user already deleted")
	ErrEmailExists        = errors.New("email already in use")
)

// UserRepository is the persistence contract consumed by the user use
// cases. Find methods report absence as (nil, nil).
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	FindUserByID(ctx context.Context, id string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// AuthInvalidator drops cached auth state for a user after a mutation
// that changes what the auth middleware may rely on.
type AuthInvalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}

// UserService handles account business logic.
type UserService struct {
	repo        UserRepository
	invalidator AuthInvalidator
	metrics     metrics.Recorder
}

// NewUserService creates a new UserService. invalidator may be nil when
// no auth cache is in play (tests, tooling).
func NewUserService(repo UserRepository, invalidator AuthInvalidator, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:        repo,
		invalidator: invalidator,
		metrics:     recorder,
	}
}

// RegisterInput defines input for registering a user. PasswordHash is
// opaque to this layer; hashing happens at the HTTP boundary.
type RegisterInput struct {
	Email        string
	PasswordHash string
	Name         string
}

// Register creates a new account. The email is checked before the user
// is constructed or persisted; a duplicate-email race past that check
// surfaces as the repository's conflict error, unchanged.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	existing, err := s.repo.FindUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	user := model.NewUser(ulid.Make().String(), input.Email, input.PasswordHash, input.Name)

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// GetActiveByEmail loads a non-deleted user by email for credential
// checks. Absent and soft-deleted users both report ErrUserNotFound so
// the login path cannot tell them apart.
func (s *UserService) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted() {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByID loads a user by id, deleted or not.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateEmail changes a user's email address. No write happens when the
// new address equals the current one.
func (s *UserService) UpdateEmail(ctx context.Context, userID, newEmail string) error {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsDeleted() {
		return ErrUserAlreadyDeleted
	}

	holder, err := s.repo.FindUserByEmail(ctx, newEmail)
	if err != nil {
		return err
	}
	if holder != nil && holder.ID != user.ID {
		return ErrEmailExists
	}

	if newEmail == user.Email {
		return nil
	}

	if err := s.repo.UpdateUser(ctx, user.UpdateEmail(newEmail)); err != nil {
		return err
	}

	s.metrics.IncUserUpdated()
	s.invalidate(ctx, userID)

	return nil
}

// UpdatePassword changes a user's password hash. No write happens when
// the new hash equals the current one.
func (s *UserService) UpdatePassword(ctx context.Context, userID, newPasswordHash string) error {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsDeleted() {
		return ErrUserAlreadyDeleted
	}

	if newPasswordHash == user.PasswordHash {
		return nil
	}

	if err := s.repo.UpdateUser(ctx, user.UpdatePasswordHash(newPasswordHash)); err != nil {
		return err
	}

	s.metrics.IncUserUpdated()

	return nil
}

// Delete soft-deletes a user by setting the deletion timestamp. The
// transition is one-way: a second delete reports ErrUserAlreadyDeleted.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsDeleted() {
		return ErrUserAlreadyDeleted
	}

	if err := s.repo.UpdateUser(ctx, user.MarkDeleted(time.Now().UTC())); err != nil {
		return err
	}

	s.metrics.IncUserDeleted()
	s.invalidate(ctx, userID)

	return nil
}

// Count returns the total number of user rows for the health endpoint.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.repo.CountUsers(ctx)
}

// invalidate drops cached auth state. Best effort: a cache miss later is
// just a repository round-trip.
func (s *UserService) invalidate(ctx context.Context, userID string) {
	if s.invalidator == nil {
		return
	}
	_ = s.invalidator.InvalidateUser(ctx, userID)
}
