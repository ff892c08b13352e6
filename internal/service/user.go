// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/penshort/userlinks/internal/auth"
	"github.com/penshort/userlinks/internal/metrics"
	"github.com/penshort/userlinks/internal/model"
	"github.com/penshort/userlinks/internal/repository"
	"github.com/penshort/userlinks/internal/validator"
)

// UserRepository is the persistence the user service needs.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, id int64, name, email string) (bool, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	SearchUsersByName(ctx context.Context, fragment string) ([]model.User, error)
	ListCredentialsByEmail(ctx context.Context, email string) ([]model.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// UserInput carries the fields a client sent. Nil means absent.
type UserInput struct {
	Name     *string
	Email    *string
	Password *string
}

func (in UserInput) fields() validator.Fields {
	f := validator.Fields{}
	if in.Name != nil {
		f[validator.FieldName] = *in.Name
	}
	if in.Email != nil {
		f[validator.FieldEmail] = *in.Email
	}
	if in.Password != nil {
		f[validator.FieldPassword] = *in.Password
	}
	return f
}

// UserService handles user management business logic.
type UserService struct {
	repo    UserRepository
	hasher  PasswordHasher
	metrics metrics.Recorder
}

// NewUserService creates a new UserService. A nil hasher uses auth defaults.
func NewUserService(repo UserRepository, hasher PasswordHasher, recorder metrics.Recorder) *UserService {
	if hasher == nil {
		hasher = auth.NewHasher(auth.DefaultParams)
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		hasher:  hasher,
		metrics: recorder,
	}
}

// HashPassword returns the stored form of password.
func (s *UserService) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

// ListUsers returns all users, never nil.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

// GetUser returns the user with id or ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// CreateUser hashes password and inserts the user without any checks.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (int64, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// UpdateUser sets name and email, reporting whether a row changed.
func (s *UserService) UpdateUser(ctx context.Context, id int64, name, email string) (bool, error) {
	return s.repo.UpdateUser(ctx, id, name, email)
}

// DeleteUser removes a user, reporting whether a row was deleted.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return s.repo.DeleteUser(ctx, id)
}

// SearchUsers returns users whose name contains fragment, never nil.
func (s *UserService) SearchUsers(ctx context.Context, fragment string) ([]model.User, error) {
	users, err := s.repo.SearchUsersByName(ctx, fragment)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

// AuthenticateUser checks password against every stored row for email,
// lowest id first, and returns the first matching id.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (int64, bool, error) {
	creds, err := s.repo.ListCredentialsByEmail(ctx, email)
	if err != nil {
		return 0, false, err
	}

	for _, c := range creds {
		ok, err := s.hasher.Verify(password, c.PasswordHash)
		if err != nil {
			// A row with an unreadable hash can never authenticate.
			continue
		}
		if ok {
			return c.ID, true, nil
		}
	}
	return 0, false, nil
}

// Register validates input, rejects a known email and creates the user.
func (s *UserService) Register(ctx context.Context, in UserInput) (*model.User, error) {
	if ok, msg := validator.ValidateUserPayload(in.fields(),
		validator.FieldName, validator.FieldEmail, validator.FieldPassword); !ok {
		return nil, newValidationError(msg)
	}
	name, email, password := *in.Name, *in.Email, *in.Password

	exists, err := s.repo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	id, err := s.CreateUser(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	s.metrics.IncUserCreated()
	return &model.User{ID: id, Name: name, Email: email}, nil
}

// Update validates input and changes name and email of an existing user.
// Any password sent is validated but not stored.
func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*model.User, error) {
	if ok, msg := validator.ValidateUserPayload(in.fields(),
		validator.FieldName, validator.FieldEmail); !ok {
		return nil, newValidationError(msg)
	}
	name, email := *in.Name, *in.Email

	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}

	taken, err := s.repo.EmailExists(ctx, email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	updated, err := s.UpdateUser(ctx, id, name, email)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrUpdateFailed
	}

	s.metrics.IncUserUpdated()
	return &model.User{ID: id, Name: name, Email: email}, nil
}

// Delete removes an existing user.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	deleted, err := s.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrDeleteFailed
	}

	s.metrics.IncUserDeleted()
	return nil
}

// Login returns the id of the user matching email and password.
// Both fields must be present; only the email format is checked.
func (s *UserService) Login(ctx context.Context, email, password *string) (int64, error) {
	if email == nil || password == nil {
		return 0, newValidationError(MsgLoginFieldsRequired)
	}
	if !validator.ValidateEmail(*email) {
		return 0, newValidationError(validator.MsgInvalidEmail)
	}

	id, ok, err := s.AuthenticateUser(ctx, *email, *password)
	if err != nil {
		return 0, err
	}
	s.metrics.IncLogin(ok)
	if !ok {
		return 0, ErrInvalidCredentials
	}
	return id, nil
}

// Search returns users whose name contains name.
func (s *UserService) Search(ctx context.Context, name string) ([]model.User, error) {
	if name == "" {
		return nil, newValidationError(MsgSearchNameRequired)
	}
	return s.SearchUsers(ctx, name)
}

func publicUsers(users []model.User) []model.User {
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

// Compile-time check.
var _ UserRepository = (*repository.Repository)(nil)
