package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// CreateUserInput carries registration fields before validation.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by a successful Authenticate call.
type AuthResult struct {
	User  *domain.User
	Token string
}

// UserService describes account lifecycle operations.
//
// Lookups return (nil, nil) when nothing matches, and Authenticate returns
// (nil, nil) for wrong credentials; bad credentials are not exceptional.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, userID int64) error
	UpdateProfile(ctx context.Context, userID int64, name, email string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	VerifyEmail(ctx context.Context, userID int64) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    Clock
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, now Clock) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    now,
	}
}

func (s *userService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.Validationf("field name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, domain.Validationf("field email is required")
	}
	if input.Password == "" {
		return nil, domain.Validationf("field password is required")
	}
	if len(input.Password) < 8 {
		return nil, domain.Validationf("password must be at least 8 characters long")
	}

	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, domain.Conflictf("email %s is already registered", email)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(input.Name, email, hash, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	userID, err := domain.NewUserID(id)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	addr, err := domain.NewEmail(email)
	if err != nil {
		return nil, nil
	}

	user, err := s.users.FindByEmail(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.Password()) {
		return nil, nil
	}

	token, err := s.tokens.Issue(user.ID())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	user.SetRememberToken(uuid.NewString(), s.now().UTC())
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (s *userService) Logout(ctx context.Context, userID int64) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	user.SetRememberToken("", s.now().UTC())
	return s.users.Save(ctx, user)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, name, email string) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	addr, err := domain.NewEmail(email)
	if err != nil {
		return nil, err
	}
	if addr != user.Email() {
		existing, err := s.users.FindByEmail(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("lookup email: %w", err)
		}
		if existing != nil {
			return nil, domain.Conflictf("email %s is already registered", addr)
		}
	}

	if err := user.UpdateProfile(name, addr, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.Validationf("password must be at least 8 characters long")
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.Validationf("unknown user")
	}
	if !s.hasher.Verify(currentPassword, user.Password()) {
		return domain.Validationf("current password does not match")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.ChangePassword(hash, s.now().UTC())
	return s.users.Save(ctx, user)
}

func (s *userService) VerifyEmail(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if !user.IsEmailVerified() {
		user.MarkEmailVerified(s.now().UTC())
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}
