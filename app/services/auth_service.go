package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// EventUserRegistered fires with the new models.User after registration.
const EventUserRegistered = "user.registered"

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Username string `json:"username" validate:"nullable,max=150"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"max=300"`
	Role     string `json:"role"`
}

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates an account. The username defaults to the email and the
// name is split on its first space into first and last name.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	role, err := registrationRole(in.Role)
	if err != nil {
		return models.User{}, err
	}
	return s.create(ctx, in, role)
}

// CreateUser is the operator path used by the CLI; any valid role is allowed.
func (s *AuthService) CreateUser(ctx context.Context, in RegisterInput, role models.Role) (models.User, error) {
	if !role.Valid() {
		return models.User{}, invalid("role", fmt.Sprintf("%q is not a valid choice.", role))
	}
	return s.create(ctx, in, role)
}

func (s *AuthService) create(ctx context.Context, in RegisterInput, role models.Role) (models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return models.User{}, invalid("email", "This field is required.")
	}
	if in.Password == "" {
		return models.User{}, invalid("password", "This field is required.")
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = email
	}

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return models.User{}, fmt.Errorf("register: check username: %w", err)
	}
	if taken {
		return models.User{}, ErrDuplicateUsername
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("register: hash password: %w", err)
	}

	first, last := SplitName(in.Name)
	user := models.User{
		Username:  username,
		Email:     email,
		Password:  hash,
		FirstName: first,
		LastName:  last,
		Role:      role,
		IsActive:  true,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if lostInsertRace(ctx, err, func(ctx context.Context) (bool, error) {
			return s.users.UsernameExists(ctx, username)
		}) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, fmt.Errorf("register: create user: %w", err)
	}

	event.Fire(ctx, EventUserRegistered, user)
	return user, nil
}

func registrationRole(raw string) (models.Role, error) {
	if strings.TrimSpace(raw) == "" {
		return models.RoleUser, nil
	}
	role, err := models.ParseRole(raw)
	if err != nil {
		return "", invalid("role", fmt.Sprintf("%q is not a valid choice.", raw))
	}
	if role == models.RoleAdmin && !config.AllowAdminSignup() {
		return "", invalid("role", "Admin accounts cannot be self-registered.")
	}
	return role, nil
}

// SplitName splits on the first space: "Jane van Doe" gives "Jane" and
// "van Doe"; a single word leaves the last name empty.
func SplitName(name string) (first, last string) {
	first, last, _ = strings.Cut(strings.TrimSpace(name), " ")
	return first, strings.TrimSpace(last)
}

// Login checks credentials and issues an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (auth.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if orm.IsNotFound(err) {
			return auth.TokenPair{}, ErrInvalidCredentials
		}
		return auth.TokenPair{}, fmt.Errorf("login: find user: %w", err)
	}
	if !auth.CheckPassword(user.Password, password) {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return auth.TokenPair{}, ErrInactiveAccount
	}
	return auth.GeneratePair(user.ID, user.Role.String())
}

// Refresh exchanges a refresh token for a new access token. The user is
// reloaded so a disabled account or changed role takes effect.
func (s *AuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := auth.ValidateToken(refresh, auth.TypeRefresh)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if orm.IsNotFound(err) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("refresh: find user: %w", err)
	}
	if !user.IsActive {
		return "", ErrInactiveAccount
	}
	return auth.GenerateToken(user.ID, user.Role.String())
}
