package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"aid-backend/internal/auth"
	"aid-backend/internal/cache"
	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetActive(ctx context.Context, id int, active bool) error
}

type UserService struct {
	users userStore
	jwt   *auth.JWTManager
}

func NewUserService(users userStore, jwt *auth.JWTManager) *UserService {
	return &UserService{users: users, jwt: jwt}
}

// Login authenticates an admin user and issues a JWT. Successful credential
// checks are cached in Redis so repeated logins skip the bcrypt comparison.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	if userID, ok := cache.GetCachedAuth(ctx, email, req.Password); ok {
		user, err := s.users.Get(ctx, userID)
		if err == nil && user.IsActive {
			return s.issueToken(user)
		}
		// stale cache entry, fall through to the database
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrValidation)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", ErrValidation)
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrValidation)
	}

	cache.CacheAuth(ctx, email, req.Password, user.ID)
	log.Printf("[UserService] login: %s", user.Email)
	return s.issueToken(user)
}

func (s *UserService) issueToken(user *models.User) (*models.LoginResponse, error) {
	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// CreateUser registers a new admin or operator account
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Role != "admin" && req.Role != "operator" {
		return nil, fmt.Errorf("%w: role must be admin or operator", ErrValidation)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns all admin accounts
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// SetUserActive enables or disables an account
func (s *UserService) SetUserActive(ctx context.Context, id int, active bool) error {
	if _, err := s.users.Get(ctx, id); err != nil {
		return notFoundOr(err, "user")
	}
	return s.users.SetActive(ctx, id, active)
}
