package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"yatube/internal/models"
	"yatube/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// reservedUsernames collide with top-level routes.
var reservedUsernames = map[string]bool{
	"new":     true,
	"follow":  true,
	"group":   true,
	"auth":    true,
	"media":   true,
	"static":  true,
	"metrics": true,
	"healthz": true,
}

type UserStorage interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

type SignupRequest struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
	Password  string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
}

type UserService struct {
	users UserStorage
}

func NewUserService(users UserStorage) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Signup(ctx context.Context, req SignupRequest) (models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req); err != nil {
		return models.User{}, err
	}
	if reservedUsernames[strings.ToLower(req.Username)] {
		return models.User{}, fieldError("username", "This username is reserved.")
	}

	taken, err := s.users.UsernameTaken(ctx, req.Username)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return models.User{}, fieldError("username", "A user with that username already exists.")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate checks the credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (models.User, error) {
	return s.users.GetByID(ctx, id)
}
