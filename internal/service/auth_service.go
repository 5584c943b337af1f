package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskdash/apigateway/internal/auth"
	"github.com/taskdash/apigateway/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type authService struct {
	users domain.UserRepository
	jwt   *auth.JWTManager
}

func NewAuthService(users domain.UserRepository, jwt *auth.JWTManager) AuthService {
	return &authService{users: users, jwt: jwt}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, "", domain.NewValidationError("name", "required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", domain.NewValidationError("email", "required")
	}
	if len(password) < 6 {
		return nil, "", domain.NewValidationError("password", "must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.token(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the password against the stored hash. Unknown email and
// wrong password produce the same error so the response does not reveal
// which one failed.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.token(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) token(user *domain.User) (string, error) {
	return s.jwt.Generate(domain.Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}
