package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdash/apigateway/internal/domain"
	"github.com/taskdash/apigateway/internal/handler"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*domain.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.User, string, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func newAuthApp(svc *stubAuthService) *echo.Echo {
	e := echo.New()
	authHandler := handler.NewAuthHandler(svc)
	e.POST("/api/auth/register", authHandler.RegisterHandler)
	e.POST("/api/auth/login", authHandler.LoginHandler)
	return e
}

func TestRegisterHandler(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*domain.User, string, error) {
			assert.Equal(t, "Ana", name)
			assert.Equal(t, "ana@example.com", email)
			return &domain.User{ID: "user-1", Name: name, Email: email, Role: domain.RoleUser}, "jwt-token", nil
		},
	}
	e := newAuthApp(svc)

	rec := doRequest(e, http.MethodPost, "/api/auth/register", "",
		`{"name":"Ana","email":"ana@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "jwt-token", body["token"])
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.NotContains(t, user, "passwordHash")
}

func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*domain.User, string, error) {
			return nil, "", domain.ErrEmailTaken
		},
	}
	e := newAuthApp(svc)

	rec := doRequest(e, http.MethodPost, "/api/auth/register", "",
		`{"name":"Ana","email":"ana@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			if password != "secret1" {
				return nil, "", domain.ErrInvalidCredentials
			}
			return &domain.User{ID: "user-1", Email: email}, "jwt-token", nil
		},
	}
	e := newAuthApp(svc)

	rec := doRequest(e, http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
