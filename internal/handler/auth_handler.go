package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdash/apigateway/internal/domain"
	"github.com/taskdash/apigateway/internal/service"
	"github.com/taskdash/apigateway/internal/service/serviceutils"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// RegisterHandler handles POST /api/auth/register
func (h *AuthHandler) RegisterHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Corpo da requisição inválido")
	}

	user, token, err := h.svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// LoginHandler handles POST /api/auth/login
func (h *AuthHandler) LoginHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Corpo da requisição inválido")
	}

	user, token, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}
