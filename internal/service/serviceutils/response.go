package serviceutils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdash/apigateway/internal/domain"
	"github.com/taskdash/apigateway/internal/logger"
)

// MessageResponse is the error (and confirmation) body shape the dashboard
// client expects.
type MessageResponse struct {
	Message string `json:"message"`
}

func ResponseMessage(c echo.Context, code int, msg string) error {
	return c.JSON(code, MessageResponse{Message: msg})
}

// ResponseDomainError maps the domain error taxonomy to status codes:
// not-found 404, ownership mismatch 403, validation 400, bad credentials
// 401, anything else a generic 500. Internal detail goes to the log, never
// to the client.
func ResponseDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return ResponseMessage(c, http.StatusNotFound, "Tarefa não encontrada")
	case errors.Is(err, domain.ErrNotTaskOwner):
		return ResponseMessage(c, http.StatusForbidden, "Não autorizado")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return ResponseMessage(c, http.StatusUnauthorized, "Credenciais inválidas")
	case errors.Is(err, domain.ErrEmailTaken):
		return ResponseMessage(c, http.StatusBadRequest, "Email já cadastrado")
	case domain.IsValidation(err):
		return ResponseMessage(c, http.StatusBadRequest, err.Error())
	default:
		logger.ErrorLog(c.Request().Context(), "internal error on %s %s: %v",
			c.Request().Method, c.Request().URL.Path, err)
		return ResponseMessage(c, http.StatusInternalServerError, "Erro no servidor")
	}
}
