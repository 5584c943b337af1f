package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskdash/apigateway/internal/auth"
	"github.com/taskdash/apigateway/internal/domain"
	"github.com/taskdash/apigateway/internal/export"
	"github.com/taskdash/apigateway/internal/service"
	"github.com/taskdash/apigateway/internal/service/serviceutils"
)

type TaskHandler struct {
	svc      service.TaskService
	exporter *export.TaskExporter
}

func NewTaskHandler(svc service.TaskService, exporter *export.TaskExporter) *TaskHandler {
	return &TaskHandler{svc: svc, exporter: exporter}
}

// dateFormats are the accepted query/body date representations.
var dateFormats = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateFormats {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// parseFilter reads the list filter from query parameters. An unparseable
// date is rejected outright rather than silently producing a broken
// predicate.
func parseFilter(c echo.Context) (domain.TaskFilter, error) {
	filter := domain.TaskFilter{
		Status:   domain.Status(c.QueryParam("status")),
		Priority: domain.Priority(c.QueryParam("priority")),
		Search:   c.QueryParam("search"),
	}

	if raw := c.QueryParam("startDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, domain.NewValidationError("startDate", "unparseable date")
		}
		filter.DueFrom = &t
	}
	if raw := c.QueryParam("endDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, domain.NewValidationError("endDate", "unparseable date")
		}
		filter.DueTo = &t
	}
	return filter, nil
}

// ListHandler handles GET /api/tasks
func (h *TaskHandler) ListHandler(c echo.Context) error {
	ctx := c.Request().Context()
	identity, _ := auth.IdentityFrom(c)

	filter, err := parseFilter(c)
	if err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}

	tasks, err := h.svc.List(ctx, identity.ID, filter)
	if err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetHandler handles GET /api/tasks/:id
func (h *TaskHandler) GetHandler(c echo.Context) error {
	ctx := c.Request().Context()
	identity, _ := auth.IdentityFrom(c)

	task, err := h.svc.Get(ctx, identity.ID, c.Param("id"))
	if err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

type createTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     string          `json:"dueDate"`
	Priority    domain.Priority `json:"priority"`
	Assignee    string          `json:"assignee"`
}

// CreateHandler handles POST /api/tasks
func (h *TaskHandler) CreateHandler(c echo.Context) error {
	ctx := c.Request().Context()
	identity, _ := auth.IdentityFrom(c)

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Corpo da requisição inválido")
	}

	input := domain.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
	}
	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			return serviceutils.ResponseDomainError(c, domain.NewValidationError("dueDate", "unparseable date"))
		}
		input.DueDate = due
	}

	task, err := h.svc.Create(ctx, identity.ID, input)
	if err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

type updateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	DueDate     *string          `json:"dueDate"`
	Priority    *domain.Priority `json:"priority"`
	Assignee    *string          `json:"assignee"`
	Status      *domain.Status   `json:"status"`
}

// UpdateHandler handles PUT /api/tasks/:id
func (h *TaskHandler) UpdateHandler(c echo.Context) error {
	ctx := c.Request().Context()
	identity, _ := auth.IdentityFrom(c)

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Corpo da requisição inválido")
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		Status:      req.Status,
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			return serviceutils.ResponseDomainError(c, domain.NewValidationError("dueDate", "unparseable date"))
		}
		update.DueDate = &due
	}

	task, err := h.svc.Update(ctx, identity.ID, c.Param("id"), update)
	if err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteHandler handles DELETE /api/tasks/:id
func (h *TaskHandler) DeleteHandler(c echo.Context) error {
	ctx := c.Request().Context()
	identity, _ := auth.IdentityFrom(c)

	if err := h.svc.Delete(ctx, identity.ID, c.Param("id")); err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}
	return serviceutils.ResponseMessage(c, http.StatusOK, "Tarefa removida")
}

// CompleteHandler handles PATCH /api/tasks/:id/complete
func (h *TaskHandler) CompleteHandler(c echo.Context) error {
	ctx := c.Request().Context()
	identity, _ := auth.IdentityFrom(c)

	task, err := h.svc.Complete(ctx, identity.ID, c.Param("id"))
	if err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// StatsHandler handles GET /api/tasks/stats/summary
func (h *TaskHandler) StatsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	identity, _ := auth.IdentityFrom(c)

	stats, err := h.svc.Stats(ctx, identity.ID)
	if err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ExportHandler handles GET /api/tasks/export. It applies the same filters
// as the list endpoint and streams the result as an .xlsx attachment.
func (h *TaskHandler) ExportHandler(c echo.Context) error {
	ctx := c.Request().Context()
	identity, _ := auth.IdentityFrom(c)

	filter, err := parseFilter(c)
	if err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}

	tasks, err := h.svc.List(ctx, identity.ID, filter)
	if err != nil {
		return serviceutils.ResponseDomainError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="tarefas.xlsx"`)
	return h.exporter.Write(tasks, c.Response().Writer)
}
