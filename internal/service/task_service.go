package service

import (
	"context"
	"strings"
	"time"

	"github.com/taskdash/apigateway/internal/domain"
	"github.com/taskdash/apigateway/internal/events"
	"github.com/taskdash/apigateway/internal/logger"
)

// TaskSearcher serves the free-text search filter from an external index.
type TaskSearcher interface {
	Index(ctx context.Context, task *domain.Task) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, owner, term string) ([]string, error)
}

// EventPublisher emits task lifecycle events. Implementations are fire and
// forget.
type EventPublisher interface {
	Publish(ctx context.Context, action string, task *domain.Task)
}

type TaskService interface {
	List(ctx context.Context, owner string, filter domain.TaskFilter) ([]domain.Task, error)
	Get(ctx context.Context, owner, id string) (*domain.Task, error)
	Create(ctx context.Context, owner string, input domain.TaskInput) (*domain.Task, error)
	Update(ctx context.Context, owner, id string, update domain.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, owner, id string) error
	Complete(ctx context.Context, owner, id string) (*domain.Task, error)
	Stats(ctx context.Context, owner string) (*domain.TaskStats, error)
}

// taskService owns the task rules: owner scoping, the pending/completed
// state machine, validation before persistence, and the statistics summary.
// Cache, searcher and publisher are optional; pass nil to disable.
type taskService struct {
	repo      domain.TaskRepository
	cache     domain.StatsCache
	searcher  TaskSearcher
	publisher EventPublisher
	statsTTL  time.Duration
	nowFn     func() time.Time
}

func NewTaskService(repo domain.TaskRepository, cache domain.StatsCache, searcher TaskSearcher, publisher EventPublisher, statsTTL time.Duration) TaskService {
	return &taskService{
		repo:      repo,
		cache:     cache,
		searcher:  searcher,
		publisher: publisher,
		statsTTL:  statsTTL,
		nowFn:     time.Now,
	}
}

func (s *taskService) List(ctx context.Context, owner string, filter domain.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.repo.List(ctx, owner, filter)
	if err != nil {
		return nil, err
	}
	if filter.Search == "" {
		return tasks, nil
	}

	if s.searcher != nil {
		ids, err := s.searcher.Search(ctx, owner, filter.Search)
		if err == nil {
			return filterByID(tasks, ids), nil
		}
		// The index is best-effort; degrade to in-memory matching.
		logger.ErrorLog(ctx, "search index unavailable, falling back: %v", err)
	}

	matched := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.MatchesSearch(filter.Search) {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

// filterByID keeps the repository's due-date ordering while narrowing to the
// ids the search index returned.
func filterByID(tasks []domain.Task, ids []string) []domain.Task {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	matched := make([]domain.Task, 0, len(ids))
	for _, task := range tasks {
		if _, ok := idSet[task.ID]; ok {
			matched = append(matched, task)
		}
	}
	return matched
}

func (s *taskService) Get(ctx context.Context, owner, id string) (*domain.Task, error) {
	return s.getOwned(ctx, owner, id)
}

// getOwned loads a task and enforces the access order every mutation relies
// on: existence first, ownership second.
func (s *taskService) getOwned(ctx context.Context, owner, id string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Owner != owner {
		return nil, domain.ErrNotTaskOwner
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, owner string, input domain.TaskInput) (*domain.Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    priority,
		Assignee:    input.Assignee,
		Status:      domain.StatusPending,
		Owner:       owner,
		CreatedAt:   s.nowFn(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, events.ActionCreated, task)
	return task, nil
}

func validateInput(input domain.TaskInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return domain.NewValidationError("title", "required")
	}
	if input.DueDate.IsZero() {
		return domain.NewValidationError("dueDate", "required")
	}
	if strings.TrimSpace(input.Assignee) == "" {
		return domain.NewValidationError("assignee", "required")
	}
	if input.Priority != "" && !domain.ValidPriority(input.Priority) {
		return domain.NewValidationError("priority", "unknown value")
	}
	return nil
}

func (s *taskService) Update(ctx context.Context, owner, id string, update domain.TaskUpdate) (*domain.Task, error) {
	task, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(task, update, s.nowFn); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, events.ActionUpdated, task)
	return task, nil
}

// applyUpdate overwrites only the fields the payload carries. A status
// transition to concluída stamps CompletedDate; any transition away clears
// it, keeping the completed-iff-stamped invariant.
func applyUpdate(task *domain.Task, update domain.TaskUpdate, now func() time.Time) error {
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return domain.NewValidationError("title", "required")
		}
		task.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.DueDate != nil {
		if update.DueDate.IsZero() {
			return domain.NewValidationError("dueDate", "required")
		}
		task.DueDate = *update.DueDate
	}
	if update.Priority != nil {
		if !domain.ValidPriority(*update.Priority) {
			return domain.NewValidationError("priority", "unknown value")
		}
		task.Priority = *update.Priority
	}
	if update.Assignee != nil {
		if strings.TrimSpace(*update.Assignee) == "" {
			return domain.NewValidationError("assignee", "required")
		}
		task.Assignee = *update.Assignee
	}
	if update.Status != nil && *update.Status != task.Status {
		if !domain.ValidStatus(*update.Status) {
			return domain.NewValidationError("status", "unknown value")
		}
		task.Status = *update.Status
		if task.Status == domain.StatusCompleted {
			completed := now()
			task.CompletedDate = &completed
		} else {
			task.CompletedDate = nil
		}
	}
	return nil
}

func (s *taskService) Delete(ctx context.Context, owner, id string) error {
	task, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(ctx, owner)
	if s.publisher != nil {
		s.publisher.Publish(ctx, events.ActionDeleted, task)
	}
	if s.searcher != nil {
		if err := s.searcher.Remove(ctx, id); err != nil {
			logger.ErrorLog(ctx, "failed to remove task %s from search index: %v", id, err)
		}
	}
	return nil
}

// Complete marks a task concluída. Completing an already completed task is a
// no-op: status and CompletedDate keep their values.
func (s *taskService) Complete(ctx context.Context, owner, id string) (*domain.Task, error) {
	task, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if task.Status == domain.StatusCompleted {
		return task, nil
	}

	completed := s.nowFn()
	task.Status = domain.StatusCompleted
	task.CompletedDate = &completed

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, events.ActionCompleted, task)
	return task, nil
}

// Stats runs the independent owner-scoped count queries plus the upcoming
// range query. The counts are not transactionally consistent with one
// another; a task created mid-summary may appear in some counts and not
// others.
func (s *taskService) Stats(ctx context.Context, owner string) (*domain.TaskStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, owner)
		if err != nil {
			logger.ErrorLog(ctx, "stats cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	total, err := s.repo.CountByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.CountByStatus(ctx, owner, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.CountByStatus(ctx, owner, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	high, err := s.repo.CountByPriority(ctx, owner, domain.PriorityHigh)
	if err != nil {
		return nil, err
	}
	medium, err := s.repo.CountByPriority(ctx, owner, domain.PriorityMedium)
	if err != nil {
		return nil, err
	}
	low, err := s.repo.CountByPriority(ctx, owner, domain.PriorityLow)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	upcoming, err := s.repo.ListUpcoming(ctx, owner, now, now.Add(domain.UpcomingWindow))
	if err != nil {
		return nil, err
	}

	stats := &domain.TaskStats{
		TotalTasks:     total,
		CompletedTasks: completed,
		PendingTasks:   pending,
		Priorities: domain.PriorityBreakdown{
			High:   high,
			Medium: medium,
			Low:    low,
		},
		UpcomingTasks: upcoming,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, owner, stats, s.statsTTL); err != nil {
			logger.ErrorLog(ctx, "stats cache write failed: %v", err)
		}
	}
	return stats, nil
}

func (s *taskService) afterMutation(ctx context.Context, action string, task *domain.Task) {
	s.invalidateStats(ctx, task.Owner)
	if s.publisher != nil {
		s.publisher.Publish(ctx, action, task)
	}
	if s.searcher != nil {
		if err := s.searcher.Index(ctx, task); err != nil {
			logger.ErrorLog(ctx, "failed to index task %s: %v", task.ID, err)
		}
	}
}

func (s *taskService) invalidateStats(ctx context.Context, owner string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, owner); err != nil {
		logger.ErrorLog(ctx, "stats cache invalidation failed: %v", err)
	}
}
