package domain

import (
	"context"
	"time"
)

// TaskRepository is the Datastore-backed task collection. List applies the
// owner clause plus the filter's status/priority/date clauses and returns
// tasks ordered by ascending due date; free-text search is the caller's
// concern.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, owner string, filter TaskFilter) ([]Task, error)

	CountByOwner(ctx context.Context, owner string) (int, error)
	CountByStatus(ctx context.Context, owner string, status Status) (int, error)
	CountByPriority(ctx context.Context, owner string, priority Priority) (int, error)
	ListUpcoming(ctx context.Context, owner string, from, to time.Time) ([]Task, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// StatsCache caches the statistics summary per owner. Implementations are
// best-effort: a miss and a failure look the same to callers.
type StatsCache interface {
	Get(ctx context.Context, owner string) (*TaskStats, error)
	Set(ctx context.Context, owner string, stats *TaskStats, ttl time.Duration) error
	Invalidate(ctx context.Context, owner string) error
}
