package repository

import (
	"context"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/google/uuid"

	"github.com/taskdash/apigateway/internal/domain"
)

const KindTask = "Task"

// DatastoreTaskRepository persists tasks as Datastore entities keyed by a
// uuid name key. Unknown or malformed ids simply miss, which keeps the
// not-found semantics uniform.
type DatastoreTaskRepository struct {
	client *DatastoreClient
}

func NewDatastoreTaskRepository(client *DatastoreClient) *DatastoreTaskRepository {
	return &DatastoreTaskRepository{client: client}
}

func taskKey(id string) *datastore.Key {
	return datastore.NameKey(KindTask, id, nil)
}

func (r *DatastoreTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	_, err := r.client.ds.Put(ctx, taskKey(task.ID), task)
	return err
}

func (r *DatastoreTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.client.ds.Get(ctx, taskKey(id), &task); err != nil {
		if isNoSuchEntity(err) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	task.ID = id
	return &task, nil
}

func (r *DatastoreTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	_, err := r.client.ds.Put(ctx, taskKey(task.ID), task)
	return err
}

func (r *DatastoreTaskRepository) Delete(ctx context.Context, id string) error {
	return r.client.ds.Delete(ctx, taskKey(id))
}

// buildListQuery translates the filter into a single Datastore predicate.
// The owner clause is unconditional; status and priority clauses are added
// only when present and not the "todas" sentinel; the due-date bounds are
// independently combinable. Results are ordered by ascending due date.
func buildListQuery(owner string, filter domain.TaskFilter) *datastore.Query {
	q := datastore.NewQuery(KindTask).Filter("owner =", owner)

	if filter.HasStatus() {
		q = q.Filter("status =", string(filter.Status))
	}
	if filter.HasPriority() {
		q = q.Filter("priority =", string(filter.Priority))
	}
	if filter.DueFrom != nil {
		q = q.Filter("due_date >=", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		q = q.Filter("due_date <=", *filter.DueTo)
	}

	return q.Order("due_date")
}

func (r *DatastoreTaskRepository) List(ctx context.Context, owner string, filter domain.TaskFilter) ([]domain.Task, error) {
	return r.getAll(ctx, buildListQuery(owner, filter))
}

func (r *DatastoreTaskRepository) CountByOwner(ctx context.Context, owner string) (int, error) {
	q := datastore.NewQuery(KindTask).Filter("owner =", owner)
	return r.client.ds.Count(ctx, q)
}

func (r *DatastoreTaskRepository) CountByStatus(ctx context.Context, owner string, status domain.Status) (int, error) {
	q := datastore.NewQuery(KindTask).
		Filter("owner =", owner).
		Filter("status =", string(status))
	return r.client.ds.Count(ctx, q)
}

func (r *DatastoreTaskRepository) CountByPriority(ctx context.Context, owner string, priority domain.Priority) (int, error) {
	q := datastore.NewQuery(KindTask).
		Filter("owner =", owner).
		Filter("priority =", string(priority))
	return r.client.ds.Count(ctx, q)
}

// ListUpcoming returns the owner's pending tasks due inside [from, to],
// ascending by due date. Bounds are inclusive.
func (r *DatastoreTaskRepository) ListUpcoming(ctx context.Context, owner string, from, to time.Time) ([]domain.Task, error) {
	q := datastore.NewQuery(KindTask).
		Filter("owner =", owner).
		Filter("status =", string(domain.StatusPending)).
		Filter("due_date >=", from).
		Filter("due_date <=", to).
		Order("due_date")
	return r.getAll(ctx, q)
}

func (r *DatastoreTaskRepository) getAll(ctx context.Context, q *datastore.Query) ([]domain.Task, error) {
	var tasks []domain.Task
	keys, err := r.client.ds.GetAll(ctx, q, &tasks)
	if err != nil {
		return nil, err
	}
	for i, key := range keys {
		tasks[i].ID = key.Name
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}
