// Package tasks implements service.Service: the task partition of one
// signed-in account, persisted through a kvstore.Store.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"taskflow/internal/kvstore"
	"taskflow/internal/service"
)

// Repository holds the in-memory snapshot of a user's tasks.
// Every mutation rewrites the whole partition, then replaces the snapshot.
//
// A Repository opened without a session is inert: reads return nothing
// and mutations do nothing.
type Repository struct {
	store   kvstore.Store
	session *service.Session
	logger  *log.Logger
	now     func() time.Time
	newID   func() string
	tasks   []service.Task
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator replaces the task ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Repository) { r.newID = fn }
}

// Open creates a Repository for sess and loads its partition.
func Open(ctx context.Context, store kvstore.Store, sess *service.Session, opts ...Option) (*Repository, error) {
	r := &Repository{
		store:   store,
		session: sess,
		logger:  log.New(io.Discard),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if _, err := r.Load(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

var _ service.Service = (*Repository)(nil)

// Load re-reads the partition. Absent or unreadable data is an empty list.
func (r *Repository) Load(ctx context.Context) ([]service.Task, error) {
	if r.session == nil {
		return nil, nil
	}

	var loaded []service.Task
	_, err := kvstore.GetJSON(ctx, r.store, r.key(), &loaded)
	if errors.Is(err, kvstore.ErrCorrupt) {
		r.logger.Debug("ignoring unreadable tasks", "user", r.session.ID, "err", err)
		loaded = nil
	} else if err != nil {
		return nil, err
	}

	r.tasks = normalize(loaded)
	return r.Tasks(), nil
}

// Tasks returns a copy of the current snapshot.
func (r *Repository) Tasks() []service.Task {
	out := make([]service.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Add appends a new pending task.
func (r *Repository) Add(ctx context.Context, data service.TaskFormData) (service.Task, error) {
	if r.session == nil {
		return service.Task{}, nil
	}
	if strings.TrimSpace(data.Title) == "" {
		return service.Task{}, service.ErrTitleRequired
	}
	priority := data.Priority
	if priority == "" {
		priority = service.PriorityMedium
	}
	if !priority.Valid() {
		return service.Task{}, fmt.Errorf("%w: %s", service.ErrInvalidPriority, priority)
	}

	task := service.Task{
		ID:          r.newID(),
		Title:       data.Title,
		Description: data.Description,
		Completed:   false,
		Priority:    priority,
		Category:    data.Category,
		CreatedAt:   r.now(),
	}

	updated := append(r.Tasks(), task)
	if err := r.save(ctx, updated); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// Update merges patch into the task with id.
// Returns false, and writes nothing, if the task does not exist.
func (r *Repository) Update(ctx context.Context, id string, patch service.TaskPatch) (bool, error) {
	if r.session == nil {
		return false, nil
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return false, service.ErrTitleRequired
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return false, fmt.Errorf("%w: %s", service.ErrInvalidPriority, *patch.Priority)
	}

	updated := r.Tasks()
	found := false
	for i := range updated {
		if updated[i].ID == id {
			updated[i] = r.apply(updated[i], patch)
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	if patch.IsEmpty() {
		return true, nil
	}
	if err := r.save(ctx, updated); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the task with id. Returns false if it does not exist.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	if r.session == nil {
		return false, nil
	}

	updated := make([]service.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if t.ID != id {
			updated = append(updated, t)
		}
	}
	if len(updated) == len(r.tasks) {
		return false, nil
	}
	if err := r.save(ctx, updated); err != nil {
		return false, err
	}
	return true, nil
}

// Toggle flips the completion state of the task with id.
func (r *Repository) Toggle(ctx context.Context, id string) (bool, error) {
	task, ok := r.byID(id)
	if !ok {
		return false, nil
	}
	completed := !task.Completed
	return r.Update(ctx, id, service.TaskPatch{Completed: &completed})
}

func (r *Repository) apply(t service.Task, p service.TaskPatch) service.Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil && *p.Completed != t.Completed {
		t.Completed = *p.Completed
		if t.Completed {
			now := r.now()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
	}
	return t
}

func (r *Repository) byID(id string) (service.Task, bool) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

func (r *Repository) save(ctx context.Context, updated []service.Task) error {
	if err := kvstore.SetJSON(ctx, r.store, r.key(), updated); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	r.tasks = updated
	r.logger.Debug("tasks saved", "user", r.session.ID, "count", len(updated))
	return nil
}

func (r *Repository) key() string {
	return kvstore.TasksKey(r.session.ID)
}

// normalize repairs data written by hand or by older versions: completedAt
// is set iff completed (backfilled from createdAt), and a missing or unknown
// priority becomes medium.
func normalize(tasks []service.Task) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		switch {
		case !t.Completed:
			t.CompletedAt = nil
		case t.CompletedAt == nil:
			at := t.CreatedAt
			t.CompletedAt = &at
		}
		if !t.Priority.Valid() {
			t.Priority = service.PriorityMedium
		}
		out = append(out, t)
	}
	return out
}
