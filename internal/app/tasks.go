package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rdo34/todo/internal/model"
	"github.com/rdo34/todo/internal/store"
)

// TaskRepository owns the ordered task list. Insertion order is display order.
type TaskRepository struct {
	store store.Store
	items []model.Task
}

func newTaskRepository(s store.Store) *TaskRepository {
	return &TaskRepository{store: s}
}

func (r *TaskRepository) load() error {
	items, err := loadList[model.Task](r.store, store.KeyTasks)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].Priority == "" {
			items[i].Priority = model.PriorityNone
		}
	}
	r.items = items
	return nil
}

func (r *TaskRepository) persist() error {
	return saveList(r.store, store.KeyTasks, r.items)
}

// validateNew trims text and checks it against existing tasks. With
// activeOnly, completed tasks are ignored by the duplicate check.
func (r *TaskRepository) validateNew(text string, activeOnly bool) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyInput
	}
	key := model.Normalize(text)
	for _, t := range r.items {
		if activeOnly && t.Completed {
			continue
		}
		if model.Normalize(t.Text) == key {
			return "", fmt.Errorf("%w: %q", ErrDuplicateTask, t.Text)
		}
	}
	return text, nil
}

func (r *TaskRepository) add(t model.Task) error {
	r.items = append(r.items, t)
	return r.persist()
}

func (r *TaskRepository) index(id int64) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with id.
func (r *TaskRepository) Get(id int64) (model.Task, bool) {
	if i := r.index(id); i >= 0 {
		return r.items[i], true
	}
	return model.Task{}, false
}

// List returns a copy of all tasks in display order.
func (r *TaskRepository) List() []model.Task {
	out := make([]model.Task, len(r.items))
	copy(out, r.items)
	return out
}

// ListActive returns the tasks that are not completed, in display order.
func (r *TaskRepository) ListActive() []model.Task {
	out := make([]model.Task, 0, len(r.items))
	for _, t := range r.items {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// update applies fn to the task with id, if present, then persists.
func (r *TaskRepository) update(id int64, fn func(*model.Task)) error {
	if i := r.index(id); i >= 0 {
		fn(&r.items[i])
	}
	return r.persist()
}

func (r *TaskRepository) remove(id int64) error {
	filtered := r.items[:0]
	for _, t := range r.items {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	r.items = filtered
	return r.persist()
}

func loadList[T any](s store.Store, key string) ([]T, error) {
	data, err := s.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func saveList[T any](s store.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
