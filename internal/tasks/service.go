// Package tasks manages the user's procurement task list and renders it as
// context for the assistant.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
	"github.com/ayush/sourcing-assistant/backend/internal/store"
)

// Key is the KV key holding the task list.
const Key = "tasks"

const noTasksContext = "The user currently has no tasks in their task list."

var (
	ErrTaskNotFound = errors.New("tasks: task not found")
	ErrEmptyText    = errors.New("tasks: text is required")
)

// Service stores the task list as a single JSON value, newest first.
type Service struct {
	kv  store.KV
	now func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewService(kv store.KV) *Service {
	return &Service{kv: kv, now: time.Now}
}

func (s *Service) load(ctx context.Context) ([]models.Task, error) {
	var list []models.Task
	if _, err := store.GetJSON(ctx, s.kv, Key, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// All returns the tasks in stored order, newest first.
func (s *Service) All(ctx context.Context) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// List returns pending tasks followed by completed ones, each group newest
// first.
func (s *Service) List(ctx context.Context) ([]models.Task, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	pending, done := split(all)
	return append(pending, done...), nil
}

// Add prepends a task. IDs are millisecond timestamps, bumped when needed
// so they strictly increase.
func (s *Service) Add(ctx context.Context, text string) (models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return models.Task{}, err
	}

	now := s.now()
	id := now.UnixMilli()
	for _, t := range list {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	task := models.Task{ID: id, Text: text, CreatedAt: now.UTC()}
	list = append([]models.Task{task}, list...)
	if err := store.SetJSON(ctx, s.kv, Key, list); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// Toggle flips a task's completed flag.
func (s *Service) Toggle(ctx context.Context, id int64) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return models.Task{}, err
	}
	for i := range list {
		if list[i].ID == id {
			list[i].Completed = !list[i].Completed
			if err := store.SetJSON(ctx, s.kv, Key, list); err != nil {
				return models.Task{}, err
			}
			return list[i], nil
		}
	}
	return models.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, t := range list {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(list) {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return store.SetJSON(ctx, s.kv, Key, kept)
}

// Stats summarises the current list.
func (s *Service) Stats(ctx context.Context) (models.TaskStats, error) {
	all, err := s.All(ctx)
	if err != nil {
		return models.TaskStats{}, err
	}
	return Summarize(all), nil
}

// Context renders the current list for the system prompt.
func (s *Service) Context(ctx context.Context) (string, error) {
	all, err := s.All(ctx)
	if err != nil {
		return "", err
	}
	return RenderContext(all), nil
}

// Summarize counts tasks. CompletionRate is a rounded percentage.
func Summarize(list []models.Task) models.TaskStats {
	pending, done := split(list)
	st := models.TaskStats{Total: len(list), Pending: len(pending), Completed: len(done)}
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// RenderContext describes list in plain text, pending tasks first.
func RenderContext(list []models.Task) string {
	if len(list) == 0 {
		return noTasksContext
	}
	pending, done := split(list)

	var b strings.Builder
	b.WriteString("The user's current tasks:\n\n")
	if len(pending) > 0 {
		fmt.Fprintf(&b, "Pending tasks (%d):\n", len(pending))
		for i, t := range pending {
			fmt.Fprintf(&b, "%d. %s\n", i+1, t.Text)
		}
		b.WriteString("\n")
	}
	if len(done) > 0 {
		fmt.Fprintf(&b, "Completed tasks (%d):\n", len(done))
		for i, t := range done {
			fmt.Fprintf(&b, "%d. ✓ %s\n", i+1, t.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

func split(list []models.Task) (pending, done []models.Task) {
	for _, t := range list {
		if t.Completed {
			done = append(done, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, done
}
