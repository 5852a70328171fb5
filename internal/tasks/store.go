// Package tasks implements the REST task API: an in-memory task store and the
// /api/tasks routes that expose it.
package tasks

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/idilsaglam/bootcamp/internal/model"
	"github.com/idilsaglam/bootcamp/internal/store/jsonstore"
)

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrTitleRequired is returned when a create, replace or patch leaves the title blank.
	ErrTitleRequired = errors.New("title is required")
)

// Store keeps tasks in memory for the lifetime of the process.
// Ids are handed out strictly increasing and are never reused.
type Store struct {
	mu     sync.RWMutex
	tasks  []model.Task // ordered by id
	nextID int
	now    func() time.Time
	path   string // snapshot file, empty when not persisted
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSnapshot loads tasks from path and saves every mutation back to it.
func WithSnapshot(path string) Option {
	return func(s *Store) { s.path = path }
}

// snapshot is the on-disk form of the store. NextID is kept so ids stay
// unique across restarts even after the highest task was deleted.
type snapshot struct {
	NextID int          `json:"nextId"`
	Tasks  []model.Task `json:"tasks"`
}

// NewStore creates a store. A new store, or one whose snapshot file does not
// exist yet, is seeded with a single "Learn Express" task and the next id is 2.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if s.path != "" {
		var snap snapshot
		found, err := jsonstore.Read(s.path, &snap)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		if found {
			slices.SortFunc(snap.Tasks, func(a, b model.Task) int { return a.ID - b.ID })
			s.tasks = snap.Tasks
			if s.tasks == nil {
				s.tasks = []model.Task{}
			}
			s.nextID = snap.NextID
			if n := len(s.tasks); n > 0 && s.nextID <= s.tasks[n-1].ID {
				s.nextID = s.tasks[n-1].ID + 1
			}
			if s.nextID < 1 {
				s.nextID = 1
			}
			return s, nil
		}
	}

	ts := s.now()
	s.tasks = []model.Task{{ID: 1, Title: "Learn Express", CreatedAt: ts, UpdatedAt: ts}}
	s.nextID = 2
	return s, nil
}

// List returns a copy of all tasks in id order.
func (s *Store) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index(id)
	if !ok {
		return model.Task{}, ErrNotFound
	}
	return s.tasks[i], nil
}

// Create appends a new task and returns it with its assigned id.
func (s *Store) Create(in model.TaskInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, ErrTitleRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	t := model.Task{
		ID:        s.nextID,
		Title:     title,
		Completed: in.Completed != nil && *in.Completed,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	next := append(slices.Clip(s.tasks), t)
	if err := s.commit(next, s.nextID+1); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// Replace overwrites title and completed; an omitted completed resets to false.
func (s *Store) Replace(id int, in model.TaskInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, ErrTitleRequired
	}
	return s.update(id, func(t *model.Task) {
		t.Title = title
		t.Completed = in.Completed != nil && *in.Completed
	})
}

// Patch changes only the fields set in p.
func (s *Store) Patch(id int, p model.TaskPatch) (model.Task, error) {
	var title string
	if p.Title != nil {
		title = strings.TrimSpace(*p.Title)
		if title == "" {
			return model.Task{}, ErrTitleRequired
		}
	}
	return s.update(id, func(t *model.Task) {
		if p.Title != nil {
			t.Title = title
		}
		if p.Completed != nil {
			t.Completed = *p.Completed
		}
	})
}

// update applies change to a copy of the task list and commits it.
func (s *Store) update(id int, change func(*model.Task)) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index(id)
	if !ok {
		return model.Task{}, ErrNotFound
	}
	next := slices.Clone(s.tasks)
	change(&next[i])
	next[i].UpdatedAt = s.now()
	if err := s.commit(next, s.nextID); err != nil {
		return model.Task{}, err
	}
	return next[i], nil
}

// Delete removes the task with the given id.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index(id)
	if !ok {
		return ErrNotFound
	}
	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	return s.commit(next, s.nextID)
}

// index finds id by binary search; tasks stay sorted because ids only grow.
// Caller holds mu.
func (s *Store) index(id int) (int, bool) {
	return slices.BinarySearchFunc(s.tasks, id, func(t model.Task, id int) int { return t.ID - id })
}

// commit saves the snapshot, when one is configured, and only then makes
// tasks and nextID current. A failed save leaves the store unchanged.
// Caller holds mu.
func (s *Store) commit(tasks []model.Task, nextID int) error {
	if s.path != "" {
		if err := jsonstore.Write(s.path, snapshot{NextID: nextID, Tasks: tasks}); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}
	s.tasks = tasks
	s.nextID = nextID
	return nil
}
