// Package store owns the canonical in-memory task list and bridges it to
// the local key-value persistence layer. All mutation goes through the
// store; callers only ever see copies of the list.
package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tudu/internal/model"
	"tudu/internal/storage"
)

const DefaultKey = "tudu-tasks"

var (
	ErrEmptyText = errors.New("store: task text cannot be empty")
	ErrNotFound  = errors.New("store: task not found")
)

// Notifier receives user-visible warnings the store emits when a
// persistence write fails. Fire-and-forget; errors are not reported back.
type Notifier interface {
	Warn(title, body string)
}

type noopNotifier struct{}

func (noopNotifier) Warn(string, string) {}

type Option func(*Store)

// WithKey overrides the persistence key the snapshot is stored under.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClock overrides the time source. Tests use this to pin createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDSource overrides the id generator.
func WithIDSource(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Store is the persistent task store. A single instance is constructed at
// startup and handed to every consumer; the zero value is not usable.
type Store struct {
	mu        sync.Mutex
	kv        storage.KV
	key       string
	log       *slog.Logger
	notifier  Notifier
	now       func() time.Time
	newID     func() string
	tasks     []model.Task
	observers []func()
}

// New constructs the store and adopts a previously persisted snapshot.
// A missing snapshot yields an empty list. A snapshot that fails
// structural validation is discarded whole, purged from persistence, and
// logged; a read failure is logged and likewise recovered with an empty
// list. Neither condition is an error to the caller.
func New(ctx context.Context, kv storage.KV, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, errors.New("store: nil kv")
	}
	s := &Store{
		kv:       kv,
		key:      DefaultKey,
		log:      slog.Default(),
		notifier: noopNotifier{},
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		tasks:    []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	return s, nil
}

func (s *Store) load(ctx context.Context) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Error("task snapshot read failed, starting empty", "key", s.key, "error", err)
		return
	}
	if raw == nil {
		return
	}
	tasks, err := decodeSnapshot(raw)
	if err != nil {
		s.log.Warn("discarding corrupt task snapshot", "key", s.key, "error", err)
		if removeErr := s.kv.Remove(ctx, s.key); removeErr != nil {
			s.log.Warn("failed to purge corrupt snapshot", "key", s.key, "error", removeErr)
		}
		return
	}
	s.tasks = tasks
}

// SetNotifier replaces the warning notifier. The UI attaches itself here
// after construction so write-failure warnings reach the screen.
func (s *Store) SetNotifier(n Notifier) {
	if n == nil {
		return
	}
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// Subscribe registers fn to run synchronously after every successful
// mutation. Observers must not mutate the store from within fn.
func (s *Store) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Add validates, trims, and inserts a new task at the head of the list.
func (s *Store) Add(ctx context.Context, text string) (model.Task, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.Task{}, ErrEmptyText
	}

	s.mu.Lock()
	task := model.Task{
		ID:        s.newID(),
		Text:      trimmed,
		Completed: false,
		CreatedAt: s.now().UnixMilli(),
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notifyObservers()
	return task, nil
}

// Toggle flips the completion flag of the task with the given id.
func (s *Store) Toggle(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notifyObservers()
	return nil
}

// UpdateText replaces the text of the task with the given id. Not-found
// and empty-text failures are distinct and leave the list untouched.
func (s *Store) UpdateText(ctx context.Context, id, text string) error {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	if trimmed == "" {
		s.mu.Unlock()
		return ErrEmptyText
	}
	s.tasks[idx].Text = trimmed
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notifyObservers()
	return nil
}

// Delete removes the task with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notifyObservers()
	return nil
}

// ClearCompleted removes every completed task and returns how many were
// removed. Calling it again with no intervening mutation returns 0.
func (s *Store) ClearCompleted(ctx context.Context) int {
	s.mu.Lock()
	kept := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		s.mu.Unlock()
		return 0
	}
	s.tasks = kept
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notifyObservers()
	return removed
}

// Stats recomputes the task counts from the current list.
func (s *Store) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := model.Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	return stats
}

// Filtered returns a copy of the subset matching f, in list order.
func (s *Store) Filtered(f model.Filter) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Tasks returns a copy of the full list, newest first.
func (s *Store) Tasks() []model.Task {
	return s.Filtered(model.FilterAll)
}

func (s *Store) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked rewrites the whole snapshot after a mutation. A write
// failure keeps the in-memory mutation: the current session stays live
// and the user is warned that changes may not survive a restart.
func (s *Store) persistLocked(ctx context.Context) {
	raw, err := encodeSnapshot(s.tasks)
	if err != nil {
		s.log.Error("task snapshot encode failed", "key", s.key, "error", err)
		s.notifier.Warn("Saving failed", "Your changes may not survive a restart.")
		return
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		s.log.Warn("task snapshot write failed", "key", s.key, "error", err)
		s.notifier.Warn("Saving failed", "Your changes may not survive a restart.")
	}
}

func (s *Store) notifyObservers() {
	s.mu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}
