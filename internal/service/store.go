package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/eventpal-api/internal/domain"
)

var (
	ErrNotAuthenticated   = domain.ErrNotAuthenticated
	ErrDuplicateAccount   = domain.ErrDuplicateAccount
	ErrInvalidCredentials = domain.ErrInvalidCredentials
	ErrEventNotFound      = domain.ErrEventNotFound
	ErrPermissionDenied   = domain.ErrPermissionDenied
	ErrInvalidEvent       = domain.ErrInvalidEvent
	ErrInvalidTheme       = domain.ErrInvalidTheme
	ErrInvalidPassword    = domain.ErrInvalidPassword

	// errUnchanged aborts a mutation without publishing a new state.
	errUnchanged = errors.New("state unchanged")
)

type StateRepository interface {
	LoadTheme(ctx context.Context) (domain.Theme, bool, error)
	SaveTheme(ctx context.Context, theme domain.Theme) error
	LoadSession(ctx context.Context) (*domain.SessionUser, error)
	SaveSession(ctx context.Context, user domain.SessionUser) error
	ClearSession(ctx context.Context) error
	LoadEvents(ctx context.Context) ([]domain.Event, bool, error)
	SaveEvents(ctx context.Context, events []domain.Event) error
	LoadUsers(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error
}

type Subscriber func(state domain.State)

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithThemeApplier registers the hook that reflects the active theme outside
// the store.
func WithThemeApplier(apply func(domain.Theme)) Option {
	return func(s *Store) {
		s.applyTheme = apply
	}
}

func WithPasswordCost(cost int) Option {
	return func(s *Store) {
		s.passwordCost = cost
	}
}

// Store is the application state container. Every mutation writes the
// affected records before it becomes visible in memory.
type Store struct {
	repo         StateRepository
	now          func() time.Time
	applyTheme   func(domain.Theme)
	passwordCost int

	mu      sync.RWMutex
	version uint64
	events  []domain.Event
	user    *domain.SessionUser
	theme   domain.Theme
	loading bool
	filters domain.SearchFilters

	subMu       sync.Mutex
	subscribers map[int]*subscription
	nextSubID   int
}

func NewStore(repo StateRepository, opts ...Option) *Store {
	s := &Store{
		repo:         repo,
		now:          time.Now,
		applyTheme:   func(domain.Theme) {},
		passwordCost: bcrypt.DefaultCost,
		events:       []domain.Event{},
		theme:        domain.ThemeLight,
		subscribers:  make(map[int]*subscription),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Init hydrates the store from the repository.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true

	err := s.hydrate(ctx)

	s.loading = false
	s.version++
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.publish(snapshot)
	return nil
}

func (s *Store) hydrate(ctx context.Context) error {
	theme, found, err := s.repo.LoadTheme(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.LoadTheme -> %w", err)
	}
	if !found {
		theme = domain.ThemeLight
		if err = s.repo.SaveTheme(ctx, theme); err != nil {
			return fmt.Errorf("s.repo.SaveTheme -> %w", err)
		}
	}
	s.theme = theme
	s.applyTheme(theme)

	user, err := s.repo.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.LoadSession -> %w", err)
	}
	s.user = user

	events, found, err := s.repo.LoadEvents(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.LoadEvents -> %w", err)
	}
	if !found {
		events = []domain.Event{}
		if err = s.repo.SaveEvents(ctx, events); err != nil {
			return fmt.Errorf("s.repo.SaveEvents -> %w", err)
		}
	}
	s.events = events

	return nil
}

// subscription delivers snapshots to one subscriber in version order.
// Snapshots older than the last delivered one are dropped.
type subscription struct {
	fn Subscriber

	mu   sync.Mutex
	last uint64
}

func (sub *subscription) deliver(state domain.State) {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	if state.Version <= sub.last {
		return
	}
	sub.last = state.Version
	sub.fn(state)
}

// Subscribe registers fn to receive a snapshot after every state change.
// Calls to fn are serialized and carry increasing versions; fn must not
// mutate the store.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = &subscription{fn: fn}
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(state domain.State) {
	s.subMu.Lock()
	subs := make([]*subscription, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.deliver(state)
	}
}

// mutate runs fn under the write lock and publishes the resulting state.
func (s *Store) mutate(fn func() error) error {
	s.mu.Lock()
	err := fn()
	var snapshot domain.State
	if err == nil {
		s.version++
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}

	s.publish(snapshot)
	return nil
}

// State returns a copy of the current state.
func (s *Store) State() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domain.State {
	state := domain.State{
		Version:         s.version,
		Events:          cloneEvents(s.events),
		Theme:           s.theme,
		IsAuthenticated: s.user != nil,
		Loading:         s.loading,
		SearchFilters:   s.filters,
	}
	if s.user != nil {
		user := s.user.Clone()
		state.User = &user
	}

	return state
}

func (s *Store) CurrentUser() (domain.SessionUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return domain.SessionUser{}, false
	}

	return s.user.Clone(), true
}

func (s *Store) Theme() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.theme
}

func (s *Store) SetTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}

	return s.mutate(func() error {
		return s.setThemeLocked(ctx, theme)
	})
}

func (s *Store) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	var theme domain.Theme

	err := s.mutate(func() error {
		theme = s.theme.Toggle()
		return s.setThemeLocked(ctx, theme)
	})

	return theme, err
}

func (s *Store) setThemeLocked(ctx context.Context, theme domain.Theme) error {
	if err := s.repo.SaveTheme(ctx, theme); err != nil {
		return fmt.Errorf("s.repo.SaveTheme -> %w", err)
	}

	s.theme = theme
	s.applyTheme(theme)
	return nil
}

// SetSearchFilters merges patch into the active filters. Filters are not persisted.
func (s *Store) SetSearchFilters(patch domain.FiltersPatch) domain.SearchFilters {
	var filters domain.SearchFilters

	_ = s.mutate(func() error {
		if patch.SearchTerm != nil {
			s.filters.SearchTerm = *patch.SearchTerm
		}
		if patch.Category != nil {
			s.filters.Category = *patch.Category
		}
		if patch.Location != nil {
			s.filters.Location = *patch.Location
		}
		filters = s.filters
		return nil
	})

	return filters
}

func (s *Store) SearchFilters() domain.SearchFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filters
}

// persistUserLocked writes the session record and mirrors the change into the
// users directory so a later login sees it.
func (s *Store) persistUserLocked(ctx context.Context, user domain.SessionUser) error {
	if err := s.repo.SaveSession(ctx, user); err != nil {
		return fmt.Errorf("s.repo.SaveSession -> %w", err)
	}

	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.LoadUsers -> %w", err)
	}

	for i := range users {
		if users[i].ID != user.ID {
			continue
		}

		users[i].Name = user.Name
		users[i].Email = user.Email
		users[i].Avatar = user.Avatar
		users[i].EventsAttending = user.Clone().EventsAttending
		users[i].EventsCreated = user.Clone().EventsCreated

		if err = s.repo.SaveUsers(ctx, users); err != nil {
			return fmt.Errorf("s.repo.SaveUsers -> %w", err)
		}
		break
	}

	return nil
}

// nextID derives an id from the clock, strictly above floor.
func (s *Store) nextID(floor int64) int64 {
	id := s.now().UnixMilli()
	if id <= floor {
		id = floor + 1
	}

	return id
}

func cloneEvents(events []domain.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}

	return out
}
