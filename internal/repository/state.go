package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietanh2810/eventpal-api/internal/domain"
	"github.com/vietanh2810/eventpal-api/internal/repository/dao"
)

var (
	ErrRecordNotFound = dao.ErrRecordNotFound
)

const (
	DefaultKeyPrefix = "eventpal_"

	themeKey   = "theme"
	sessionKey = "user"
	eventsKey  = "events"
	usersKey   = "users"
)

type RecordDAO interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// StateRepository maps the application records onto a key/value blob store.
// Reads never fail on malformed content: a record that does not decode is
// reported as absent.
type StateRepository struct {
	dao    RecordDAO
	prefix string
}

func NewStateRepository(dao RecordDAO, prefix string) *StateRepository {
	return &StateRepository{
		dao:    dao,
		prefix: prefix,
	}
}

func (r *StateRepository) key(name string) string {
	return r.prefix + name
}

func (r *StateRepository) LoadTheme(ctx context.Context) (domain.Theme, bool, error) {
	raw, found, err := r.get(ctx, themeKey)
	if err != nil || !found {
		return "", false, err
	}

	theme := domain.Theme(raw)
	if !theme.Valid() {
		zap.L().Warn("ignoring invalid theme record", zap.String("key", r.key(themeKey)), zap.String("value", raw))
		return "", false, nil
	}

	return theme, true, nil
}

func (r *StateRepository) SaveTheme(ctx context.Context, theme domain.Theme) error {
	if err := r.dao.Set(ctx, r.key(themeKey), string(theme)); err != nil {
		return fmt.Errorf("r.dao.Set -> %w", err)
	}

	return nil
}

func (r *StateRepository) LoadSession(ctx context.Context) (*domain.SessionUser, error) {
	var user domain.SessionUser

	found, err := r.getJSON(ctx, sessionKey, &user)
	if err != nil || !found {
		return nil, err
	}

	user = user.Clone()
	return &user, nil
}

func (r *StateRepository) SaveSession(ctx context.Context, user domain.SessionUser) error {
	return r.setJSON(ctx, sessionKey, user)
}

func (r *StateRepository) ClearSession(ctx context.Context) error {
	if err := r.dao.Remove(ctx, r.key(sessionKey)); err != nil {
		return fmt.Errorf("r.dao.Remove -> %w", err)
	}

	return nil
}

// LoadEvents returns the stored events and whether the record exists.
func (r *StateRepository) LoadEvents(ctx context.Context) ([]domain.Event, bool, error) {
	var events []domain.Event

	found, err := r.getJSON(ctx, eventsKey, &events)
	if err != nil || !found {
		return []domain.Event{}, false, err
	}
	if events == nil {
		events = []domain.Event{}
	}

	return events, true, nil
}

func (r *StateRepository) SaveEvents(ctx context.Context, events []domain.Event) error {
	if events == nil {
		events = []domain.Event{}
	}

	return r.setJSON(ctx, eventsKey, events)
}

func (r *StateRepository) LoadUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User

	found, err := r.getJSON(ctx, usersKey, &users)
	if err != nil || !found || users == nil {
		return []domain.User{}, err
	}

	return users, nil
}

func (r *StateRepository) SaveUsers(ctx context.Context, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}

	return r.setJSON(ctx, usersKey, users)
}

func (r *StateRepository) get(ctx context.Context, name string) (string, bool, error) {
	raw, err := r.dao.Get(ctx, r.key(name))
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("r.dao.Get -> %w", err)
	}

	return raw, true, nil
}

func (r *StateRepository) getJSON(ctx context.Context, name string, target interface{}) (bool, error) {
	raw, found, err := r.get(ctx, name)
	if err != nil || !found {
		return false, err
	}

	if err = json.Unmarshal([]byte(raw), target); err != nil {
		zap.L().Warn("ignoring corrupted record", zap.String("key", r.key(name)), zap.Error(err))
		return false, nil
	}

	return true, nil
}

func (r *StateRepository) setJSON(ctx context.Context, name string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = r.dao.Set(ctx, r.key(name), string(payload)); err != nil {
		return fmt.Errorf("r.dao.Set -> %w", err)
	}

	return nil
}
