package repository

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eventpal-api/internal/domain"
	"github.com/vietanh2810/eventpal-api/internal/repository/dao"
)

func TestStateRepository_Theme(t *testing.T) {
	ctx := context.Background()
	store := dao.NewMemoryRecordDAO()
	repo := NewStateRepository(store, DefaultKeyPrefix)

	_, found, err := repo.LoadTheme(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.SaveTheme(ctx, domain.ThemeDark))
	raw, err := store.Get(ctx, "eventpal_theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", raw)

	theme, found, err := repo.LoadTheme(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.ThemeDark, theme)

	require.NoError(t, store.Set(ctx, "eventpal_theme", "purple"))
	_, found, err = repo.LoadTheme(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStateRepository_SessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := dao.NewMemoryRecordDAO()
	repo := NewStateRepository(store, DefaultKeyPrefix)

	user, err := repo.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	session := domain.SessionUser{
		ID:              1700000000000,
		Name:            "Ann",
		Email:           "ann@x.com",
		Avatar:          domain.AvatarURL("Ann"),
		EventsAttending: []int64{3},
		CreatedAt:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveSession(ctx, session))

	raw, err := store.Get(ctx, "eventpal_user")
	require.NoError(t, err)
	assert.NotContains(t, raw, "password")

	user, err = repo.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, session.Email, user.Email)
	assert.Equal(t, []int64{3}, user.EventsAttending)
	assert.Equal(t, []int64{}, user.EventsCreated)

	require.NoError(t, repo.ClearSession(ctx))
	user, err = repo.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestStateRepository_CorruptedRecordsFallBack(t *testing.T) {
	ctx := context.Background()
	store := dao.NewMemoryRecordDAO()
	repo := NewStateRepository(store, DefaultKeyPrefix)

	require.NoError(t, store.Set(ctx, "eventpal_user", "{not json"))
	require.NoError(t, store.Set(ctx, "eventpal_events", "[{]"))
	require.NoError(t, store.Set(ctx, "eventpal_users", "null"))

	user, err := repo.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	events, found, err := repo.LoadEvents(ctx)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, events)

	users, err := repo.LoadUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestStateRepository_EventsRecordExistsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository(dao.NewMemoryRecordDAO(), DefaultKeyPrefix)

	require.NoError(t, repo.SaveEvents(ctx, nil))

	events, found, err := repo.LoadEvents(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []domain.Event{}, events)
}

func TestNamespacedDAO_IsolatesProfiles(t *testing.T) {
	ctx := context.Background()
	store := dao.NewMemoryRecordDAO()

	home := NewStateRepository(NewNamespacedDAO(store, DefaultProfile), DefaultKeyPrefix)
	work := NewStateRepository(NewNamespacedDAO(store, "work"), DefaultKeyPrefix)

	require.NoError(t, home.SaveTheme(ctx, domain.ThemeDark))
	require.NoError(t, work.SaveTheme(ctx, domain.ThemeLight))

	theme, _, err := home.LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, theme)

	theme, _, err = work.LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme)

	keys := store.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"eventpal_theme", "profile/work/eventpal_theme"}, keys)
}
