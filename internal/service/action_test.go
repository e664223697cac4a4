package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eventpal-api/internal/domain"
	"github.com/vietanh2810/eventpal-api/internal/repository/dao"
)

type bogusAction struct{}

func (bogusAction) isAction() {}

func TestStore_Dispatch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, dao.NewMemoryRecordDAO())

	res, err := s.Dispatch(ctx, RegisterAction{Input: RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"}})
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, "Ann", res.User.Name)

	res, err = s.Dispatch(ctx, AddEventAction{Input: meetup()})
	require.NoError(t, err)
	require.NotNil(t, res.Event)
	id := res.Event.ID

	res, err = s.Dispatch(ctx, ToggleAttendanceAction{ID: id})
	require.NoError(t, err)
	assert.True(t, res.Attending)
	assert.Equal(t, 1, res.Event.Attendees)

	edit := *res.Event
	edit.Title = "Renamed"
	res, err = s.Dispatch(ctx, UpdateEventAction{Event: edit})
	require.NoError(t, err)
	assert.True(t, res.Updated)

	res, err = s.Dispatch(ctx, SetSearchFiltersAction{Patch: domain.FiltersPatch{SearchTerm: strPtr("renamed")}})
	require.NoError(t, err)
	assert.Equal(t, "renamed", res.Filters.SearchTerm)
	assert.Len(t, s.FilteredEvents(), 1)

	res, err = s.Dispatch(ctx, ToggleThemeAction{})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, res.Theme)

	_, err = s.Dispatch(ctx, SetThemeAction{Theme: "blue"})
	assert.ErrorIs(t, err, ErrInvalidTheme)

	res, err = s.Dispatch(ctx, UpdateProfileAction{Input: ProfileInput{Name: "Ann B", Email: "ann@x.com"}})
	require.NoError(t, err)
	assert.Equal(t, "Ann B", res.User.Name)

	_, err = s.Dispatch(ctx, DeleteEventAction{ID: id})
	require.NoError(t, err)
	assert.Empty(t, s.Events())

	_, err = s.Dispatch(ctx, LogoutAction{})
	require.NoError(t, err)
	assert.False(t, s.State().IsAuthenticated)

	_, err = s.Dispatch(ctx, LoginAction{Email: "ann@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Dispatch(ctx, SetUserAction{User: &domain.SessionUser{ID: 1, Name: "Guest"}})
	require.NoError(t, err)
	assert.True(t, s.State().IsAuthenticated)

	_, err = s.Dispatch(ctx, bogusAction{})
	assert.EqualError(t, err, "unsupported action service.bogusAction")
}
