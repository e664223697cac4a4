package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/eventpal-api/internal/repository"
	"github.com/vietanh2810/eventpal-api/internal/repository/dao"
)

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	records := dao.NewMemoryRecordDAO()
	r := NewRegistry(records, repository.DefaultKeyPrefix, WithPasswordCost(bcrypt.MinCost))

	home, err := r.Store(ctx, "")
	require.NoError(t, err)
	again, err := r.Store(ctx, repository.DefaultProfile)
	require.NoError(t, err)
	assert.Same(t, home, again)

	work, err := r.Store(ctx, "work")
	require.NoError(t, err)
	assert.NotSame(t, home, work)

	_, err = home.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	assert.True(t, home.State().IsAuthenticated)
	assert.False(t, work.State().IsAuthenticated)

	_, err = work.Login(ctx, "ann@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "users directories are per profile")

	assert.Equal(t, []string{"default", "work"}, r.Profiles())

	_, err = records.Get(ctx, "profile/work/eventpal_events")
	assert.NoError(t, err)
}
