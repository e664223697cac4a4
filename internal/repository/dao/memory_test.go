package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecordDAO(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryRecordDAO()

	_, err := d.Get(ctx, "eventpal_theme")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, d.Set(ctx, "eventpal_theme", "light"))
	require.NoError(t, d.Set(ctx, "eventpal_theme", "dark"))

	value, err := d.Get(ctx, "eventpal_theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)
	assert.Equal(t, []string{"eventpal_theme"}, d.Keys())

	require.NoError(t, d.Remove(ctx, "eventpal_theme"))
	require.NoError(t, d.Remove(ctx, "eventpal_theme"))

	_, err = d.Get(ctx, "eventpal_theme")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
