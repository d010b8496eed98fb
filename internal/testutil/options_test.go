package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemOptions_UpdateDetectsEqualValues(t *testing.T) {
	m := NewMemOptions()
	ctx := context.Background()

	changed, err := m.UpdateOption(ctx, "a", map[string]any{"x": int64(1), "y": "z"})
	require.NoError(t, err)
	assert.True(t, changed)

	// Equal by canonical encoding, not by identity.
	changed, err = m.UpdateOption(ctx, "a", map[string]any{"y": "z", "x": 1})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, m.Writes())
}

func TestMemOptions_AddDelete(t *testing.T) {
	m := NewMemOptions()
	ctx := context.Background()

	require.NoError(t, m.AddOption(ctx, "flag", true, false))
	assert.ErrorIs(t, m.AddOption(ctx, "flag", false, false), ErrOptionExists)

	deleted, err := m.DeleteOption(ctx, "flag")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = m.DeleteOption(ctx, "flag")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, found, err := m.GetOption(ctx, "flag")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemOptions_Err(t *testing.T) {
	m := NewMemOptions()
	m.Err = errors.New("disk gone")

	_, _, err := m.GetOption(context.Background(), "a")
	assert.ErrorIs(t, err, m.Err)
	_, err = m.UpdateOption(context.Background(), "a", "b")
	assert.ErrorIs(t, err, m.Err)
}

func TestActionTrace(t *testing.T) {
	trace := ActionTrace("boot", []string{"init", "wp_loaded"})
	assert.Equal(t, "boot", trace["scenario"])
	assert.Equal(t, []any{"init", "wp_loaded"}, trace["actions"])
}
