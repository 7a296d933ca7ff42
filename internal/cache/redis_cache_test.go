package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))
	var out map[string]int
	found, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestNew_WithoutURL(t *testing.T) {
	c, client := New(context.Background(), "")
	assert.Nil(t, client)
	assert.IsType(t, noopCache{}, c)
}

func TestNew_InvalidURL(t *testing.T) {
	c, client := New(context.Background(), "not-a-redis-url")
	assert.Nil(t, client)
	assert.IsType(t, noopCache{}, c)
}

func TestAssessmentKey(t *testing.T) {
	assert.Equal(t, "assessment:42:view", AssessmentKey(42))
}
