package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-platform/judging"
)

func TestLeaderboardKey(t *testing.T) {
	assert.Equal(t, "hackathon:h1:leaderboard", leaderboardKey("h1"))
}

func TestNoopAlwaysMisses(t *testing.T) {
	var c LeaderboardCache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "h1", []judging.Standing{{Rank: 1, TeamID: "t1"}}))
	_, err := c.Get(ctx, "h1")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, c.Invalidate(ctx, "h1"))
}

func TestNewRedisLeaderboardDefaultsTTL(t *testing.T) {
	c := NewRedisLeaderboard(nil, 0)
	assert.Equal(t, defaultLeaderboardTTL, c.ttl)
}
