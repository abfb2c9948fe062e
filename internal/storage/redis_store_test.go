package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brisado/truco-server/internal/protocol"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return NewRedisStore(client)
}

func TestGetPlayerStats_Unknown(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	stats, err := store.GetPlayerStats(ctx, "nobody")
	assert.NoError(t, err)
	assert.Nil(t, stats)
}

func TestRecordMatch_CreatesAndUpdatesStats(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	err := store.RecordMatch(ctx, "p1", "Zeca", true, 12, 7)
	require.NoError(t, err)

	stats, err := store.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, "Zeca", stats.PlayerName)
	assert.Equal(t, 1, stats.Matches)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 0, stats.Losses)
	assert.Equal(t, 12, stats.PointsFor)
	assert.Equal(t, 7, stats.PointsAgainst)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.MaxWinStreak)
	assert.NotZero(t, stats.CreatedAt)

	// A loss flips the streak but keeps the maximum.
	err = store.RecordMatch(ctx, "p1", "Zeca", false, 5, 12)
	require.NoError(t, err)

	stats, err = store.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Matches)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, -1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.MaxWinStreak)
	assert.Equal(t, 17, stats.PointsFor)
	assert.Equal(t, 19, stats.PointsAgainst)
	assert.InDelta(t, 50.0, stats.WinRate(), 0.01)
}

func TestRecordMatch_StreakGrows(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.RecordMatch(ctx, "p1", "Zeca", true, 12, 3))
	}

	stats, err := store.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.MaxWinStreak)
}

func TestRecordMatchResult_ImplementsRecorder(t *testing.T) {
	store := newTestRedisStore(t)

	err := store.RecordMatchResult("p1", "Zeca", true, 12, 0)
	require.NoError(t, err)

	stats, err := store.GetPlayerStats(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.Wins)
}

func TestGetLeaderboard_OrderedByWins(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordMatch(ctx, "p1", "Zeca", true, 12, 3))
	require.NoError(t, store.RecordMatch(ctx, "p2", "Tonho", true, 12, 9))
	require.NoError(t, store.RecordMatch(ctx, "p2", "Tonho", true, 12, 1))
	require.NoError(t, store.RecordMatch(ctx, "p3", "Dita", false, 4, 12))

	entries, err := store.GetLeaderboard(ctx, protocol.WindowTotal, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "p2", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[0].Wins)
	assert.Equal(t, "p1", entries[1].PlayerID)
	assert.Equal(t, "p3", entries[2].PlayerID)
	assert.Equal(t, 0, entries[2].Wins)
}

func TestGetLeaderboard_LimitRespected(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordMatch(ctx, "p1", "Zeca", true, 12, 3))
	require.NoError(t, store.RecordMatch(ctx, "p2", "Tonho", true, 12, 3))

	entries, err := store.GetLeaderboard(ctx, protocol.WindowTotal, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGetLeaderboard_DailyAndWeeklyWindows(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordMatch(ctx, "p1", "Zeca", true, 12, 3))

	daily, err := store.GetLeaderboard(ctx, protocol.WindowDaily, 10)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, "p1", daily[0].PlayerID)

	weekly, err := store.GetLeaderboard(ctx, protocol.WindowWeekly, 10)
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, "p1", weekly[0].PlayerID)
}

func TestGetPlayerRank(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	rank, err := store.GetPlayerRank(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), rank)

	require.NoError(t, store.RecordMatch(ctx, "p1", "Zeca", true, 12, 3))
	require.NoError(t, store.RecordMatch(ctx, "p2", "Tonho", false, 3, 12))

	rank, err = store.GetPlayerRank(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rank)
}

func TestPing(t *testing.T) {
	store := newTestRedisStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
