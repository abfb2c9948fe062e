// Package storage persists player records and rankings in Redis.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brisado/truco-server/internal/protocol"
)

const (
	playerStatsKey    = "player:stats:"
	leaderboardKey    = "leaderboard:wins"
	dailyLeaderboard  = "leaderboard:daily:"
	weeklyLeaderboard = "leaderboard:weekly:"

	recordTimeout = 5 * time.Second
)

// PlayerStats is a player's cumulative record.
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	Matches int `json:"matches"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`

	// Match points scored and conceded across all matches.
	PointsFor     int `json:"points_for"`
	PointsAgainst int `json:"points_against"`

	CurrentStreak int `json:"current_streak"` // positive wins, negative losses
	MaxWinStreak  int `json:"max_win_streak"`

	LastPlayedAt int64 `json:"last_played_at"`
	CreatedAt    int64 `json:"created_at"`
}

// WinRate returns the win percentage, 0 for a fresh record.
func (s *PlayerStats) WinRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Matches) * 100
}

// LeaderboardEntry is one ranking row.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// RedisStore wraps the Redis client with the game's persistence schema.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store around an already-connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping checks the Redis connection.
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// GetPlayerStats loads a player's record; nil without error means the
// player has never finished a match.
func (rs *RedisStore) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	data, err := rs.client.Get(ctx, playerStatsKey+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("decode player stats: %w", err)
	}
	return &stats, nil
}

func (rs *RedisStore) savePlayerStats(ctx context.Context, stats *PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return rs.client.Set(ctx, playerStatsKey+stats.PlayerID, data, 0).Err()
}

func (rs *RedisStore) getOrCreateStats(ctx context.Context, playerID, playerName string) (*PlayerStats, error) {
	stats, err := rs.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:   playerID,
			PlayerName: playerName,
			CreatedAt:  time.Now().Unix(),
		}
	}
	return stats, nil
}

// RecordMatchResult updates the player's record and every ranking window.
// It satisfies the session's Recorder and so carries its own deadline.
func (rs *RedisStore) RecordMatchResult(playerID, playerName string, won bool, pointsFor, pointsAgainst int) error {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	return rs.RecordMatch(ctx, playerID, playerName, won, pointsFor, pointsAgainst)
}

// RecordMatch is the context-aware form of RecordMatchResult.
func (rs *RedisStore) RecordMatch(ctx context.Context, playerID, playerName string, won bool, pointsFor, pointsAgainst int) error {
	stats, err := rs.getOrCreateStats(ctx, playerID, playerName)
	if err != nil {
		return err
	}

	stats.PlayerName = playerName
	stats.Matches++
	stats.PointsFor += pointsFor
	stats.PointsAgainst += pointsAgainst
	stats.LastPlayedAt = time.Now().Unix()

	if won {
		stats.Wins++
		stats.CurrentStreak = max(1, stats.CurrentStreak+1)
	} else {
		stats.Losses++
		stats.CurrentStreak = min(-1, stats.CurrentStreak-1)
	}
	if stats.CurrentStreak > stats.MaxWinStreak {
		stats.MaxWinStreak = stats.CurrentStreak
	}

	if err := rs.savePlayerStats(ctx, stats); err != nil {
		return err
	}
	return rs.updateLeaderboards(ctx, stats)
}

// updateLeaderboards scores every window by total wins.
func (rs *RedisStore) updateLeaderboards(ctx context.Context, stats *PlayerStats) error {
	member := redis.Z{Score: float64(stats.Wins), Member: stats.PlayerID}

	if err := rs.client.ZAdd(ctx, leaderboardKey, member).Err(); err != nil {
		return err
	}

	dailyKey := dailyLeaderboard + time.Now().Format("2006-01-02")
	if err := rs.client.ZAdd(ctx, dailyKey, member).Err(); err != nil {
		return err
	}
	rs.client.Expire(ctx, dailyKey, 48*time.Hour)

	year, week := time.Now().ISOWeek()
	weeklyKey := fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
	if err := rs.client.ZAdd(ctx, weeklyKey, member).Err(); err != nil {
		return err
	}
	rs.client.Expire(ctx, weeklyKey, 8*24*time.Hour)

	return nil
}

// windowKey maps a ranking window name to its current Redis key.
func windowKey(window string) string {
	switch window {
	case protocol.WindowDaily:
		return dailyLeaderboard + time.Now().Format("2006-01-02")
	case protocol.WindowWeekly:
		year, week := time.Now().ISOWeek()
		return fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
	default:
		return leaderboardKey
	}
}

// GetLeaderboard returns the top players of a window, best first.
func (rs *RedisStore) GetLeaderboard(ctx context.Context, window string, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	results, err := rs.client.ZRevRangeWithScores(ctx, windowKey(window), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*LeaderboardEntry, 0, len(results))
	for i, result := range results {
		playerID, ok := result.Member.(string)
		if !ok {
			continue
		}
		stats, err := rs.GetPlayerStats(ctx, playerID)
		if err != nil || stats == nil {
			continue
		}
		entries = append(entries, &LeaderboardEntry{
			Rank:       i + 1,
			PlayerID:   playerID,
			PlayerName: stats.PlayerName,
			Wins:       stats.Wins,
			WinRate:    stats.WinRate(),
		})
	}
	return entries, nil
}

// GetPlayerRank returns the player's 1-based rank on the total window,
// or -1 when unranked.
func (rs *RedisStore) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := rs.client.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil
}
