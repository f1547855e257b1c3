package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type LeaderboardEntry struct {
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Date       string `json:"date"`
}

// beats reports whether e is a better result than other.
func (e LeaderboardEntry) beats(other LeaderboardEntry) bool {
	return e.Percentage > other.Percentage || (e.Percentage == other.Percentage && e.Score > other.Score)
}

// LeaderboardService keeps the best finished result per user.
type LeaderboardService interface {
	// AddEntry stores the result when it is the user's best and reports whether it was.
	AddEntry(ctx context.Context, userID int64, username, firstName string, score, total int) (bool, error)
	GetTop(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	GetUserPosition(ctx context.Context, userID int64) (int, *LeaderboardEntry, error)
}

var now = time.Now

func newLeaderboardEntry(userID int64, username, firstName string, score, total int) LeaderboardEntry {
	return LeaderboardEntry{
		UserID:     userID,
		Username:   username,
		FirstName:  firstName,
		Score:      score,
		Total:      total,
		Percentage: Percentage(score, total),
		Date:       now().Format("02.01.2006 15:04"),
	}
}

func sortEntries(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].beats(entries[j])
	})
}

func topN(entries []LeaderboardEntry, limit int) []LeaderboardEntry {
	sortEntries(entries)
	if limit < 0 || limit > len(entries) {
		limit = len(entries)
	}
	return entries[:limit]
}

func positionOf(entries []LeaderboardEntry, userID int64) (int, *LeaderboardEntry) {
	for i, entry := range entries {
		if entry.UserID == userID {
			return i + 1, &entry
		}
	}
	return -1, nil
}

// NewLeaderboardService picks Redis when redisURL is set, memory otherwise.
func NewLeaderboardService(ctx context.Context, redisURL, key string) (LeaderboardService, error) {
	if redisURL == "" {
		return NewMemoryLeaderboardService(), nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return NewRedisLeaderboardService(client, key), nil
}

// RedisLeaderboardService stores one JSON entry per user in a Redis hash.
type RedisLeaderboardService struct {
	client *redis.Client
	key    string
}

func NewRedisLeaderboardService(client *redis.Client, key string) *RedisLeaderboardService {
	return &RedisLeaderboardService{client: client, key: key}
}

// maxTxAttempts bounds the optimistic retries when another writer touches
// the leaderboard key between read and write.
const maxTxAttempts = 10

func (rs *RedisLeaderboardService) AddEntry(ctx context.Context, userID int64, username, firstName string, score, total int) (bool, error) {
	newEntry := newLeaderboardEntry(userID, username, firstName, score, total)
	field := strconv.FormatInt(userID, 10)

	content, err := json.Marshal(newEntry)
	if err != nil {
		return false, err
	}

	for range maxTxAttempts {
		stored := false
		err := rs.client.Watch(ctx, func(tx *redis.Tx) error {
			existing, err := tx.HGet(ctx, rs.key, field).Result()
			switch {
			case errors.Is(err, redis.Nil):
			case err != nil:
				return fmt.Errorf("load leaderboard entry: %w", err)
			default:
				var old LeaderboardEntry
				if err := json.Unmarshal([]byte(existing), &old); err == nil && !newEntry.beats(old) {
					return nil
				}
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HSet(ctx, rs.key, field, content)
				return nil
			})
			if err != nil {
				return fmt.Errorf("save leaderboard entry: %w", err)
			}
			stored = true
			return nil
		}, rs.key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, err
		}
		return stored, nil
	}
	return false, fmt.Errorf("save leaderboard entry: %w", redis.TxFailedErr)
}

func (rs *RedisLeaderboardService) entries(ctx context.Context) ([]LeaderboardEntry, error) {
	values, err := rs.client.HVals(ctx, rs.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(values))
	for _, v := range values {
		var entry LeaderboardEntry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (rs *RedisLeaderboardService) GetTop(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	entries, err := rs.entries(ctx)
	if err != nil {
		return nil, err
	}
	return topN(entries, limit), nil
}

func (rs *RedisLeaderboardService) GetUserPosition(ctx context.Context, userID int64) (int, *LeaderboardEntry, error) {
	top, err := rs.GetTop(ctx, -1)
	if err != nil {
		return -1, nil, err
	}
	pos, entry := positionOf(top, userID)
	return pos, entry, nil
}

func (rs *RedisLeaderboardService) Close() error {
	return rs.client.Close()
}

// MemoryLeaderboardService is the fallback; results are lost on restart.
type MemoryLeaderboardService struct {
	mu      sync.RWMutex
	entries []LeaderboardEntry
}

func NewMemoryLeaderboardService() *MemoryLeaderboardService {
	return &MemoryLeaderboardService{
		entries: make([]LeaderboardEntry, 0),
	}
}

func (ms *MemoryLeaderboardService) AddEntry(_ context.Context, userID int64, username, firstName string, score, total int) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	newEntry := newLeaderboardEntry(userID, username, firstName, score, total)

	for i, entry := range ms.entries {
		if entry.UserID == userID {
			if newEntry.beats(entry) {
				ms.entries[i] = newEntry
				return true, nil
			}
			return false, nil
		}
	}

	ms.entries = append(ms.entries, newEntry)
	return true, nil
}

func (ms *MemoryLeaderboardService) GetTop(_ context.Context, limit int) ([]LeaderboardEntry, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	sorted := make([]LeaderboardEntry, len(ms.entries))
	copy(sorted, ms.entries)

	return topN(sorted, limit), nil
}

func (ms *MemoryLeaderboardService) GetUserPosition(ctx context.Context, userID int64) (int, *LeaderboardEntry, error) {
	top, _ := ms.GetTop(ctx, -1)
	pos, entry := positionOf(top, userID)
	return pos, entry, nil
}
