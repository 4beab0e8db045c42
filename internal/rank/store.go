package rank

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const keyBest = "shiritori:rank:best"

// Store keeps each player's best score in a Redis sorted set.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

// NewStoreFromURL dials Redis from a redis:// URL and verifies the
// connection.
func NewStoreFromURL(redisURL string) (*Store, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for rank store")
	}
	opts, err := parseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

func (s *Store) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

// RecordBest stores the score only when it beats the player's previous best.
func (s *Store) RecordBest(ctx context.Context, player string, score int) error {
	if s == nil || s.rdb == nil || strings.TrimSpace(player) == "" {
		return nil
	}
	return s.rdb.ZAddGT(ctx, keyBest, redis.Z{
		Score:  float64(score),
		Member: player,
	}).Err()
}

// Best returns the player's best recorded score.
func (s *Store) Best(ctx context.Context, player string) (int, bool, error) {
	score, err := s.rdb.ZScore(ctx, keyBest, player).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return int(score), true, nil
}

type Entry struct {
	Player string
	Score  int
}

// Top returns the n highest best scores, descending.
func (s *Store) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	zs, err := s.rdb.ZRevRangeWithScores(ctx, keyBest, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(zs))
	for _, z := range zs {
		player, _ := z.Member.(string)
		out = append(out, Entry{Player: player, Score: int(z.Score)})
	}
	return out, nil
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}
