package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/i474232898/weather-display/internal/display"
)

const (
	defaultKeyPrefix = "wxdisplay"
	indexKey         = "frames"
)

// RedisClient is the subset of *redis.Client the frame store uses.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	ZAdd(ctx context.Context, key string, members ...*redis.Z) *redis.IntCmd
	ZCard(ctx context.Context, key string) *redis.IntCmd
	ZRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	ZRevRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	ZRangeByScore(ctx context.Context, key string, opt *redis.ZRangeBy) *redis.StringSliceCmd
	ZRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
}

// RedisStore keeps frames as JSON documents indexed by a sorted set scored
// by render time in milliseconds.
type RedisStore struct {
	client RedisClient
	prefix string

	maxHistory int
	maxAge     time.Duration

	now func() time.Time
}

// redisFrame carries the PNG, which Frame leaves out of its JSON form.
type redisFrame struct {
	display.Frame
	PNG []byte `json:"png"`
}

// NewRedisStore wraps a connected client. Retention limits behave like
// the MemoryStore ones; maxAge also becomes the key TTL.
func NewRedisStore(client RedisClient, maxHistory int, maxAge time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		prefix:     defaultKeyPrefix,
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (s *RedisStore) index() string {
	return s.prefix + ":" + indexKey
}

func (s *RedisStore) frameKey(id string) string {
	return s.prefix + ":frame:" + id
}

func score(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func (s *RedisStore) Save(ctx context.Context, f display.Frame) error {
	data, err := json.Marshal(redisFrame{Frame: f, PNG: f.PNG})
	if err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}

	id := f.ID.String()
	if err := s.client.Set(ctx, s.frameKey(id), data, s.maxAge).Err(); err != nil {
		return fmt.Errorf("failed to set frame %s: %w", id, err)
	}
	if err := s.client.ZAdd(ctx, s.index(), &redis.Z{Score: score(f.RenderedAt), Member: id}).Err(); err != nil {
		return fmt.Errorf("failed to index frame %s: %w", id, err)
	}

	if err := s.enforceRetention(ctx); err != nil {
		log.Printf("ERROR: redis retention for %s: %v", s.index(), err)
	}
	return nil
}

func (s *RedisStore) enforceRetention(ctx context.Context) error {
	var expired []string

	if s.maxHistory > 0 {
		n, err := s.client.ZCard(ctx, s.index()).Result()
		if err != nil {
			return err
		}
		if over := n - int64(s.maxHistory); over > 0 {
			ids, err := s.client.ZRange(ctx, s.index(), 0, over-1).Result()
			if err != nil {
				return err
			}
			expired = append(expired, ids...)
		}
	}

	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		ids, err := s.client.ZRangeByScore(ctx, s.index(), &redis.ZRangeBy{
			Min: "-inf",
			Max: "(" + strconv.FormatInt(cutoff.UnixMilli(), 10),
		}).Result()
		if err != nil {
			return err
		}
		expired = append(expired, ids...)
	}

	if len(expired) == 0 {
		return nil
	}
	members := make([]interface{}, len(expired))
	keys := make([]string, len(expired))
	for i, id := range expired {
		members[i] = id
		keys[i] = s.frameKey(id)
	}
	if err := s.client.ZRem(ctx, s.index(), members...).Err(); err != nil {
		return err
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStore) Latest(ctx context.Context) (display.Frame, error) {
	ids, err := s.client.ZRevRange(ctx, s.index(), 0, 0).Result()
	if err != nil {
		return display.Frame{}, fmt.Errorf("failed to read frame index: %w", err)
	}
	if len(ids) == 0 {
		return display.Frame{}, ErrNotFound
	}
	return s.load(ctx, ids[0])
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (display.Frame, error) {
	return s.load(ctx, id.String())
}

func (s *RedisStore) Range(ctx context.Context, from, to time.Time) ([]display.Frame, error) {
	ids, err := s.client.ZRangeByScore(ctx, s.index(), &redis.ZRangeBy{
		Min: strconv.FormatInt(from.UnixMilli(), 10),
		Max: strconv.FormatInt(to.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read frame index: %w", err)
	}

	var result []display.Frame
	for _, id := range ids {
		f, err := s.load(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// expired by TTL but still indexed
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

func (s *RedisStore) load(ctx context.Context, id string) (display.Frame, error) {
	data, err := s.client.Get(ctx, s.frameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return display.Frame{}, ErrNotFound
	}
	if err != nil {
		return display.Frame{}, fmt.Errorf("failed to get frame %s: %w", id, err)
	}

	var rf redisFrame
	if err := json.Unmarshal(data, &rf); err != nil {
		return display.Frame{}, fmt.Errorf("failed to unmarshal frame %s: %w", id, err)
	}
	f := rf.Frame
	f.PNG = rf.PNG
	return f, nil
}
