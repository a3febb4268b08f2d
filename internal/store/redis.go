package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"assessment-service/internal/models"
)

const (
	assessmentKeyPrefix = "assessment:"
	statsKeyPrefix      = "stats:"

	// In-progress assessments expire; lifetime stats do not.
	assessmentTTL = 24 * time.Hour
)

// RedisStore keeps session state in Redis so it survives restarts and can
// be shared by multiple instances behind a load balancer.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Assessment(ctx context.Context, actor string) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := s.get(ctx, assessmentKeyPrefix+actor, &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (s *RedisStore) SaveAssessment(ctx context.Context, actor string, assessment *models.Assessment) error {
	return s.set(ctx, assessmentKeyPrefix+actor, assessment, assessmentTTL)
}

func (s *RedisStore) DeleteAssessment(ctx context.Context, actor string) error {
	return s.client.Del(ctx, assessmentKeyPrefix+actor).Err()
}

func (s *RedisStore) Stats(ctx context.Context, actor string) (*models.UserStats, error) {
	var stats models.UserStats
	if err := s.get(ctx, statsKeyPrefix+actor, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *RedisStore) SaveStats(ctx context.Context, actor string, stats *models.UserStats) error {
	return s.set(ctx, statsKeyPrefix+actor, stats, 0)
}

func (s *RedisStore) Clear(ctx context.Context, actor string) error {
	return s.client.Del(ctx, assessmentKeyPrefix+actor, statsKeyPrefix+actor).Err()
}

func (s *RedisStore) get(ctx context.Context, key string, out any) error {
	data, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), out)
}

func (s *RedisStore) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}
