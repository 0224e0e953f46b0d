package cache

import (
	"context"
	"encoding/json"
	"time"

	"recipe-hub/internal/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service is a best-effort TTL cache in front of the external source's list
// endpoints. With an empty address it stays disabled and every lookup misses.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

func NewService(addr string, ttl time.Duration) *Service {
	if addr == "" {
		return &Service{}
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		utils.Logger.Warn("redis unreachable, caching disabled", zap.String("addr", addr), zap.Error(err))
		return &Service{}
	}

	return &Service{client: client, ttl: ttl}
}

func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *Service) GetStrings(ctx context.Context, key string) ([]string, bool) {
	if !s.Enabled() {
		return nil, false
	}

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.Logger.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, false
	}
	return values, true
}

func (s *Service) SetStrings(ctx context.Context, key string, values []string) {
	if !s.Enabled() {
		return
	}

	data, err := json.Marshal(values)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		utils.Logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) Close() {
	if s.Enabled() {
		_ = s.client.Close()
	}
}
