package cache

import (
	"EduForum/types"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sidebarKey        = "forum:sidebar"
	defaultSidebarTTL = 60 * time.Second
)

// SidebarStorage 侧边栏聚合快照，redis 为 nil 时读写都是空操作
type SidebarStorage struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSidebarStorage(rds *redis.Client, ttl time.Duration) *SidebarStorage {
	if ttl <= 0 {
		ttl = defaultSidebarTTL
	}
	return &SidebarStorage{redis: rds, ttl: ttl}
}

func (s *SidebarStorage) Enabled() bool {
	return s != nil && s.redis != nil
}

// Get 未命中返回 nil, nil
func (s *SidebarStorage) Get(ctx context.Context) (*types.Sidebar, error) {
	if !s.Enabled() {
		return nil, nil
	}
	b, err := s.redis.Get(ctx, sidebarKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sb types.Sidebar
	if err := json.Unmarshal(b, &sb); err != nil {
		// 脏数据直接丢弃
		_ = s.redis.Del(ctx, sidebarKey).Err()
		return nil, nil
	}
	return &sb, nil
}

// Set 整体覆盖
func (s *SidebarStorage) Set(ctx context.Context, sb *types.Sidebar) error {
	if !s.Enabled() {
		return nil
	}
	b, err := json.Marshal(sb)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sidebarKey, b, s.ttl).Err()
}

func (s *SidebarStorage) Del(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.redis.Del(ctx, sidebarKey).Err()
}
