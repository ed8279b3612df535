package service

import (
	"EduForum/dao"
	"EduForum/dao/cache"
	"EduForum/pkg/log"
	"EduForum/types"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const (
	trendingLimit  = 5
	refreshTimeout = 10 * time.Second
)

var _ SidebarRefresher = (*SidebarService)(nil)

// SidebarService 热门、分类统计、社区概况三项聚合，每次刷新整体替换
type SidebarService struct {
	dao     dao.IDiscussionDAO
	storage *cache.SidebarStorage

	mu       sync.RWMutex
	snapshot *types.Sidebar
	running  sync.Mutex
	pending  atomic.Bool
}

func NewSidebarService(d dao.IDiscussionDAO, storage *cache.SidebarStorage) *SidebarService {
	return &SidebarService{dao: d, storage: storage}
}

// Load 内存 > redis 快照 > 接口
func (s *SidebarService) Load(ctx context.Context) (*types.Sidebar, error) {
	if sb := s.Snapshot(); sb != nil {
		return sb, nil
	}

	sb, err := s.storage.Get(ctx)
	if err != nil {
		log.L.Warn("read sidebar snapshot failed", zap.Error(err))
	}
	if sb != nil {
		s.set(sb)
		return sb, nil
	}
	return s.Refresh(ctx)
}

// Refresh 三个接口并发拉取，任一失败则保留旧快照
func (s *SidebarService) Refresh(ctx context.Context) (*types.Sidebar, error) {
	var (
		trending   []types.TrendingTopic
		categories []types.CategoryStats
		overview   types.CommunityOverview
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) (err error) {
		trending, err = s.dao.Trending(ctx, trendingLimit)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		categories, err = s.dao.CategoryStats(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		overview, err = s.dao.CommunityOverview(ctx)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	sb := &types.Sidebar{
		Trending:    trending,
		Categories:  categories,
		Overview:    overview,
		RefreshedAt: time.Now(),
	}
	s.set(sb)

	if err := s.storage.Set(ctx, sb); err != nil {
		log.L.Warn("write sidebar snapshot failed", zap.Error(err))
	}
	return sb, nil
}

// RefreshAsync 不阻塞调用方，错误只记日志。
// 已有刷新在跑时只记一个待办，当前这轮结束后再补跑一次，多次触发合并成一次。
func (s *SidebarService) RefreshAsync() {
	s.pending.Store(true)
	if !s.running.TryLock() {
		return
	}
	go s.drain()
}

func (s *SidebarService) drain() {
	for {
		for s.pending.Swap(false) {
			s.refreshOnce()
		}
		s.running.Unlock()
		// 解锁前后可能有新的触发没抢到锁
		if !s.pending.Load() || !s.running.TryLock() {
			return
		}
	}
}

func (s *SidebarService) refreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if _, err := s.Refresh(ctx); err != nil {
		log.L.Warn("refresh sidebar failed", zap.Error(err))
	}
}

func (s *SidebarService) Snapshot() *types.Sidebar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *SidebarService) set(sb *types.Sidebar) {
	s.mu.Lock()
	s.snapshot = sb
	s.mu.Unlock()
}
