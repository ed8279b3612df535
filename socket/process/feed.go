package process

import (
	"EduForum/pkg/log"
	"EduForum/pkg/socket"
	"EduForum/service"
	"EduForum/types"
	"context"

	"go.uber.org/zap"
)

const defaultPageSize = 20

// FeedSubscribe 讨论列表与详情视图的实时同步
type FeedSubscribe struct {
	Conn    *socket.Client
	Feed    *service.FeedService
	Detail  *service.DetailService
	Sidebar *service.SidebarService
}

func (s *FeedSubscribe) Init() error {
	s.Feed.Bind(s.Conn)
	s.Detail.Bind(s.Conn)
	return nil
}

func (s *FeedSubscribe) Setup(ctx context.Context) error {
	// 首屏数据失败不影响实时同步，稍后可通过本地接口重新加载
	if err := s.Feed.Load(ctx, types.FeedParams{Tab: types.TabRecent, Page: 1, Limit: defaultPageSize}); err != nil {
		log.L.Warn("initial feed load failed", zap.Error(err))
	}
	if _, err := s.Sidebar.Load(ctx); err != nil {
		log.L.Warn("initial sidebar load failed", zap.Error(err))
	}

	<-ctx.Done()
	s.Detail.CloseAll()
	s.Feed.Close()
	return nil
}
