package process

import (
	"EduForum/pkg/log"
	"EduForum/pkg/socket"
	"EduForum/service"
	"context"
	"time"

	"go.uber.org/zap"
)

var healthInterval = 5 * time.Second

// ConnStatus 连接状态
type ConnStatus interface {
	State() socket.State
	Dials() uint64
}

// HealthSubscribe 巡检连接状态；重连成功后重新拉取列表，补上断线期间漏掉的事件
type HealthSubscribe struct {
	conn     ConnStatus
	feed     *service.FeedService
	detail   *service.DetailService
	presence *service.PresenceService
}

func NewHealthSubscribe(conn *socket.Client, feed *service.FeedService, detail *service.DetailService, presence *service.PresenceService) *HealthSubscribe {
	return &HealthSubscribe{conn: conn, feed: feed, detail: detail, presence: presence}
}

func (s *HealthSubscribe) Init() error {
	return nil
}

func (s *HealthSubscribe) Setup(ctx context.Context) error {
	log.L.Info("Start HealthSubscribe")

	timer := time.NewTicker(healthInterval)
	defer timer.Stop()

	var seen uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			seen = s.check(ctx, seen)
		}
	}
}

func (s *HealthSubscribe) check(ctx context.Context, seen uint64) uint64 {
	dials := s.conn.Dials()
	if s.conn.State() != socket.StateConnected || dials == seen {
		return seen
	}
	if seen > 0 || dials > 1 {
		log.L.Info("live channel recovered, resync feed", zap.Uint64("dials", dials))
		s.presence.Reset()
		if n := s.detail.Rejoin(); n > 0 {
			log.L.Info("rejoined discussion rooms", zap.Int("rooms", n))
		}
		if err := s.feed.Load(ctx, s.feed.Params()); err != nil {
			log.L.Warn("resync feed failed", zap.Error(err))
		}
	}
	return dials
}
