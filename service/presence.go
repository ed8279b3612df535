package service

import (
	"EduForum/pkg/socket"
	"EduForum/socket/event"
	"EduForum/types"
	"sort"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// PresenceService 在线用户表，来源只有 userOnline / userOffline 事件
type PresenceService struct {
	online cmap.ConcurrentMap[string, time.Time]

	mu   sync.Mutex
	live *liveBinding
}

func NewPresenceService() *PresenceService {
	return &PresenceService{online: cmap.New[time.Time]()}
}

func (s *PresenceService) Bind(conn socket.IClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live.unbind()

	b := newLiveBinding(conn)
	listen(b, event.UserOnline, s.apply)
	listen(b, event.UserOffline, s.apply)
	s.live = b
}

func (s *PresenceService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live.unbind()
	s.live = nil
}

func (s *PresenceService) apply(ev types.PresenceEvent) {
	if ev.Online {
		s.online.Set(ev.UserID, ev.At)
		return
	}
	s.online.Remove(ev.UserID)
}

func (s *PresenceService) IsOnline(uid string) bool {
	return s.online.Has(uid)
}

// Online 在线用户ID，按上线时间排序
func (s *PresenceService) Online() []string {
	items := s.online.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if items[ids[i]].Equal(items[ids[j]]) {
			return ids[i] < ids[j]
		}
		return items[ids[i]].Before(items[ids[j]])
	})
	return ids
}

// Reset 断线重连后在线表以服务端重新推送为准
func (s *PresenceService) Reset() {
	s.online.Clear()
}
