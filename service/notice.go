package service

import (
	"EduForum/config"
	"EduForum/dao"
	"EduForum/pkg/log"
	"EduForum/pkg/metrics"
	"EduForum/pkg/snowflake"
	"EduForum/pkg/socket"
	"EduForum/socket/event"
	"EduForum/types"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const storeTimeout = 3 * time.Second

var _ RoomJoiner = (*NoticeService)(nil)

// NoticeService 把实时事件转成可关闭的提示，本人触发的事件不提示
type NoticeService struct {
	session *types.Session
	inbox   *Inbox
	store   *dao.NotificationDAO

	mu   sync.Mutex
	conn socket.IClient
	live *liveBinding
}

func NewNoticeService(session *types.Session, conf *config.NoticeConfig, store *dao.NotificationDAO) *NoticeService {
	return &NoticeService{
		session: session,
		inbox:   NewInbox(conf.InboxSize, conf.Lifetime()),
		store:   store,
	}
}

func (s *NoticeService) Bind(conn socket.IClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live.unbind()
	s.conn = conn

	b := newLiveBinding(conn)
	listen(b, event.NewDiscussion, s.onNewDiscussion)
	listen(b, event.NewReply, s.onNewReply)
	listen(b, event.DiscussionLike, s.onLike)
	listen(b, event.ReplyLike, s.onLike)
	listen(b, event.Notification, s.onNotice)
	s.live = b
}

func (s *NoticeService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live.unbind()
	s.live = nil
}

// Join 进入讨论房间，尽力而为，不等待确认
func (s *NoticeService) Join(discussionID string) bool {
	return s.emit(event.NameJoinDiscussion, discussionID)
}

func (s *NoticeService) Leave(discussionID string) bool {
	return s.emit(event.NameLeaveDiscussion, discussionID)
}

func (s *NoticeService) emit(name string, discussionID string) bool {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return false
	}
	return conn.Emit(name, types.RoomPayload{DiscussionID: discussionID})
}

func (s *NoticeService) onNewDiscussion(d types.Discussion) {
	if s.self(d.CreatedBy.ID) {
		return
	}
	s.Dispatch(types.Notification{
		Kind:         types.NoticeNewDiscussion,
		Title:        "New discussion",
		Message:      fmt.Sprintf("%s started \"%s\"", d.CreatedBy.DisplayName(), d.Title),
		Link:         types.DiscussionLink(d.ID),
		DiscussionID: d.ID,
	})
}

func (s *NoticeService) onNewReply(r types.Reply) {
	if s.self(r.CreatedBy.ID) {
		return
	}
	s.Dispatch(types.Notification{
		Kind:         types.NoticeNewReply,
		Title:        "New reply",
		Message:      fmt.Sprintf("%s replied to a discussion", r.CreatedBy.DisplayName()),
		Link:         types.DiscussionLink(r.Discussion),
		DiscussionID: r.Discussion,
		ReplyID:      r.ID,
	})
}

// onLike 只提示别人点赞了我的内容
func (s *NoticeService) onLike(ev types.LikeEvent) {
	if !ev.Liked || s.self(ev.UserID) {
		return
	}
	if ev.AuthorID != "" && ev.AuthorID != s.session.Uid() {
		return
	}
	name := ev.UserName
	if name == "" {
		name = "Someone"
	}
	what := "discussion"
	if ev.ReplyID != "" {
		what = "reply"
	}
	s.Dispatch(types.Notification{
		Kind:         types.NoticeLike,
		Title:        "New like",
		Message:      fmt.Sprintf("%s liked your %s", name, what),
		Link:         types.DiscussionLink(ev.DiscussionID),
		DiscussionID: ev.DiscussionID,
		ReplyID:      ev.ReplyID,
	})
}

func (s *NoticeService) onNotice(n types.ServerNotice) {
	if n.FromUserID != "" && s.self(n.FromUserID) {
		return
	}
	out := types.Notification{
		Kind:         types.NoticeSystem,
		Title:        n.Title,
		Message:      n.Message,
		DiscussionID: n.DiscussionID,
		ReplyID:      n.ReplyID,
	}
	if n.Type == types.NoticeMention {
		out.Kind = types.NoticeMention
		if out.Title == "" {
			out.Title = "You were mentioned"
		}
		if out.Message == "" && n.FromName != "" {
			out.Message = n.FromName + " mentioned you"
		}
		if n.DiscussionID != "" && n.ReplyID != "" {
			out.Link = types.ReplyLink(n.DiscussionID, n.ReplyID)
		}
	}
	if out.Link == "" && n.DiscussionID != "" {
		out.Link = types.DiscussionLink(n.DiscussionID)
	}
	if out.Title == "" {
		out.Title = "Notification"
	}
	s.Dispatch(out)
}

// Dispatch 分配ID后写入收件箱，配置了数据库时异步落库
func (s *NoticeService) Dispatch(n types.Notification) types.Notification {
	if n.ID == 0 {
		n.ID = snowflake.GenID()
	}
	n = s.inbox.Push(n)
	metrics.NotificationsTotal.WithLabelValues(n.Kind).Inc()
	log.L.Info("notification",
		zap.Int64("id", n.ID),
		zap.String("kind", n.Kind),
		zap.String("title", n.Title),
		zap.String("link", n.Link),
	)

	if s.store.Enabled() {
		uid := s.session.Uid()
		go func(n types.Notification) {
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()
			if err := s.store.Save(ctx, uid, n); err != nil {
				log.L.Warn("save notification failed", zap.Int64("id", n.ID), zap.Error(err))
			}
		}(n)
	}
	return n
}

func (s *NoticeService) List() []types.Notification {
	return s.inbox.List()
}

func (s *NoticeService) Dismiss(ctx context.Context, id int64) bool {
	ok := s.inbox.Dismiss(id)
	if s.store.Enabled() {
		if err := s.store.Dismiss(ctx, s.session.Uid(), id); err != nil {
			log.L.Warn("dismiss notification failed", zap.Int64("id", id), zap.Error(err))
		}
	}
	return ok
}

func (s *NoticeService) self(uid string) bool {
	return uid != "" && uid == s.session.Uid()
}

// History 已落库且未关闭的通知，未配置数据库时返回内存里的
func (s *NoticeService) History(ctx context.Context, limit int) ([]types.Notification, error) {
	if !s.store.Enabled() {
		return s.inbox.List(), nil
	}
	rows, err := s.store.Recent(ctx, s.session.Uid(), limit)
	if err != nil {
		return nil, err
	}
	out := make([]types.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.Notification{
			ID:           row.ID,
			Kind:         row.Kind,
			Title:        row.Title,
			Message:      row.Message,
			Link:         row.Link,
			DiscussionID: row.DiscussionID,
			ReplyID:      row.ReplyID,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}
