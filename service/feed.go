package service

import (
	"EduForum/dao"
	"EduForum/internal/transform"
	"EduForum/pkg/log"
	"EduForum/pkg/socket"
	"EduForum/socket/event"
	"EduForum/types"
	"context"
	"sync"

	"go.uber.org/zap"
)

// SidebarRefresher 新主题出现后异步刷新侧边栏，自行吞掉错误
type SidebarRefresher interface {
	RefreshAsync()
}

var _ IFeedService = (*FeedService)(nil)

type IFeedService interface {
	Load(ctx context.Context, params types.FeedParams) error
	Search(ctx context.Context, q string, page, limit int) error
	Create(ctx context.Context, req types.CreateDiscussionRequest) (types.Discussion, error)
	ToggleLike(ctx context.Context, id string) error
	Report(ctx context.Context, id string, reason string) error
	Discussions() []types.Discussion
	Pagination() types.Pagination
	Loading() bool
	Error() string
}

// FeedService 讨论列表缓存。列表只由 Load/Search 整体替换，
// 实时事件与本地创建按ID去重后插到表头
type FeedService struct {
	dao     dao.IDiscussionDAO
	sidebar SidebarRefresher
	session *types.Session

	mu         sync.RWMutex
	items      []types.Discussion
	pagination types.Pagination
	params     types.FeedParams
	loading    bool
	err        string
	seq        uint64
	closed     bool
	live       *liveBinding
}

func NewFeedService(d dao.IDiscussionDAO, sidebar SidebarRefresher, session *types.Session) *FeedService {
	return &FeedService{
		dao:     d,
		sidebar: sidebar,
		session: session,
		items:   make([]types.Discussion, 0),
	}
}

// Load 拉取一页并整体替换列表；并发调用时只有最后发起的那次生效
func (s *FeedService) Load(ctx context.Context, params types.FeedParams) error {
	return s.replace(ctx, params, func(ctx context.Context) (*types.DiscussionPage, error) {
		return s.dao.Feed(ctx, params)
	})
}

func (s *FeedService) Search(ctx context.Context, q string, page, limit int) error {
	params := types.FeedParams{Search: q, Page: page, Limit: limit}
	return s.replace(ctx, params, func(ctx context.Context) (*types.DiscussionPage, error) {
		return s.dao.Search(ctx, q, page, limit)
	})
}

func (s *FeedService) replace(ctx context.Context, params types.FeedParams, fetch func(context.Context) (*types.DiscussionPage, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrViewClosed
	}
	s.seq++
	seq := s.seq
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	page, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq != s.seq {
		// 已有更新的请求或已关闭，结果作废
		return err
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		log.L.Warn("load discussions failed", zap.String("tab", params.Tab), zap.Error(err))
		return err
	}
	s.items = page.Discussions
	s.pagination = page.Pagination
	s.params = params
	return nil
}

// Create 先本地校验，成功后插入表头并异步刷新侧边栏
func (s *FeedService) Create(ctx context.Context, req types.CreateDiscussionRequest) (types.Discussion, error) {
	if err := transform.ValidateDiscussionData(req).Err(); err != nil {
		return types.Discussion{}, err
	}

	d, err := s.dao.Create(ctx, req)
	if err != nil {
		s.fail(err)
		return types.Discussion{}, err
	}

	s.mu.Lock()
	if !s.closed {
		s.prepend(d)
	}
	s.mu.Unlock()

	s.refreshSidebar()
	return d, nil
}

// ToggleLike 服务端确认后再更新本地点赞集合
func (s *FeedService) ToggleLike(ctx context.Context, id string) error {
	if !s.session.LoggedIn() {
		return ErrLoginRequired
	}

	res, err := s.dao.ToggleLike(ctx, id)
	if err != nil {
		log.L.Warn("toggle discussion like failed", zap.String("discussion", id), zap.Error(err))
		s.fail(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if i := s.indexOf(id); i >= 0 {
		s.items[i].Likes = res.Apply(s.items[i].Likes, s.session.Uid())
	}
	return nil
}

func (s *FeedService) Report(ctx context.Context, id string, reason string) error {
	if err := s.dao.Report(ctx, id, reason); err != nil {
		s.fail(err)
		return err
	}
	return nil
}

// Bind 订阅实时事件，重复调用会先解绑旧的
func (s *FeedService) Bind(conn socket.IClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.live.unbind()

	b := newLiveBinding(conn)
	listen(b, event.NewDiscussion, s.onNewDiscussion)
	listen(b, event.NewReply, s.onNewReply)
	listen(b, event.DiscussionUpdate, s.onDiscussionUpdate)
	listen(b, event.DiscussionLike, s.onDiscussionLike)
	s.live = b
}

// Close 解绑实时事件，之后返回的请求结果全部忽略
func (s *FeedService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.loading = false
	s.live.unbind()
	s.live = nil
}

func (s *FeedService) onNewDiscussion(d types.Discussion) {
	s.mu.Lock()
	inserted := !s.closed && s.prepend(d)
	s.mu.Unlock()

	if inserted {
		s.refreshSidebar()
	}
}

// onNewReply 只累加回复数，不保存回复内容
func (s *FeedService) onNewReply(r types.Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if i := s.indexOf(r.Discussion); i >= 0 {
		s.items[i].ReplyCount++
	}
}

func (s *FeedService) onDiscussionUpdate(p types.DiscussionPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i] = transform.MergeDiscussion(s.items[i], p.Raw)
	}
}

func (s *FeedService) onDiscussionLike(ev types.LikeEvent) {
	if ev.ReplyID != "" || ev.Likes == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if i := s.indexOf(ev.DiscussionID); i >= 0 {
		s.items[i].Likes = ev.Likes
	}
}

// prepend 调用方持锁；ID 已存在时不插入
func (s *FeedService) prepend(d types.Discussion) bool {
	if d.ID == "" || s.indexOf(d.ID) >= 0 {
		return false
	}
	s.items = append([]types.Discussion{d}, s.items...)
	return true
}

func (s *FeedService) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *FeedService) fail(err error) {
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()
}

func (s *FeedService) refreshSidebar() {
	if s.sidebar != nil {
		s.sidebar.RefreshAsync()
	}
}

func (s *FeedService) Discussions() []types.Discussion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Discussion, len(s.items))
	copy(out, s.items)
	return out
}

// Get 列表里的某条
func (s *FeedService) Get(id string) (types.Discussion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return types.Discussion{}, false
}

func (s *FeedService) Pagination() types.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

func (s *FeedService) Params() types.FeedParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

func (s *FeedService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *FeedService) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
