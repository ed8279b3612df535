package service

import (
	"EduForum/dao"
	"EduForum/internal/transform"
	"EduForum/pkg/log"
	"EduForum/pkg/socket"
	"EduForum/socket/event"
	"EduForum/types"
	"context"
	"strings"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

// RoomJoiner 详情页进出讨论房间
type RoomJoiner interface {
	Join(discussionID string) bool
	Leave(discussionID string) bool
}

// DetailService 管理当前打开的详情视图，每个讨论ID至多一个
type DetailService struct {
	discussions dao.IDiscussionDAO
	replies     dao.IReplyDAO
	session     *types.Session
	rooms       RoomJoiner

	connMu sync.RWMutex
	conn   socket.IClient
	views  cmap.ConcurrentMap[string, *DetailView]
}

func NewDetailService(discussions dao.IDiscussionDAO, replies dao.IReplyDAO, session *types.Session, rooms RoomJoiner) *DetailService {
	return &DetailService{
		discussions: discussions,
		replies:     replies,
		session:     session,
		rooms:       rooms,
		views:       cmap.New[*DetailView](),
	}
}

// Bind 之后打开的视图会订阅实时事件，已打开的视图也补上订阅
func (s *DetailService) Bind(conn socket.IClient) {
	s.connMu.Lock()
	s.conn = conn
	s.connMu.Unlock()
	for _, v := range s.views.Items() {
		v.bind(conn)
	}
}

// Open 返回该讨论的详情视图，已打开则复用
func (s *DetailService) Open(id string) *DetailView {
	s.connMu.RLock()
	conn := s.conn
	s.connMu.RUnlock()
	return s.views.Upsert(id, nil, func(exist bool, old, _ *DetailView) *DetailView {
		if exist && old != nil {
			return old
		}
		v := newDetailView(id, s)
		if conn != nil {
			v.bind(conn)
		}
		return v
	})
}

func (s *DetailService) View(id string) (*DetailView, bool) {
	return s.views.Get(id)
}

// CloseView 关闭并移除视图
func (s *DetailService) CloseView(id string) bool {
	v, ok := s.views.Pop(id)
	if !ok {
		return false
	}
	v.Close()
	return true
}

func (s *DetailService) CloseAll() {
	for _, id := range s.views.Keys() {
		s.CloseView(id)
	}
}

// Rejoin 重连后服务端房间成员关系已丢失，逐个视图重新加入
func (s *DetailService) Rejoin() int {
	n := 0
	for _, v := range s.views.Items() {
		if v.rejoin() {
			n++
		}
	}
	return n
}

func (s *DetailService) Count() int {
	return s.views.Count()
}

// DetailView 单个讨论及其回复列表。回复只追加不重排
type DetailView struct {
	id      string
	svc     *DetailService
	session *types.Session

	mu         sync.RWMutex
	discussion types.Discussion
	replies    []types.Reply
	pagination types.Pagination
	loading    bool
	more       int // 进行中的翻页请求数
	submitting bool
	err        string
	seq        uint64
	closed     bool
	joined     bool
	live       *liveBinding
}

func newDetailView(id string, svc *DetailService) *DetailView {
	return &DetailView{
		id:      id,
		svc:     svc,
		session: svc.session,
		replies: make([]types.Reply, 0),
	}
}

func (v *DetailView) ID() string { return v.id }

// Load 同时替换主题和回复列表
func (v *DetailView) Load(ctx context.Context, page, limit int) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	v.seq++
	seq := v.seq
	v.loading = true
	v.err = ""
	v.mu.Unlock()

	detail, err := v.svc.discussions.Get(ctx, v.id, page, limit)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || seq != v.seq {
		return err
	}
	v.loading = false
	if err != nil {
		v.err = err.Error()
		log.L.Warn("load discussion failed", zap.String("discussion", v.id), zap.Error(err))
		return err
	}
	v.discussion = detail.Discussion
	v.replies = detail.Replies
	v.pagination = detail.Pagination
	return nil
}

// LoadMoreReplies 追加下一页，已有的回复按ID跳过
func (v *DetailView) LoadMoreReplies(ctx context.Context, page, limit int) (types.Pagination, error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return types.Pagination{}, ErrViewClosed
	}
	v.more++
	v.mu.Unlock()

	res, err := v.svc.replies.List(ctx, v.id, page, limit)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.more > 0 {
		v.more--
	}
	if v.closed {
		return types.Pagination{}, ErrViewClosed
	}
	if err != nil {
		v.err = err.Error()
		return types.Pagination{}, err
	}
	for _, r := range res.Replies {
		if v.discussion.CreatedBy.ID != "" {
			r.IsOP = r.CreatedBy.ID == v.discussion.CreatedBy.ID
		}
		v.appendReply(r)
	}
	v.pagination = res.Pagination
	return res.Pagination, nil
}

// PostReply 需要登录；内容本地校验通过后才发请求
func (v *DetailView) PostReply(ctx context.Context, content string, parentReply string) (types.Reply, error) {
	if !v.session.LoggedIn() {
		return types.Reply{}, ErrLoginRequired
	}
	req := types.CreateReplyRequest{
		Discussion:  v.id,
		Content:     content,
		ParentReply: parentReply,
	}
	// 长度上限按原文校验，发出去的是去掉首尾空白的内容
	if err := transform.ValidateReplyData(req).Err(); err != nil {
		return types.Reply{}, err
	}
	req.Content = strings.TrimSpace(content)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return types.Reply{}, ErrViewClosed
	}
	v.submitting = true
	v.mu.Unlock()

	reply, err := v.svc.replies.Add(ctx, req)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitting = false
	if err != nil {
		v.err = err.Error()
		return types.Reply{}, err
	}
	if v.closed {
		return reply, nil
	}
	if reply.Discussion == "" {
		reply.Discussion = v.id
	}
	if v.discussion.CreatedBy.ID != "" {
		reply.IsOP = reply.CreatedBy.ID == v.discussion.CreatedBy.ID
	}
	if v.appendReply(reply) {
		v.discussion.ReplyCount++
	}
	return reply, nil
}

func (v *DetailView) ToggleLikeReply(ctx context.Context, replyID string) error {
	if !v.session.LoggedIn() {
		return ErrLoginRequired
	}

	res, err := v.svc.replies.ToggleLike(ctx, replyID)
	if err != nil {
		log.L.Warn("toggle reply like failed", zap.String("reply", replyID), zap.Error(err))
		v.mu.Lock()
		v.err = err.Error()
		v.mu.Unlock()
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	if i := v.replyIndex(replyID); i >= 0 {
		v.replies[i].Likes = res.Apply(v.replies[i].Likes, v.session.Uid())
	}
	return nil
}

// ToggleLike 点赞当前讨论
func (v *DetailView) ToggleLike(ctx context.Context) error {
	if !v.session.LoggedIn() {
		return ErrLoginRequired
	}

	res, err := v.svc.discussions.ToggleLike(ctx, v.id)
	if err != nil {
		v.mu.Lock()
		v.err = err.Error()
		v.mu.Unlock()
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.closed {
		v.discussion.Likes = res.Apply(v.discussion.Likes, v.session.Uid())
	}
	return nil
}

func (v *DetailView) bind(conn socket.IClient) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.live.unbind()

	b := newLiveBinding(conn)
	listen(b, event.NewReply, v.onNewReply)
	listen(b, event.ReplyUpdate, v.onReplyUpdate)
	listen(b, event.ReplyLike, v.onReplyLike)
	listen(b, event.DiscussionUpdate, v.onDiscussionUpdate)
	listen(b, event.DiscussionLike, v.onDiscussionLike)
	v.live = b

	if v.svc.rooms != nil && !v.joined {
		v.joined = v.svc.rooms.Join(v.id)
	}
}

func (v *DetailView) rejoin() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.svc.rooms == nil {
		return false
	}
	v.joined = v.svc.rooms.Join(v.id)
	return v.joined
}

// Close 离开房间并解绑，之后返回的结果都会被忽略
func (v *DetailView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.loading = false
	v.more = 0
	v.submitting = false
	v.live.unbind()
	v.live = nil
	if v.joined && v.svc.rooms != nil {
		v.svc.rooms.Leave(v.id)
		v.joined = false
	}
}

// onNewReply 只接收本讨论的回复
func (v *DetailView) onNewReply(r types.Reply) {
	if r.Discussion != v.id {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if v.discussion.CreatedBy.ID != "" {
		r.IsOP = r.CreatedBy.ID == v.discussion.CreatedBy.ID
	}
	if v.appendReply(r) {
		v.discussion.ReplyCount++
	}
}

func (v *DetailView) onReplyUpdate(p types.ReplyPatch) {
	if p.Discussion != "" && p.Discussion != v.id {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if i := v.replyIndex(p.ID); i >= 0 {
		v.replies[i] = transform.MergeReply(v.replies[i], p.Raw)
	}
}

func (v *DetailView) onReplyLike(ev types.LikeEvent) {
	if ev.Likes == nil || ev.ReplyID == "" {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if i := v.replyIndex(ev.ReplyID); i >= 0 {
		v.replies[i].Likes = ev.Likes
	}
}

func (v *DetailView) onDiscussionUpdate(p types.DiscussionPatch) {
	if p.ID != v.id {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.discussion.ID == "" {
		return
	}
	v.discussion = transform.MergeDiscussion(v.discussion, p.Raw)
}

func (v *DetailView) onDiscussionLike(ev types.LikeEvent) {
	if ev.ReplyID != "" || ev.DiscussionID != v.id || ev.Likes == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.closed && v.discussion.ID != "" {
		v.discussion.Likes = ev.Likes
	}
}

// appendReply 调用方持锁
func (v *DetailView) appendReply(r types.Reply) bool {
	if r.ID != "" && v.replyIndex(r.ID) >= 0 {
		return false
	}
	v.replies = append(v.replies, r)
	return true
}

func (v *DetailView) replyIndex(id string) int {
	for i := range v.replies {
		if v.replies[i].ID == id {
			return i
		}
	}
	return -1
}

func (v *DetailView) Discussion() types.Discussion {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.discussion
}

func (v *DetailView) Replies() []types.Reply {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]types.Reply, len(v.replies))
	copy(out, v.replies)
	return out
}

func (v *DetailView) Pagination() types.Pagination {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.pagination
}

// Loading 首屏加载或翻页任一在进行
func (v *DetailView) Loading() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loading || v.more > 0
}

func (v *DetailView) Submitting() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.submitting
}

func (v *DetailView) Error() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

// Snapshot 主题 + 回复 + 分页
func (v *DetailView) Snapshot() types.DiscussionDetail {
	v.mu.RLock()
	defer v.mu.RUnlock()
	replies := make([]types.Reply, len(v.replies))
	copy(replies, v.replies)
	return types.DiscussionDetail{
		Discussion: v.discussion,
		Replies:    replies,
		Pagination: v.pagination,
	}
}
