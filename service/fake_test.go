package service

import (
	"EduForum/pkg/response"
	"EduForum/pkg/socket"
	"EduForum/types"
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
)

type fakeHandler struct {
	id socket.HandlerID
	fn socket.HandlerFunc
}

// fakeConn 记录 On/Off/Emit，fire 模拟服务端推送
type fakeConn struct {
	mu        sync.Mutex
	next      socket.HandlerID
	handlers  map[string][]fakeHandler
	emitted   []socket.Frame
	connected bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{handlers: make(map[string][]fakeHandler), connected: true}
}

func (f *fakeConn) Emit(event string, payload any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return false
	}
	b, _ := json.Marshal(payload)
	f.emitted = append(f.emitted, socket.Frame{Event: event, Payload: b})
	return true
}

func (f *fakeConn) On(event string, fn socket.HandlerFunc) socket.HandlerID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	f.handlers[event] = append(f.handlers[event], fakeHandler{id: f.next, fn: fn})
	return f.next
}

func (f *fakeConn) Off(event string, ids ...socket.HandlerID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(ids) == 0 {
		delete(f.handlers, event)
		return
	}
	kept := f.handlers[event][:0]
	for _, h := range f.handlers[event] {
		drop := false
		for _, id := range ids {
			if h.id == id {
				drop = true
			}
		}
		if !drop {
			kept = append(kept, h)
		}
	}
	f.handlers[event] = kept
}

func (f *fakeConn) fire(event string, payload string) {
	f.mu.Lock()
	hs := append([]fakeHandler(nil), f.handlers[event]...)
	f.mu.Unlock()
	for _, h := range hs {
		h.fn([]byte(payload))
	}
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, hs := range f.handlers {
		n += len(hs)
	}
	return n
}

func (f *fakeConn) frames() []socket.Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]socket.Frame(nil), f.emitted...)
}

// fakeDiscussionDAO 未设置的方法返回零值
type fakeDiscussionDAO struct {
	calls atomic.Int32

	feed       func(types.FeedParams) (*types.DiscussionPage, error)
	get        func(id string, page, limit int) (*types.DiscussionDetail, error)
	create     func(types.CreateDiscussionRequest) (types.Discussion, error)
	toggleLike func(id string) (types.LikeResult, error)
	search     func(q string) (*types.DiscussionPage, error)
	report     func(id, reason string) error
	trending   func() ([]types.TrendingTopic, error)
	categories func() ([]types.CategoryStats, error)
	overview   func() (types.CommunityOverview, error)
	bookmarked func() ([]types.Discussion, error)
}

func (f *fakeDiscussionDAO) Feed(_ context.Context, p types.FeedParams) (*types.DiscussionPage, error) {
	f.calls.Add(1)
	return f.feed(p)
}

func (f *fakeDiscussionDAO) Get(_ context.Context, id string, page, limit int) (*types.DiscussionDetail, error) {
	f.calls.Add(1)
	return f.get(id, page, limit)
}

func (f *fakeDiscussionDAO) Create(_ context.Context, req types.CreateDiscussionRequest) (types.Discussion, error) {
	f.calls.Add(1)
	return f.create(req)
}

func (f *fakeDiscussionDAO) ToggleLike(_ context.Context, id string) (types.LikeResult, error) {
	f.calls.Add(1)
	return f.toggleLike(id)
}

func (f *fakeDiscussionDAO) Report(_ context.Context, id, reason string) error {
	f.calls.Add(1)
	if f.report == nil {
		return nil
	}
	return f.report(id, reason)
}

func (f *fakeDiscussionDAO) Search(_ context.Context, q string, _, _ int) (*types.DiscussionPage, error) {
	f.calls.Add(1)
	return f.search(q)
}

func (f *fakeDiscussionDAO) Trending(context.Context, int) ([]types.TrendingTopic, error) {
	f.calls.Add(1)
	return f.trending()
}

func (f *fakeDiscussionDAO) Related(context.Context, string) ([]types.Discussion, error) {
	f.calls.Add(1)
	return nil, nil
}

func (f *fakeDiscussionDAO) CategoryStats(context.Context) ([]types.CategoryStats, error) {
	f.calls.Add(1)
	return f.categories()
}

func (f *fakeDiscussionDAO) CommunityOverview(context.Context) (types.CommunityOverview, error) {
	f.calls.Add(1)
	return f.overview()
}

func (f *fakeDiscussionDAO) Overview(context.Context) (types.ForumOverview, error) {
	f.calls.Add(1)
	return types.ForumOverview{}, nil
}

func (f *fakeDiscussionDAO) UserDiscussions(context.Context, string) ([]types.Discussion, error) {
	f.calls.Add(1)
	return nil, nil
}

func (f *fakeDiscussionDAO) Bookmark(context.Context, string) error {
	f.calls.Add(1)
	return nil
}

func (f *fakeDiscussionDAO) Unbookmark(context.Context, string) error {
	f.calls.Add(1)
	return nil
}

func (f *fakeDiscussionDAO) Bookmarked(context.Context) ([]types.Discussion, error) {
	f.calls.Add(1)
	return f.bookmarked()
}

type fakeReplyDAO struct {
	calls atomic.Int32

	add        func(types.CreateReplyRequest) (types.Reply, error)
	list       func(discussionID string, page, limit int) (*types.ReplyPage, error)
	toggleLike func(id string) (types.LikeResult, error)
}

func (f *fakeReplyDAO) Add(_ context.Context, req types.CreateReplyRequest) (types.Reply, error) {
	f.calls.Add(1)
	return f.add(req)
}

func (f *fakeReplyDAO) List(_ context.Context, id string, page, limit int) (*types.ReplyPage, error) {
	f.calls.Add(1)
	return f.list(id, page, limit)
}

func (f *fakeReplyDAO) ToggleLike(_ context.Context, id string) (types.LikeResult, error) {
	f.calls.Add(1)
	return f.toggleLike(id)
}

func (f *fakeReplyDAO) UserReplies(context.Context, string) ([]types.Reply, error) {
	f.calls.Add(1)
	return nil, nil
}

type countingRefresher struct {
	n atomic.Int32
}

func (c *countingRefresher) RefreshAsync() { c.n.Add(1) }

func loggedIn() *types.Session {
	return &types.Session{Token: "tkn", UserID: "me"}
}

func page(ids ...string) *types.DiscussionPage {
	p := &types.DiscussionPage{Discussions: make([]types.Discussion, 0, len(ids))}
	for _, id := range ids {
		p.Discussions = append(p.Discussions, types.Discussion{ID: id, Likes: []string{}})
	}
	return p
}

func ids(list []types.Discussion) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.ID)
	}
	return out
}

func replyIDs(list []types.Reply) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}

var errServer = response.NewError(500, "Failed to fetch discussions")
