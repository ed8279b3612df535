package service

import (
	"EduForum/dao"
	"EduForum/types"
	"context"
)

// BrowseService 只读查询，不进缓存
type BrowseService struct {
	Discussions dao.IDiscussionDAO
	Replies     dao.IReplyDAO
}

func (s *BrowseService) Related(ctx context.Context, id string) ([]types.Discussion, error) {
	return s.Discussions.Related(ctx, id)
}

func (s *BrowseService) UserDiscussions(ctx context.Context, uid string) ([]types.Discussion, error) {
	return s.Discussions.UserDiscussions(ctx, uid)
}

func (s *BrowseService) UserReplies(ctx context.Context, uid string) ([]types.Reply, error) {
	return s.Replies.UserReplies(ctx, uid)
}

func (s *BrowseService) Overview(ctx context.Context) (types.ForumOverview, error) {
	return s.Discussions.Overview(ctx)
}
