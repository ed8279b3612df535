package service

import (
	"EduForum/dao"
	"EduForum/types"
	"context"
	"sync"
)

var _ IBookmarkService = (*BookmarkService)(nil)

type IBookmarkService interface {
	Bookmark(ctx context.Context, id string) error
	Unbookmark(ctx context.Context, id string) error
	List(ctx context.Context) ([]types.Discussion, error)
	IsBookmarked(id string) bool
}

// BookmarkService 收藏，本地维护已收藏ID集合
type BookmarkService struct {
	dao     dao.IDiscussionDAO
	session *types.Session

	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewBookmarkService(d dao.IDiscussionDAO, session *types.Session) *BookmarkService {
	return &BookmarkService{dao: d, session: session, ids: make(map[string]struct{})}
}

func (s *BookmarkService) Bookmark(ctx context.Context, id string) error {
	if !s.session.LoggedIn() {
		return ErrLoginRequired
	}
	if err := s.dao.Bookmark(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.ids[id] = struct{}{}
	s.mu.Unlock()
	return nil
}

func (s *BookmarkService) Unbookmark(ctx context.Context, id string) error {
	if !s.session.LoggedIn() {
		return ErrLoginRequired
	}
	if err := s.dao.Unbookmark(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.ids, id)
	s.mu.Unlock()
	return nil
}

// List 拉取收藏列表并整体替换本地集合
func (s *BookmarkService) List(ctx context.Context) ([]types.Discussion, error) {
	if !s.session.LoggedIn() {
		return nil, ErrLoginRequired
	}
	list, err := s.dao.Bookmarked(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(list))
	for _, d := range list {
		ids[d.ID] = struct{}{}
	}
	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()
	return list, nil
}

func (s *BookmarkService) IsBookmarked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}
