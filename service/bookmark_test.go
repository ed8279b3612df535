package service

import (
	"EduForum/types"
	"context"
	"errors"
	"testing"
)

func TestBookmark_RequiresLogin(t *testing.T) {
	d := &fakeDiscussionDAO{}
	s := NewBookmarkService(d, &types.Session{})

	if err := s.Bookmark(context.Background(), "d1"); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("err = %v", err)
	}
	if d.calls.Load() != 0 {
		t.Fatal("no request without login")
	}
}

func TestBookmark_LocalSet(t *testing.T) {
	d := &fakeDiscussionDAO{
		bookmarked: func() ([]types.Discussion, error) {
			return []types.Discussion{{ID: "d1"}, {ID: "d2"}}, nil
		},
	}
	s := NewBookmarkService(d, loggedIn())
	ctx := context.Background()

	if err := s.Bookmark(ctx, "d9"); err != nil {
		t.Fatal(err)
	}
	if !s.IsBookmarked("d9") {
		t.Fatal("d9 should be bookmarked")
	}

	// 列表整体替换本地集合
	if _, err := s.List(ctx); err != nil {
		t.Fatal(err)
	}
	if s.IsBookmarked("d9") || !s.IsBookmarked("d2") {
		t.Fatal("list should replace local set")
	}

	if err := s.Unbookmark(ctx, "d2"); err != nil {
		t.Fatal(err)
	}
	if s.IsBookmarked("d2") {
		t.Fatal("d2 should be removed")
	}
}
