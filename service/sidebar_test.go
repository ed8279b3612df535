package service

import (
	"EduForum/dao/cache"
	"EduForum/types"
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestSidebar_RefreshReplacesSnapshot(t *testing.T) {
	var fail bool
	d := &fakeDiscussionDAO{
		trending: func() ([]types.TrendingTopic, error) {
			return []types.TrendingTopic{{ID: "t1"}}, nil
		},
		categories: func() ([]types.CategoryStats, error) {
			if fail {
				return nil, errServer
			}
			return []types.CategoryStats{{Category: types.CategoryGeneral, Count: 3}}, nil
		},
		overview: func() (types.CommunityOverview, error) {
			return types.CommunityOverview{TotalMembers: 10}, nil
		},
	}
	s := NewSidebarService(d, cache.NewSidebarStorage(nil, 0))

	sb, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(sb.Trending) != 1 || len(sb.Categories) != 1 || sb.Overview.TotalMembers != 10 {
		t.Fatalf("sidebar = %+v", sb)
	}

	fail = true
	if _, err := s.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if s.Snapshot() != sb {
		t.Fatal("failed refresh keeps the previous snapshot")
	}

	calls := d.calls.Load()
	if got, _ := s.Load(context.Background()); got != sb || d.calls.Load() != calls {
		t.Fatal("load serves the in-memory snapshot")
	}
}

func TestSidebar_RefreshAsyncQueuesWhileRunning(t *testing.T) {
	var trendingCalls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	d := &fakeDiscussionDAO{
		trending: func() ([]types.TrendingTopic, error) {
			if trendingCalls.Add(1) == 1 {
				close(entered)
				<-release
				return []types.TrendingTopic{{ID: "old"}}, nil
			}
			return []types.TrendingTopic{{ID: "new"}}, nil
		},
		categories: func() ([]types.CategoryStats, error) { return nil, nil },
		overview:   func() (types.CommunityOverview, error) { return types.CommunityOverview{}, nil },
	}
	s := NewSidebarService(d, cache.NewSidebarStorage(nil, 0))

	s.RefreshAsync()
	<-entered
	// 运行中的两次触发合并为一次补跑
	s.RefreshAsync()
	s.RefreshAsync()
	close(release)

	deadline := time.Now().Add(2 * time.Second)
	for {
		sb := s.Snapshot()
		if sb != nil && len(sb.Trending) == 1 && sb.Trending[0].ID == "new" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("trending calls = %d, snapshot = %+v", trendingCalls.Load(), sb)
		}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(50 * time.Millisecond)
	if n := trendingCalls.Load(); n != 2 {
		t.Fatalf("trending calls = %d, want 2", n)
	}
}
