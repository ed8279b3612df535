package process

import (
	"EduForum/dao"
	"EduForum/pkg/socket"
	"EduForum/service"
	"EduForum/types"
	"context"
	"sync/atomic"
	"testing"
)

type fakeStatus struct {
	state socket.State
	dials uint64
}

func (f *fakeStatus) State() socket.State { return f.state }
func (f *fakeStatus) Dials() uint64       { return f.dials }

type countingFeedDAO struct {
	dao.IDiscussionDAO
	loads atomic.Int32
}

func (d *countingFeedDAO) Feed(context.Context, types.FeedParams) (*types.DiscussionPage, error) {
	d.loads.Add(1)
	return &types.DiscussionPage{Discussions: []types.Discussion{}}, nil
}

type fakeRooms struct {
	joins atomic.Int32
}

func (r *fakeRooms) Join(string) bool  { r.joins.Add(1); return true }
func (r *fakeRooms) Leave(string) bool { return true }

func TestHealth_ResyncAfterReconnect(t *testing.T) {
	d := &countingFeedDAO{}
	status := &fakeStatus{state: socket.StateConnected, dials: 1}
	rooms := &fakeRooms{}
	detail := service.NewDetailService(d, nil, &types.Session{}, rooms)
	detail.Open("d1")
	s := &HealthSubscribe{
		conn:     status,
		feed:     service.NewFeedService(d, nil, &types.Session{}),
		detail:   detail,
		presence: service.NewPresenceService(),
	}
	ctx := context.Background()

	seen := s.check(ctx, 0)
	if seen != 1 || d.loads.Load() != 0 {
		t.Fatal("first connection needs no resync")
	}

	status.state = socket.StateReconnecting
	status.dials = 1
	seen = s.check(ctx, seen)

	status.state = socket.StateConnected
	status.dials = 2
	seen = s.check(ctx, seen)
	if seen != 2 || d.loads.Load() != 1 {
		t.Fatalf("seen = %d loads = %d", seen, d.loads.Load())
	}
	if rooms.joins.Load() != 1 {
		t.Fatalf("open view should rejoin its room, joins = %d", rooms.joins.Load())
	}

	s.check(ctx, seen)
	if d.loads.Load() != 1 {
		t.Fatal("no resync without a new connection")
	}
}
