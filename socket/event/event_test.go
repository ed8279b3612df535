package event

import (
	"testing"
)

func TestDecodeDiscussion_Wrapped(t *testing.T) {
	d, err := NewDiscussion.Decode([]byte(`{"discussion":{"_id":"d1","title":"hello"}}`))
	if err != nil || d.ID != "d1" || d.Title != "hello" {
		t.Fatalf("got %+v %v", d, err)
	}
	if _, err := NewDiscussion.Decode([]byte(`{"title":"no id"}`)); err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestDecodeReplyPatch(t *testing.T) {
	p, err := ReplyUpdate.Decode([]byte(`{"_id":"r1","discussion":{"_id":"d1"},"content":"edited"}`))
	if err != nil || p.ID != "r1" || p.Discussion != "d1" {
		t.Fatalf("got %+v %v", p, err)
	}
}

func TestDecodeLike(t *testing.T) {
	ev, err := ReplyLike.Decode([]byte(`{"discussionId":"d1","replyId":"r1","userId":"u2","liked":false}`))
	if err != nil || ev.ReplyID != "r1" || ev.Liked {
		t.Fatalf("got %+v %v", ev, err)
	}

	if ev.Likes != nil {
		t.Fatal("no likes list in payload")
	}

	ev, err = DiscussionLike.Decode([]byte(`{"discussionId":"d1","likes":["u1","u2","u1"]}`))
	if err != nil || len(ev.Likes) != 2 || !ev.Liked {
		t.Fatalf("got %+v %v", ev, err)
	}
}

func TestDecodePresence(t *testing.T) {
	ev, err := UserOnline.Decode([]byte(`"u5"`))
	if err != nil || ev.UserID != "u5" || !ev.Online {
		t.Fatalf("got %+v %v", ev, err)
	}
	ev, err = UserOffline.Decode([]byte(`{"userId":"u6"}`))
	if err != nil || ev.UserID != "u6" || ev.Online {
		t.Fatalf("got %+v %v", ev, err)
	}
}

func TestRooms(t *testing.T) {
	if RoomDiscussion("d1") != "discussion:d1" || RoomUser("u1") != "user:u1" {
		t.Fatal("room naming changed")
	}
}
