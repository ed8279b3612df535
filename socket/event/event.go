// Package event 论坛实时通道的事件目录：事件名与载荷类型一一对应
package event

import (
	"errors"
	"time"

	"EduForum/internal/transform"
	"EduForum/pkg/socket"
	"EduForum/types"

	"github.com/tidwall/gjson"
)

// 服务端推送
const (
	NameNewDiscussion    = "newDiscussion"
	NameDiscussionUpdate = "discussionUpdate"
	NameDiscussionLike   = "discussionLike"
	NameNewReply         = "newReply"
	NameReplyUpdate      = "replyUpdate"
	NameReplyLike        = "replyLike"
	NameUserOnline       = "userOnline"
	NameUserOffline      = "userOffline"
	NameNotification     = "notification"
)

// 客户端发起
const (
	NameJoinDiscussion  = "joinDiscussion"
	NameLeaveDiscussion = "leaveDiscussion"
)

// 房间名
const RoomForum = "forum"

func RoomDiscussion(id string) string { return "discussion:" + id }
func RoomUser(id string) string       { return "user:" + id }

var errMissingID = errors.New("event payload has no id")

var (
	NewDiscussion    = socket.NewEvent(NameNewDiscussion, decodeDiscussion)
	DiscussionUpdate = socket.NewEvent(NameDiscussionUpdate, decodeDiscussionPatch)
	DiscussionLike   = socket.NewEvent(NameDiscussionLike, decodeLike)
	NewReply         = socket.NewEvent(NameNewReply, decodeReply)
	ReplyUpdate      = socket.NewEvent(NameReplyUpdate, decodeReplyPatch)
	ReplyLike        = socket.NewEvent(NameReplyLike, decodeLike)
	UserOnline       = socket.NewEvent(NameUserOnline, decodePresence(true))
	UserOffline      = socket.NewEvent(NameUserOffline, decodePresence(false))
	Notification     = socket.NewEvent(NameNotification, decodeNotice)
)

// 载荷可能直接是实体，也可能包了一层 {discussion: {...}}
func unwrap(b []byte, key string) gjson.Result {
	r := gjson.ParseBytes(b)
	if inner := r.Get(key); inner.IsObject() {
		return inner
	}
	return r
}

func decodeDiscussion(b []byte) (types.Discussion, error) {
	d := transform.Discussion(unwrap(b, "discussion"))
	if d.ID == "" {
		return d, errMissingID
	}
	return d, nil
}

func decodeReply(b []byte) (types.Reply, error) {
	r := transform.Reply(unwrap(b, "reply"), "")
	if r.ID == "" {
		return r, errMissingID
	}
	return r, nil
}

func decodeDiscussionPatch(b []byte) (types.DiscussionPatch, error) {
	r := unwrap(b, "discussion")
	id := transform.FirstString(r, "_id", "id", "discussionId")
	if id == "" {
		return types.DiscussionPatch{}, errMissingID
	}
	return types.DiscussionPatch{ID: id, Raw: []byte(r.Raw)}, nil
}

func decodeReplyPatch(b []byte) (types.ReplyPatch, error) {
	r := unwrap(b, "reply")
	id := transform.FirstString(r, "_id", "id", "replyId")
	if id == "" {
		return types.ReplyPatch{}, errMissingID
	}
	return types.ReplyPatch{
		ID:         id,
		Discussion: transform.RefOf(r, "discussion", "discussionId"),
		Raw:        []byte(r.Raw),
	}, nil
}

func decodeLike(b []byte) (types.LikeEvent, error) {
	r := gjson.ParseBytes(b)
	ev := types.LikeEvent{
		DiscussionID: transform.FirstString(r, "discussionId", "discussion"),
		ReplyID:      transform.FirstString(r, "replyId"),
		UserID:       transform.FirstString(r, "userId", "likedBy"),
		UserName:     transform.FirstString(r, "userName", "likedByName"),
		AuthorID:     transform.FirstString(r, "authorId"),
		Liked:        true,
	}
	if v := r.Get("liked"); v.Exists() {
		ev.Liked = v.Bool()
	} else if v := r.Get("isLiked"); v.Exists() {
		ev.Liked = v.Bool()
	}
	if likes := r.Get("likes"); likes.IsArray() {
		ev.Likes = transform.LikeSet(likes)
	}
	if ev.DiscussionID == "" && ev.ReplyID == "" {
		return ev, errMissingID
	}
	return ev, nil
}

func decodePresence(online bool) func([]byte) (types.PresenceEvent, error) {
	return func(b []byte) (types.PresenceEvent, error) {
		r := gjson.ParseBytes(b)
		uid := r.String()
		if r.IsObject() {
			uid = transform.FirstString(r, "userId", "_id", "id")
		}
		if uid == "" {
			return types.PresenceEvent{}, errMissingID
		}
		return types.PresenceEvent{UserID: uid, Online: online, At: time.Now()}, nil
	}
}

func decodeNotice(b []byte) (types.ServerNotice, error) {
	r := gjson.ParseBytes(b)
	n := types.ServerNotice{
		Type:         transform.FirstString(r, "type"),
		Title:        transform.FirstString(r, "title"),
		Message:      transform.FirstString(r, "message", "content"),
		DiscussionID: transform.FirstString(r, "discussionId", "discussion"),
		ReplyID:      transform.FirstString(r, "replyId", "reply"),
		FromUserID:   transform.FirstString(r, "fromUserId", "from"),
		FromName:     transform.FirstString(r, "fromName", "userName"),
	}
	if n.Type == "" {
		n.Type = types.NoticeSystem
	}
	return n, nil
}
