package types

import "time"

// DiscussionPatch discussionUpdate / discussionLike 事件，Raw 为原始字段，按 key 浅合并
type DiscussionPatch struct {
	ID  string
	Raw []byte
}

// ReplyPatch replyUpdate / replyLike 事件
type ReplyPatch struct {
	ID         string
	Discussion string
	Raw        []byte
}

// LikeEvent 点赞通知
type LikeEvent struct {
	DiscussionID string
	ReplyID      string // 为空表示点赞的是主题
	UserID       string // 点赞人
	UserName     string
	AuthorID     string // 被点赞内容的作者
	Liked        bool
	Likes        []string // 载荷带完整集合时非 nil，直接覆盖本地
}

type PresenceEvent struct {
	UserID string
	Online bool
	At     time.Time
}

// ServerNotice notification 事件，type=mention 时带 replyId
type ServerNotice struct {
	Type         string
	Title        string
	Message      string
	DiscussionID string
	ReplyID      string
	FromUserID   string
	FromName     string
}

// RoomPayload joinDiscussion / leaveDiscussion
type RoomPayload struct {
	DiscussionID string `json:"discussionId"`
}
