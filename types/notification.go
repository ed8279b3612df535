package types

import "time"

const (
	NoticeNewDiscussion = "new_discussion"
	NoticeNewReply      = "new_reply"
	NoticeLike          = "like"
	NoticeMention       = "mention"
	NoticeSystem        = "system"
)

// Notification 一条可关闭的提示，Link 为点击后跳转的站内地址
type Notification struct {
	ID           int64     `json:"id,string"`
	Kind         string    `json:"kind"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Link         string    `json:"link,omitempty"`
	DiscussionID string    `json:"discussionId,omitempty"`
	ReplyID      string    `json:"replyId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func DiscussionLink(discussionID string) string {
	return "/forum/" + discussionID
}

func ReplyLink(discussionID, replyID string) string {
	return "/forum/" + discussionID + "#reply-" + replyID
}
