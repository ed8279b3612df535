package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification 通知落库
// 对应表 forum_notifications
type Notification struct {
	ID           int64          `gorm:"column:id;primary_key" json:"id"`
	UserID       string         `gorm:"column:user_id;size:64;not null;index:idx_user_created,priority:1" json:"user_id"`
	Kind         string         `gorm:"column:kind;size:32;not null" json:"kind"`
	Title        string         `gorm:"column:title;size:255" json:"title"`
	Message      string         `gorm:"column:message;type:text" json:"message"`
	Link         string         `gorm:"column:link;size:255" json:"link"`
	DiscussionID string         `gorm:"column:discussion_id;size:64" json:"discussion_id"`
	ReplyID      string         `gorm:"column:reply_id;size:64" json:"reply_id"`
	Payload      datatypes.JSON `gorm:"column:payload" json:"payload"` // 原始事件
	Dismissed    bool           `gorm:"column:dismissed;not null;default:false" json:"dismissed"`
	CreatedAt    time.Time      `gorm:"column:created_at;index:idx_user_created,priority:2" json:"created_at"`
}

func (Notification) TableName() string { return "forum_notifications" }
