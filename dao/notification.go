package dao

import (
	"EduForum/models"
	"EduForum/types"
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationDAO 通知收件箱落库，db 为 nil 时所有操作都是空操作
type NotificationDAO struct {
	Db *gorm.DB
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{Db: db}
}

func (d *NotificationDAO) Enabled() bool {
	return d != nil && d.Db != nil
}

func (d *NotificationDAO) Save(ctx context.Context, uid string, n types.Notification) error {
	if !d.Enabled() {
		return nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	row := &models.Notification{
		ID:           n.ID,
		UserID:       uid,
		Kind:         n.Kind,
		Title:        n.Title,
		Message:      n.Message,
		Link:         n.Link,
		DiscussionID: n.DiscussionID,
		ReplyID:      n.ReplyID,
		Payload:      datatypes.JSON(payload),
		CreatedAt:    n.CreatedAt,
	}
	return d.Db.WithContext(ctx).Create(row).Error
}

// Recent 最近未关闭的通知，按时间倒序
func (d *NotificationDAO) Recent(ctx context.Context, uid string, limit int) ([]models.Notification, error) {
	if !d.Enabled() {
		return nil, nil
	}
	var items []models.Notification
	err := d.Db.WithContext(ctx).
		Where("user_id = ? AND dismissed = ?", uid, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (d *NotificationDAO) Dismiss(ctx context.Context, uid string, id int64) error {
	if !d.Enabled() {
		return nil
	}
	return d.Db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, uid).
		Update("dismissed", true).Error
}
