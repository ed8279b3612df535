package service

import (
	"EduForum/types"
	"sync"
	"time"
)

// Inbox 内存中的通知列表：过期自动消失，可手动关闭，超过容量丢最旧的
type Inbox struct {
	mu    sync.Mutex
	items []types.Notification
	size  int
	ttl   time.Duration
	now   func() time.Time
}

func NewInbox(size int, ttl time.Duration) *Inbox {
	if size <= 0 {
		size = 50
	}
	return &Inbox{size: size, ttl: ttl, now: time.Now}
}

// Push 补齐时间字段后入列
func (b *Inbox) Push(n types.Notification) types.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now()
	}
	if n.ExpiresAt.IsZero() && b.ttl > 0 {
		n.ExpiresAt = n.CreatedAt.Add(b.ttl)
	}
	b.items = append(b.items, n)
	if over := len(b.items) - b.size; over > 0 {
		b.items = append([]types.Notification(nil), b.items[over:]...)
	}
	return n
}

// List 未过期的通知，新的在前
func (b *Inbox) List() []types.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prune()

	out := make([]types.Notification, 0, len(b.items))
	for i := len(b.items) - 1; i >= 0; i-- {
		out = append(out, b.items[i])
	}
	return out
}

func (b *Inbox) Dismiss(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Inbox) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prune()
	return len(b.items)
}

func (b *Inbox) prune() {
	now := b.now()
	kept := b.items[:0]
	for _, n := range b.items {
		if n.ExpiresAt.IsZero() || now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	b.items = kept
}
