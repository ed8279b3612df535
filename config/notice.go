package config

import "time"

type NoticeConfig struct {
	TTL       int `json:"ttl" yaml:"ttl"` // 通知展示秒数
	InboxSize int `json:"inbox_size" yaml:"inbox_size"`
}

func (n *NoticeConfig) fillDefaults() {
	if n.TTL <= 0 {
		n.TTL = 5
	}
	if n.InboxSize <= 0 {
		n.InboxSize = 50
	}
}

func (n *NoticeConfig) Lifetime() time.Duration {
	return time.Duration(n.TTL) * time.Second
}
