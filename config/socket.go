package config

import "time"

// Socket 实时通道配置
type Socket struct {
	URL               string    `json:"url" yaml:"url"`
	HeartbeatInterval int       `json:"heartbeat_interval" yaml:"heartbeat_interval"` // 秒
	HeartbeatTimeout  int       `json:"heartbeat_timeout" yaml:"heartbeat_timeout"`   // 秒，至少为间隔的 2.5 倍
	Reconnect         Reconnect `json:"reconnect" yaml:"reconnect"`
}

type Reconnect struct {
	Enabled     bool    `json:"enabled" yaml:"enabled"`
	MinDelayMs  int     `json:"min_delay_ms" yaml:"min_delay_ms"`
	MaxDelayMs  int     `json:"max_delay_ms" yaml:"max_delay_ms"`
	Jitter      float64 `json:"jitter" yaml:"jitter"`
	MaxAttempts int     `json:"max_attempts" yaml:"max_attempts"` // 0 表示不限
}

func (s *Socket) fillDefaults() {
	if s.HeartbeatInterval <= 0 {
		s.HeartbeatInterval = 10
	}
	if s.HeartbeatTimeout <= 0 {
		s.HeartbeatTimeout = 35
	}
	if s.Reconnect.MinDelayMs <= 0 {
		s.Reconnect.MinDelayMs = 500
	}
	if s.Reconnect.MaxDelayMs <= 0 {
		s.Reconnect.MaxDelayMs = 30000
	}
	if s.Reconnect.Jitter <= 0 || s.Reconnect.Jitter > 1 {
		s.Reconnect.Jitter = 0.2
	}
}

func (s *Socket) Interval() time.Duration {
	return time.Duration(s.HeartbeatInterval) * time.Second
}

func (s *Socket) Timeout() time.Duration {
	return time.Duration(s.HeartbeatTimeout) * time.Second
}

func ProvideSocketConfig(cfg *Config) *Socket {
	return cfg.Socket
}
