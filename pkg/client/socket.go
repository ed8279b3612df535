package client

import (
	"EduForum/config"
	"EduForum/pkg/socket"
	"EduForum/types"
	"time"
)

// NewSocketClient 凭证来自 Session，未登录时连接循环直接退出
func NewSocketClient(conf *config.Socket, session *types.Session) *socket.Client {
	return socket.NewClient(socket.Option{
		URL:         conf.URL,
		Token:       session.Token,
		Interval:    conf.Interval(),
		Timeout:     conf.Timeout(),
		Reconnect:   conf.Reconnect.Enabled,
		MaxAttempts: conf.Reconnect.MaxAttempts,
		Backoff: socket.Backoff{
			Min:    time.Duration(conf.Reconnect.MinDelayMs) * time.Millisecond,
			Max:    time.Duration(conf.Reconnect.MaxDelayMs) * time.Millisecond,
			Jitter: conf.Reconnect.Jitter,
		},
	})
}
