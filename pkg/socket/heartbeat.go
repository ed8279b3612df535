package socket

import (
	"time"

	"EduForum/pkg/log"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// heartbeat 定时发送 ping，对端 pong 会刷新读超时（见 readLoop），
// 超过 Timeout 没有任何数据则读失败，触发重连
func (c *Client) heartbeat(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(c.opt.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.L.Warn("socket ping error", zap.String("cid", c.cid), zap.Error(err))
				_ = conn.Close()
				return
			}
		}
	}
}
