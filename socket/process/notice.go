package process

import (
	"EduForum/pkg/socket"
	"EduForum/service"
	"context"
)

type NoticeSubscribe struct {
	Conn   *socket.Client
	Notice *service.NoticeService
}

func (m *NoticeSubscribe) Init() error {
	m.Notice.Bind(m.Conn)
	return nil
}

func (m *NoticeSubscribe) Setup(ctx context.Context) error {
	<-ctx.Done()
	m.Notice.Close()
	return nil
}

type PresenceSubscribe struct {
	Conn     *socket.Client
	Presence *service.PresenceService
}

func (m *PresenceSubscribe) Init() error {
	m.Presence.Bind(m.Conn)
	return nil
}

func (m *PresenceSubscribe) Setup(ctx context.Context) error {
	<-ctx.Done()
	m.Presence.Close()
	return nil
}
