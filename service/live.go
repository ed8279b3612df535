package service

import (
	"EduForum/pkg/socket"
)

// liveBinding 记录一组实时事件回调，Close 时统一解绑
type liveBinding struct {
	conn socket.IClient
	ids  map[string][]socket.HandlerID
}

func newLiveBinding(conn socket.IClient) *liveBinding {
	return &liveBinding{conn: conn, ids: make(map[string][]socket.HandlerID)}
}

func listen[T any](b *liveBinding, ev socket.Event[T], fn func(T)) {
	id := socket.Subscribe(b.conn, ev, fn)
	b.ids[ev.Name()] = append(b.ids[ev.Name()], id)
}

func (b *liveBinding) unbind() {
	if b == nil {
		return
	}
	for name, ids := range b.ids {
		if len(ids) > 0 {
			b.conn.Off(name, ids...)
		}
	}
	b.ids = nil
}
