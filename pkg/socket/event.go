package socket

import (
	"encoding/json"

	"EduForum/pkg/log"

	"go.uber.org/zap"
)

// Event 事件名与载荷类型绑定，类型转换只发生在 Subscribe 这一处
type Event[T any] struct {
	name   string
	decode func([]byte) (T, error)
}

func NewEvent[T any](name string, decode func([]byte) (T, error)) Event[T] {
	return Event[T]{name: name, decode: decode}
}

// JSONEvent 载荷直接按 JSON 反序列化
func JSONEvent[T any](name string) Event[T] {
	return NewEvent(name, func(b []byte) (T, error) {
		var v T
		err := json.Unmarshal(b, &v)
		return v, err
	})
}

func (e Event[T]) Name() string {
	return e.name
}

func (e Event[T]) Decode(b []byte) (T, error) {
	return e.decode(b)
}

// Subscribe 注册强类型回调，解码失败只记日志不回调
func Subscribe[T any](c IClient, ev Event[T], fn func(T)) HandlerID {
	return c.On(ev.name, func(payload []byte) {
		v, err := ev.decode(payload)
		if err != nil {
			log.L.Warn("decode live event failed", zap.String("event", ev.name), zap.Error(err))
			return
		}
		fn(v)
	})
}
