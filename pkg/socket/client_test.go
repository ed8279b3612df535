package socket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
)

// fakeServer 每个连接：outbox 里的帧写给客户端，客户端发来的帧进 inbox
type fakeServer struct {
	srv    *httptest.Server
	outbox chan string
	inbox  chan string
	conns  atomic.Int32
	auth   atomic.Value
	// dropFirst 为 true 时第一个连接建立后立即断开
	dropFirst bool
}

func newFakeServer(t *testing.T, dropFirst bool) *fakeServer {
	t.Helper()
	fs := &fakeServer{
		outbox:    make(chan string, 16),
		inbox:     make(chan string, 16),
		dropFirst: dropFirst,
	}
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	fs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.auth.Store(r.Header.Get("Authorization"))
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		n := fs.conns.Add(1)
		if fs.dropFirst && n == 1 {
			return
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					return
				}
				fs.inbox <- string(msg)
			}
		}()

		for {
			select {
			case <-done:
				return
			case msg := <-fs.outbox:
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
					return
				}
			}
		}
	}))
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *fakeServer) url() string {
	return "ws" + strings.TrimPrefix(fs.srv.URL, "http")
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func recv(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return ""
}

func TestClient_NoCredentialIsNoop(t *testing.T) {
	c := NewClient(Option{URL: "ws://127.0.0.1:1/ws"})

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.State() != StateIdle {
		t.Fatalf("state = %s", c.State())
	}
	if c.Emit("joinDiscussion", map[string]string{"discussionId": "d1"}) {
		t.Fatal("emit should be dropped without a connection")
	}
}

func TestClient_HandlersInRegistrationOrder(t *testing.T) {
	fs := newFakeServer(t, false)
	c := NewClient(Option{URL: fs.url(), Token: "secret"})
	c.Start(context.Background())
	defer c.Close()
	waitFor(t, "connected", c.Connected)

	if got, _ := fs.auth.Load().(string); got != "Bearer secret" {
		t.Fatalf("handshake authorization = %q", got)
	}

	calls := make(chan string, 8)
	first := c.On("newDiscussion", func(p []byte) { calls <- "first:" + gjson.GetBytes(p, "_id").String() })
	c.On("newDiscussion", func(p []byte) { calls <- "second:" + gjson.GetBytes(p, "_id").String() })

	fs.outbox <- `{"event":"newDiscussion","payload":{"_id":"d1"}}`
	if got := recv(t, calls); got != "first:d1" {
		t.Fatalf("got %s", got)
	}
	if got := recv(t, calls); got != "second:d1" {
		t.Fatalf("got %s", got)
	}

	c.Off("newDiscussion", first)
	fs.outbox <- `{"event":"newDiscussion","payload":{"_id":"d2"}}`
	if got := recv(t, calls); got != "second:d2" {
		t.Fatalf("got %s", got)
	}

	c.Off("newDiscussion")
	fs.outbox <- `{"event":"newDiscussion","payload":{"_id":"d3"}}`
	fs.outbox <- `{"event":"ping"}`
	if got := gjson.Get(recv(t, fs.inbox), "event").String(); got != "pong" {
		t.Fatalf("expected pong, got %s", got)
	}
	select {
	case v := <-calls:
		t.Fatalf("removed handler still called: %s", v)
	default:
	}
}

func TestClient_Emit(t *testing.T) {
	fs := newFakeServer(t, false)
	c := NewClient(Option{URL: fs.url(), Token: "secret"})
	c.Start(context.Background())
	defer c.Close()
	waitFor(t, "connected", c.Connected)

	if !c.Emit("joinDiscussion", map[string]string{"discussionId": "d1"}) {
		t.Fatal("emit failed")
	}
	msg := recv(t, fs.inbox)
	if gjson.Get(msg, "event").String() != "joinDiscussion" || gjson.Get(msg, "payload.discussionId").String() != "d1" {
		t.Fatalf("frame = %s", msg)
	}
}

func TestClient_Reconnects(t *testing.T) {
	fs := newFakeServer(t, true)
	c := NewClient(Option{
		URL:       fs.url(),
		Token:     "secret",
		Reconnect: true,
		Backoff:   Backoff{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond},
	})
	c.Start(context.Background())
	defer c.Close()

	waitFor(t, "second connection", func() bool { return fs.conns.Load() >= 2 && c.Connected() })
}

func TestClient_NoReconnectDegradesToIdle(t *testing.T) {
	c := NewClient(Option{URL: "ws://127.0.0.1:1/ws", Token: "secret"})
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("connection errors must not surface: %v", err)
	}
	if c.State() != StateIdle || c.Emit("x", nil) {
		t.Fatalf("state = %s", c.State())
	}
}

func TestClient_CloseClearsHandlers(t *testing.T) {
	fs := newFakeServer(t, false)
	c := NewClient(Option{URL: fs.url(), Token: "secret"})
	c.Start(context.Background())
	waitFor(t, "connected", c.Connected)

	c.On("newReply", func([]byte) {})
	c.Close()

	if c.State() != StateClosed {
		t.Fatalf("state = %s", c.State())
	}
	c.mu.RLock()
	n := len(c.handlers)
	c.mu.RUnlock()
	if n != 0 {
		t.Fatalf("%d handler lists left after close", n)
	}
}

func TestSubscribe_Typed(t *testing.T) {
	c := NewClient(Option{})
	type room struct {
		DiscussionID string `json:"discussionId"`
	}
	ev := JSONEvent[room]("joinDiscussion")

	var got []string
	Subscribe(c, ev, func(r room) { got = append(got, r.DiscussionID) })

	c.dispatch([]byte(`{"event":"joinDiscussion","payload":{"discussionId":"d9"}}`))
	c.dispatch([]byte(`{"event":"joinDiscussion","payload":"oops"}`))
	c.dispatch([]byte(`{"payload":{}}`))

	if len(got) != 1 || got[0] != "d9" {
		t.Fatalf("got %v", got)
	}
}
