package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"EduForum/pkg/log"
	"EduForum/pkg/metrics"
	"EduForum/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sourcegraph/conc"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// HandlerFunc 收到事件时的回调，payload 为事件载荷的原始 JSON
type HandlerFunc func(payload []byte)

// HandlerID On 返回的句柄，用于 Off 精确移除
type HandlerID uint64

// IClient 业务层只依赖这三个原语
type IClient interface {
	Emit(event string, payload any) bool
	On(event string, fn HandlerFunc) HandlerID
	Off(event string, ids ...HandlerID)
}

var _ IClient = (*Client)(nil)

// Frame 线上帧格式 {"event": "...", "payload": {...}}
type Frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Option struct {
	URL         string
	Token       string // 为空则不建立连接，所有操作为空操作
	Interval    time.Duration
	Timeout     time.Duration
	Reconnect   bool
	MaxAttempts int // 0 不限
	Backoff     Backoff
	Dialer      *websocket.Dialer
}

type entry struct {
	id HandlerID
	fn HandlerFunc
}

// Client 一个实例对应一条物理连接
type Client struct {
	opt Option
	cid string

	state  atomic.Int32
	closed atomic.Bool
	nextID atomic.Uint64
	dials  atomic.Uint64 // 成功建连次数

	mu       sync.RWMutex
	handlers map[string][]entry

	connMu  sync.Mutex
	conn    *websocket.Conn
	cancel  context.CancelFunc
	writeMu sync.Mutex

	wg        conc.WaitGroup
	closeOnce sync.Once
}

func NewClient(opt Option) *Client {
	if opt.Interval <= 0 {
		opt.Interval = 10 * time.Second
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 35 * time.Second
	}
	if opt.Dialer == nil {
		opt.Dialer = &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 10 * time.Second,
		}
	}
	return &Client{
		opt:      opt,
		cid:      uuid.NewString(),
		handlers: make(map[string][]entry),
	}
}

func (c *Client) Cid() string {
	return c.cid
}

func (c *Client) State() State {
	return State(c.state.Load())
}

// Dials 成功建连次数，大于 1 说明发生过重连
func (c *Client) Dials() uint64 {
	return c.dials.Load()
}

func (c *Client) Connected() bool {
	return c.State() == StateConnected
}

func (c *Client) setState(s State) {
	old := State(c.state.Swap(int32(s)))
	metrics.SocketState.Set(float64(s))
	if old != s {
		log.L.Info("socket state changed", zap.String("cid", c.cid), zap.String("from", old.String()), zap.String("to", s.String()))
	}
}

// Start 后台运行连接循环
func (c *Client) Start(ctx context.Context) {
	c.wg.Go(func() {
		_ = c.Run(ctx)
	})
}

// Run 建立连接并在断开后按退避策略重连，直到 ctx 结束或 Close。
// 连接错误只记录日志，不向调用方返回
func (c *Client) Run(ctx context.Context) error {
	if c.opt.Token == "" {
		log.L.Info("no credential, live channel disabled", zap.String("cid", c.cid))
		return nil
	}
	if c.closed.Load() {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.connMu.Lock()
	c.cancel = cancel
	c.connMu.Unlock()
	if c.closed.Load() {
		return nil
	}

	attempt := 0
	for {
		if attempt == 0 {
			c.setState(StateConnecting)
		} else {
			c.setState(StateReconnecting)
			metrics.SocketReconnectsTotal.Inc()
		}

		conn, err := c.dial(ctx)
		if err == nil {
			attempt = 0
			c.dials.Add(1)
			c.serve(ctx, conn)
		} else if ctx.Err() == nil {
			log.L.Warn("socket connect error", zap.String("cid", c.cid), zap.String("url", c.opt.URL), zap.Error(err))
		}

		if ctx.Err() != nil || c.closed.Load() {
			c.setState(StateClosed)
			return nil
		}
		if !c.opt.Reconnect {
			c.setState(StateIdle)
			return nil
		}

		attempt++
		if c.opt.MaxAttempts > 0 && attempt > c.opt.MaxAttempts {
			log.L.Warn("socket reconnect attempts exhausted", zap.String("cid", c.cid), zap.Int("attempts", c.opt.MaxAttempts))
			c.setState(StateIdle)
			return nil
		}

		delay := c.opt.Backoff.Duration(attempt)
		log.L.Info("socket reconnect scheduled", zap.String("cid", c.cid), zap.Int("attempt", attempt), zap.Duration("delay", delay))
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			c.setState(StateClosed)
			return nil
		case <-timer.C:
		}
	}
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.opt.Token)
	header.Set("X-Client-Id", c.cid)

	conn, resp, err := c.opt.Dialer.DialContext(ctx, c.opt.URL, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, err
}

// serve 阻塞直到连接断开
func (c *Client) serve(ctx context.Context, conn *websocket.Conn) {
	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	c.setState(StateConnected)
	log.L.Info("socket connected", zap.String("cid", c.cid), zap.String("url", c.opt.URL))

	stop := make(chan struct{})
	var wg conc.WaitGroup
	wg.Go(func() {
		c.heartbeat(conn, stop)
	})
	wg.Go(func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-stop:
		}
	})

	c.readLoop(conn)
	close(stop)

	c.connMu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.connMu.Unlock()
	_ = conn.Close()
	wg.Wait()

	log.L.Info("socket disconnected", zap.String("cid", c.cid))
}

func (c *Client) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(c.opt.Timeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.opt.Timeout))
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.L.Warn("socket read error", zap.String("cid", c.cid), zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(c.opt.Timeout))
		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg []byte) {
	event := gjson.GetBytes(msg, "event").String()
	if event == "" {
		return
	}
	metrics.SocketEventsTotal.WithLabelValues(event).Inc()

	if event == "ping" {
		c.Emit("pong", nil)
		return
	}

	var payload []byte
	if p := gjson.GetBytes(msg, "payload"); p.Exists() {
		payload = []byte(p.Raw)
	}

	c.mu.RLock()
	list := make([]entry, len(c.handlers[event]))
	copy(list, c.handlers[event])
	c.mu.RUnlock()

	for _, e := range list {
		c.call(event, e.fn, payload)
	}
}

func (c *Client) call(event string, fn HandlerFunc, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.L.Error("socket handler panic", zap.String("event", event), zap.String("trace", utils.PanicTrace(r)))
		}
	}()
	fn(payload)
}

// Emit 尽力发送，未连接时直接丢弃，不排队不重试
func (c *Client) Emit(event string, payload any) bool {
	if !c.Connected() {
		log.L.Debug("socket not connected, drop emit", zap.String("event", event))
		return false
	}

	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()
	if conn == nil {
		return false
	}

	frame := Frame{Event: event}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			log.L.Warn("socket emit marshal error", zap.String("event", event), zap.Error(err))
			return false
		}
		frame.Payload = b
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(frame); err != nil {
		log.L.Warn("socket emit error", zap.String("event", event), zap.Error(err))
		return false
	}
	return true
}

// On 同一事件可注册多个回调，按注册顺序依次调用
func (c *Client) On(event string, fn HandlerFunc) HandlerID {
	id := HandlerID(c.nextID.Add(1))
	c.mu.Lock()
	c.handlers[event] = append(c.handlers[event], entry{id: id, fn: fn})
	c.mu.Unlock()
	return id
}

// Off 不传 ids 时移除该事件全部回调
func (c *Client) Off(event string, ids ...HandlerID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(ids) == 0 {
		delete(c.handlers, event)
		return
	}

	drop := make(map[HandlerID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := c.handlers[event][:0:0]
	for _, e := range c.handlers[event] {
		if _, ok := drop[e.id]; !ok {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(c.handlers, event)
		return
	}
	c.handlers[event] = kept
}

// Close 断开连接并清空全部回调
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)

		c.connMu.Lock()
		cancel := c.cancel
		conn := c.conn
		c.connMu.Unlock()

		if cancel != nil {
			cancel()
		}
		if conn != nil {
			_ = conn.Close()
		}
		c.wg.Wait()

		c.mu.Lock()
		c.handlers = make(map[string][]entry)
		c.mu.Unlock()

		c.setState(StateClosed)
	})
}
