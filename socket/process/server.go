package process

import (
	"EduForum/pkg/log"
	"EduForum/pkg/socket"
	"context"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var once sync.Once

// IServer Init 绑定实时事件，Setup 阻塞运行直到 ctx 结束
type IServer interface {
	Setup(ctx context.Context) error
	Init() error
}

// SubServers 订阅的服务列表
type SubServers struct {
	FeedSubscribe     *FeedSubscribe     // 讨论列表
	NoticeSubscribe   *NoticeSubscribe   // 通知
	PresenceSubscribe *PresenceSubscribe // 在线状态
	HealthSubscribe   *HealthSubscribe   // 连接状态巡检
}

type Server struct {
	items []IServer
	Conn  *socket.Client
	SubServers
}

func NewServer(servers *SubServers, conn *socket.Client) *Server {
	s := &Server{
		Conn:       conn,
		SubServers: *servers,
	}

	s.binds(servers)
	return s
}

func (c *Server) binds(servers *SubServers) {
	elem := reflect.ValueOf(servers).Elem()
	for i := 0; i < elem.NumField(); i++ {
		if v, ok := elem.Field(i).Interface().(IServer); ok && !reflect.ValueOf(v).IsNil() {
			c.items = append(c.items, v)
		}
	}
}

// Start 先绑定全部回调再建立连接，避免漏掉连上后的第一批事件
func (c *Server) Start(eg *errgroup.Group, ctx context.Context) {
	once.Do(func() {
		for _, process := range c.items {
			if err := process.Init(); err != nil {
				log.L.Fatal("bind live events failed", zap.Error(err))
			}
		}

		for _, process := range c.items {
			serv := process
			eg.Go(func() error {
				return serv.Setup(ctx)
			})
		}

		eg.Go(func() error {
			return c.Conn.Run(ctx)
		})

		eg.Go(func() error {
			<-ctx.Done()
			log.L.Info("closing live channel...")
			c.Conn.Close()
			return nil
		})

		log.L.Info("start receive live events", zap.String("cid", c.Conn.Cid()))
	})
}
