package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Handlers 本地接口
type Handlers struct {
	Feed       *Feed
	Discussion *Discussion
	Sidebar    *Sidebar
	Notice     *Notice
	Presence   *Presence
	Bookmark   *Bookmark
}

func (h *Handlers) RegisterRouter(r gin.IRouter) {
	h.Feed.RegisterRouter(r)
	h.Discussion.RegisterRouter(r)
	h.Sidebar.RegisterRouter(r)
	h.Notice.RegisterRouter(r)
	h.Presence.RegisterRouter(r)
	h.Bookmark.RegisterRouter(r)
}

const cacheTimeout = 15 * time.Second

// cacheContext 共享缓存的加载不随单个请求取消
func cacheContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(c.Request.Context()), cacheTimeout)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
