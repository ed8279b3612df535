package handler

import (
	"EduForum/pkg/context"
	"EduForum/pkg/response"
	"EduForum/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Sidebar struct {
	SidebarService *service.SidebarService
}

func (h *Sidebar) RegisterRouter(r gin.IRouter) {
	r.GET("/sidebar", context.Wrap(h.Get))
}

// Get refresh=1 强制重新拉取
func (h *Sidebar) Get(c *gin.Context) error {
	load := h.SidebarService.Load
	if c.Query("refresh") == "1" {
		load = h.SidebarService.Refresh
	}
	sb, err := load(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, sb)
	return nil
}

type Notice struct {
	NoticeService *service.NoticeService
}

func (h *Notice) RegisterRouter(r gin.IRouter) {
	r.GET("/notifications", context.Wrap(h.List))
	r.DELETE("/notifications/:id", context.Wrap(h.Dismiss))
}

// List history=1 读落库的记录
func (h *Notice) List(c *gin.Context) error {
	if c.Query("history") == "1" {
		list, err := h.NoticeService.History(c.Request.Context(), queryInt(c, "limit", 50))
		if err != nil {
			return err
		}
		response.Success(c, list)
		return nil
	}
	response.Success(c, h.NoticeService.List())
	return nil
}

func (h *Notice) Dismiss(c *gin.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "invalid notification id")
	}
	if !h.NoticeService.Dismiss(c.Request.Context(), id) {
		return response.NewError(http.StatusNotFound, "Notification not found")
	}
	response.Success(c, nil)
	return nil
}

type Presence struct {
	PresenceService *service.PresenceService
}

func (h *Presence) RegisterRouter(r gin.IRouter) {
	r.GET("/presence", func(c *gin.Context) {
		response.Success(c, gin.H{"online": h.PresenceService.Online()})
	})
}

type Bookmark struct {
	BookmarkService service.IBookmarkService
}

func (h *Bookmark) RegisterRouter(r gin.IRouter) {
	bookmarks := r.Group("/bookmarks")
	bookmarks.GET("", context.Wrap(h.List))
	bookmarks.POST("/:id", context.Wrap(h.Add))
	bookmarks.DELETE("/:id", context.Wrap(h.Remove))
}

func (h *Bookmark) List(c *gin.Context) error {
	list, err := h.BookmarkService.List(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, list)
	return nil
}

func (h *Bookmark) Add(c *gin.Context) error {
	if err := h.BookmarkService.Bookmark(c.Request.Context(), c.Param("id")); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Bookmark) Remove(c *gin.Context) error {
	if err := h.BookmarkService.Unbookmark(c.Request.Context(), c.Param("id")); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
