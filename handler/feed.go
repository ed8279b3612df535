package handler

import (
	"EduForum/pkg/context"
	"EduForum/pkg/response"
	"EduForum/service"
	"EduForum/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Feed struct {
	FeedService *service.FeedService
}

type feedView struct {
	Discussions []types.Discussion `json:"discussions"`
	Pagination  types.Pagination   `json:"pagination"`
	Params      types.FeedParams   `json:"params"`
	Loading     bool               `json:"loading"`
	Error       string             `json:"error,omitempty"`
}

func (h *Feed) RegisterRouter(r gin.IRouter) {
	feed := r.Group("/feed")
	feed.GET("", context.Wrap(h.Get))
	feed.POST("/load", context.Wrap(h.Load))
	feed.GET("/search", context.Wrap(h.Search))

	discussions := r.Group("/discussions")
	discussions.POST("", context.Wrap(h.Create))
	discussions.POST("/:id/like", context.Wrap(h.ToggleLike))
	discussions.POST("/:id/report", context.Wrap(h.Report))
}

// Get 当前缓存的列表，不发请求
func (h *Feed) Get(c *gin.Context) error {
	response.Success(c, h.view())
	return nil
}

// Load 切换 tab/分类/搜索条件，整体替换列表
func (h *Feed) Load(c *gin.Context) error {
	var params types.FeedParams
	if err := c.ShouldBindJSON(&params); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	if params.Tab == "" {
		params.Tab = types.TabRecent
	}
	ctx, cancel := cacheContext(c)
	defer cancel()
	if err := h.FeedService.Load(ctx, params); err != nil {
		return err
	}
	response.Success(c, h.view())
	return nil
}

func (h *Feed) Search(c *gin.Context) error {
	q := c.Query("q")
	if q == "" {
		return response.NewError(http.StatusBadRequest, "q is required")
	}
	ctx, cancel := cacheContext(c)
	defer cancel()
	if err := h.FeedService.Search(ctx, q, queryInt(c, "page", 1), queryInt(c, "limit", 20)); err != nil {
		return err
	}
	response.Success(c, h.view())
	return nil
}

func (h *Feed) Create(c *gin.Context) error {
	var req types.CreateDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	d, err := h.FeedService.Create(c.Request.Context(), req)
	if err != nil {
		return err
	}
	c.JSON(http.StatusCreated, response.Response{Success: true, Data: d})
	return nil
}

func (h *Feed) ToggleLike(c *gin.Context) error {
	id := c.Param("id")
	if err := h.FeedService.ToggleLike(c.Request.Context(), id); err != nil {
		return err
	}
	d, _ := h.FeedService.Get(id)
	response.Success(c, d)
	return nil
}

func (h *Feed) Report(c *gin.Context) error {
	var req types.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.FeedService.Report(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Feed) view() feedView {
	return feedView{
		Discussions: h.FeedService.Discussions(),
		Pagination:  h.FeedService.Pagination(),
		Params:      h.FeedService.Params(),
		Loading:     h.FeedService.Loading(),
		Error:       h.FeedService.Error(),
	}
}
