package handler

import (
	"EduForum/pkg/context"
	"EduForum/pkg/response"
	"EduForum/service"
	"EduForum/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Discussion struct {
	DetailService *service.DetailService
	BrowseService *service.BrowseService
}

type detailView struct {
	types.DiscussionDetail
	Loading    bool   `json:"loading"`
	Submitting bool   `json:"submitting"`
	Error      string `json:"error,omitempty"`
}

type replyBody struct {
	Content     string `json:"content" binding:"required"`
	ParentReply string `json:"parentReplyId"`
}

func (h *Discussion) RegisterRouter(r gin.IRouter) {
	discussions := r.Group("/discussions")
	discussions.GET("/:id", context.Wrap(h.Get))
	discussions.DELETE("/:id", context.Wrap(h.Close))
	discussions.GET("/:id/replies", context.Wrap(h.MoreReplies))
	discussions.POST("/:id/replies", context.Wrap(h.PostReply))
	discussions.GET("/:id/related", context.Wrap(h.Related))

	r.POST("/replies/:id/like", context.Wrap(h.ToggleLikeReply))

	users := r.Group("/users")
	users.GET("/:id/discussions", context.Wrap(h.UserDiscussions))
	users.GET("/:id/replies", context.Wrap(h.UserReplies))

	r.GET("/overview", context.Wrap(h.Overview))
}

// Get 打开详情视图；首次打开或 refresh=1 时拉取
func (h *Discussion) Get(c *gin.Context) error {
	v := h.DetailService.Open(c.Param("id"))
	if v.Discussion().ID == "" || c.Query("refresh") == "1" {
		ctx, cancel := cacheContext(c)
		defer cancel()
		if err := v.Load(ctx, queryInt(c, "page", 1), queryInt(c, "limit", 20)); err != nil {
			return err
		}
	}
	response.Success(c, snapshot(v))
	return nil
}

// Close 关闭视图，离开讨论房间
func (h *Discussion) Close(c *gin.Context) error {
	if !h.DetailService.CloseView(c.Param("id")) {
		return response.NewError(http.StatusNotFound, "View not open")
	}
	response.Success(c, nil)
	return nil
}

// MoreReplies 追加下一页回复
func (h *Discussion) MoreReplies(c *gin.Context) error {
	v, ok := h.DetailService.View(c.Param("id"))
	if !ok {
		return response.NewError(http.StatusNotFound, "View not open")
	}
	ctx, cancel := cacheContext(c)
	defer cancel()
	p, err := v.LoadMoreReplies(ctx, queryInt(c, "page", v.Pagination().Page+1), queryInt(c, "limit", 20))
	if err != nil {
		return err
	}
	response.Success(c, types.ReplyPage{Replies: v.Replies(), Pagination: p})
	return nil
}

func (h *Discussion) PostReply(c *gin.Context) error {
	var body replyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	v := h.DetailService.Open(c.Param("id"))
	reply, err := v.PostReply(c.Request.Context(), body.Content, body.ParentReply)
	if err != nil {
		return err
	}
	c.JSON(http.StatusCreated, response.Response{Success: true, Data: reply})
	return nil
}

// ToggleLikeReply ?discussion= 指定回复所属讨论
func (h *Discussion) ToggleLikeReply(c *gin.Context) error {
	did := c.Query("discussion")
	if did == "" {
		return response.NewError(http.StatusBadRequest, "discussion is required")
	}
	v := h.DetailService.Open(did)
	if err := v.ToggleLikeReply(c.Request.Context(), c.Param("id")); err != nil {
		return err
	}
	response.Success(c, snapshot(v))
	return nil
}

func (h *Discussion) Related(c *gin.Context) error {
	list, err := h.BrowseService.Related(c.Request.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	response.Success(c, list)
	return nil
}

func (h *Discussion) UserDiscussions(c *gin.Context) error {
	list, err := h.BrowseService.UserDiscussions(c.Request.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	response.Success(c, list)
	return nil
}

func (h *Discussion) UserReplies(c *gin.Context) error {
	list, err := h.BrowseService.UserReplies(c.Request.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	response.Success(c, list)
	return nil
}

func (h *Discussion) Overview(c *gin.Context) error {
	o, err := h.BrowseService.Overview(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, o)
	return nil
}

func snapshot(v *service.DetailView) detailView {
	return detailView{
		DiscussionDetail: v.Snapshot(),
		Loading:          v.Loading(),
		Submitting:       v.Submitting(),
		Error:            v.Error(),
	}
}
