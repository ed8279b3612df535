package dao

import (
	"EduForum/internal/transform"
	"EduForum/pkg/client"
	"EduForum/types"
	"context"
	"net/http"
	"net/url"
)

var _ IReplyDAO = (*ReplyDAO)(nil)

type IReplyDAO interface {
	Add(ctx context.Context, req types.CreateReplyRequest) (types.Reply, error)
	List(ctx context.Context, discussionID string, page, limit int) (*types.ReplyPage, error)
	ToggleLike(ctx context.Context, id string) (types.LikeResult, error)
	UserReplies(ctx context.Context, userID string) ([]types.Reply, error)
}

// ReplyDAO /reply/* 接口
type ReplyDAO struct {
	api *client.HttpClient
}

func NewReplyDAO(api *client.HttpClient) *ReplyDAO {
	return &ReplyDAO{api: api}
}

func (d *ReplyDAO) Add(ctx context.Context, req types.CreateReplyRequest) (types.Reply, error) {
	data, err := d.api.Post(ctx, "/reply/add-reply", req, "Failed to add reply")
	if err != nil {
		return types.Reply{}, err
	}
	return transform.Reply(entity(data, "reply"), ""), nil
}

// List 回复分页，isOP 以载荷为准
func (d *ReplyDAO) List(ctx context.Context, discussionID string, page, limit int) (*types.ReplyPage, error) {
	data, err := d.api.Get(ctx, "/reply/get-replies/"+url.PathEscape(discussionID), pageQuery(page, limit), "Failed to fetch replies")
	if err != nil {
		return nil, err
	}
	return &types.ReplyPage{
		Replies:    transform.Replies(data, ""),
		Pagination: transform.Pagination(data),
	}, nil
}

func (d *ReplyDAO) ToggleLike(ctx context.Context, id string) (types.LikeResult, error) {
	data, err := d.api.Do(ctx, http.MethodPatch, "/reply/toggle-like/"+url.PathEscape(id), nil, nil, false, "Failed to toggle reply like")
	if err != nil {
		return types.LikeResult{}, err
	}
	return likeResult(data, "reply"), nil
}

func (d *ReplyDAO) UserReplies(ctx context.Context, userID string) ([]types.Reply, error) {
	data, err := d.api.Get(ctx, "/reply/user/"+url.PathEscape(userID), nil, "Failed to fetch user replies")
	if err != nil {
		return nil, err
	}
	return transform.Replies(data, ""), nil
}
