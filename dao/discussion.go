package dao

import (
	"EduForum/internal/transform"
	"EduForum/pkg/client"
	"EduForum/types"
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

var _ IDiscussionDAO = (*DiscussionDAO)(nil)

type IDiscussionDAO interface {
	Feed(ctx context.Context, params types.FeedParams) (*types.DiscussionPage, error)
	Get(ctx context.Context, id string, page, limit int) (*types.DiscussionDetail, error)
	Create(ctx context.Context, req types.CreateDiscussionRequest) (types.Discussion, error)
	ToggleLike(ctx context.Context, id string) (types.LikeResult, error)
	Report(ctx context.Context, id string, reason string) error
	Search(ctx context.Context, q string, page, limit int) (*types.DiscussionPage, error)
	Trending(ctx context.Context, limit int) ([]types.TrendingTopic, error)
	Related(ctx context.Context, id string) ([]types.Discussion, error)
	CategoryStats(ctx context.Context) ([]types.CategoryStats, error)
	CommunityOverview(ctx context.Context) (types.CommunityOverview, error)
	Overview(ctx context.Context) (types.ForumOverview, error)
	UserDiscussions(ctx context.Context, userID string) ([]types.Discussion, error)
	Bookmark(ctx context.Context, id string) error
	Unbookmark(ctx context.Context, id string) error
	Bookmarked(ctx context.Context) ([]types.Discussion, error)
}

// DiscussionDAO /discussion/* 接口
type DiscussionDAO struct {
	api *client.HttpClient
}

func NewDiscussionDAO(api *client.HttpClient) *DiscussionDAO {
	return &DiscussionDAO{api: api}
}

// Feed 分页拉取讨论列表
func (d *DiscussionDAO) Feed(ctx context.Context, params types.FeedParams) (*types.DiscussionPage, error) {
	q := pageQuery(params.Page, params.Limit)
	if params.Tab != "" {
		q.Set("tab", params.Tab)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}

	data, err := d.api.Get(ctx, "/discussion/feed", q, "Failed to fetch discussions")
	if err != nil {
		return nil, err
	}
	return discussionPage(data), nil
}

// Get 主题详情 + 第一页回复
func (d *DiscussionDAO) Get(ctx context.Context, id string, page, limit int) (*types.DiscussionDetail, error) {
	data, err := d.api.Get(ctx, "/discussion/get-specific-discussion/"+url.PathEscape(id), pageQuery(page, limit), "Failed to fetch discussion")
	if err != nil {
		return nil, err
	}

	raw := data
	if v := data.Get("discussion"); v.IsObject() {
		raw = v
	}
	discussion := transform.Discussion(raw)
	return &types.DiscussionDetail{
		Discussion: discussion,
		Replies:    transform.Replies(data.Get("replies"), discussion.CreatedBy.ID),
		Pagination: transform.Pagination(data),
	}, nil
}

func (d *DiscussionDAO) Create(ctx context.Context, req types.CreateDiscussionRequest) (types.Discussion, error) {
	data, err := d.api.Post(ctx, "/discussion/create-discussion", req, "Failed to create discussion")
	if err != nil {
		return types.Discussion{}, err
	}
	return transform.Discussion(entity(data, "discussion")), nil
}

func (d *DiscussionDAO) ToggleLike(ctx context.Context, id string) (types.LikeResult, error) {
	data, err := d.api.Do(ctx, http.MethodPost, "/discussion/"+url.PathEscape(id)+"/like", nil, nil, false, "Failed to toggle like")
	if err != nil {
		return types.LikeResult{}, err
	}
	return likeResult(data, "discussion"), nil
}

func (d *DiscussionDAO) Report(ctx context.Context, id string, reason string) error {
	body := types.ReportRequest{Reason: reason}
	return d.api.Exec(ctx, http.MethodPost, "/discussion/"+url.PathEscape(id)+"/report", body, "Failed to report discussion")
}

func (d *DiscussionDAO) Search(ctx context.Context, q string, page, limit int) (*types.DiscussionPage, error) {
	query := pageQuery(page, limit)
	query.Set("q", q)
	data, err := d.api.Get(ctx, "/discussion/search", query, "Failed to search discussions")
	if err != nil {
		return nil, err
	}
	return discussionPage(data), nil
}

func (d *DiscussionDAO) Trending(ctx context.Context, limit int) ([]types.TrendingTopic, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	data, err := d.api.Get(ctx, "/discussion/trending", q, "Failed to fetch trending topics")
	if err != nil {
		return nil, err
	}
	return transform.TrendingTopics(data), nil
}

func (d *DiscussionDAO) Related(ctx context.Context, id string) ([]types.Discussion, error) {
	data, err := d.api.Get(ctx, "/discussion/"+url.PathEscape(id)+"/related", nil, "Failed to fetch related discussions")
	if err != nil {
		return nil, err
	}
	return transform.Discussions(data), nil
}

func (d *DiscussionDAO) CategoryStats(ctx context.Context) ([]types.CategoryStats, error) {
	data, err := d.api.Get(ctx, "/discussion/categories/stats", nil, "Failed to fetch category stats")
	if err != nil {
		return nil, err
	}
	return transform.CategoryStatsList(data), nil
}

func (d *DiscussionDAO) CommunityOverview(ctx context.Context) (types.CommunityOverview, error) {
	data, err := d.api.Get(ctx, "/discussion/community/overview", nil, "Failed to fetch community overview")
	if err != nil {
		return types.CommunityOverview{}, err
	}
	return transform.CommunityOverview(data), nil
}

func (d *DiscussionDAO) Overview(ctx context.Context) (types.ForumOverview, error) {
	data, err := d.api.Get(ctx, "/discussion/overview", nil, "Failed to fetch forum overview")
	if err != nil {
		return types.ForumOverview{}, err
	}
	return transform.ForumOverview(data), nil
}

func (d *DiscussionDAO) UserDiscussions(ctx context.Context, userID string) ([]types.Discussion, error) {
	data, err := d.api.Get(ctx, "/discussion/user/"+url.PathEscape(userID), nil, "Failed to fetch user discussions")
	if err != nil {
		return nil, err
	}
	return transform.Discussions(data), nil
}

func (d *DiscussionDAO) Bookmark(ctx context.Context, id string) error {
	return d.api.Exec(ctx, http.MethodPost, "/discussion/"+url.PathEscape(id)+"/bookmark", nil, "Failed to bookmark discussion")
}

func (d *DiscussionDAO) Unbookmark(ctx context.Context, id string) error {
	return d.api.Exec(ctx, http.MethodDelete, "/discussion/"+url.PathEscape(id)+"/bookmark", nil, "Failed to remove bookmark")
}

func (d *DiscussionDAO) Bookmarked(ctx context.Context) ([]types.Discussion, error) {
	data, err := d.api.Get(ctx, "/discussion/bookmarked", nil, "Failed to fetch bookmarks")
	if err != nil {
		return nil, err
	}
	return transform.Discussions(data), nil
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func discussionPage(data gjson.Result) *types.DiscussionPage {
	return &types.DiscussionPage{
		Discussions: transform.Discussions(data),
		Pagination:  transform.Pagination(data),
	}
}

// entity data 可能是实体本身，也可能是 {<key>: 实体}
func entity(data gjson.Result, key string) gjson.Result {
	if v := data.Get(key); v.IsObject() {
		return v
	}
	return data
}

// likeResult 兼容 data.likes / data.<key>.likes，两者都没有时 Known=false
func likeResult(data gjson.Result, key string) types.LikeResult {
	likes := data.Get("likes")
	if !likes.IsArray() {
		likes = data.Get(key + ".likes")
	}
	if !likes.IsArray() {
		return types.LikeResult{}
	}
	return types.LikeResult{Likes: transform.LikeSet(likes), Known: true}
}
