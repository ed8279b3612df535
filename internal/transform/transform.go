// Package transform 把后端返回的松散 JSON 映射为强类型记录。
//
// 所有函数都是全函数：缺失的可选字段使用默认值（列表为空切片、计数为 0、布尔为 false、
// 角色为 Teacher），并且幂等：对输出再做一次转换结果不变。REST 返回与实时推送走同一套转换。
package transform

import (
	"strings"
	"time"

	"EduForum/types"

	"github.com/tidwall/gjson"
)

func Author(r gjson.Result) types.Author {
	if r.Type == gjson.String {
		// 只下发了作者ID
		return types.Author{ID: r.String(), Role: types.DefaultRole, Badges: []string{}}
	}

	a := types.Author{
		ID:         idOf(r),
		FirstName:  r.Get("firstName").String(),
		LastName:   r.Get("lastName").String(),
		Avatar:     FirstString(r, "avatarUrl", "avatar", "profileImage"),
		Role:       r.Get("role").String(),
		Reputation: r.Get("reputation").Int(),
		Badges:     badges(r.Get("badges")),
	}
	if a.Role == "" {
		a.Role = types.DefaultRole
	}
	return a
}

func Discussion(r gjson.Result) types.Discussion {
	d := types.Discussion{
		ID:            idOf(r),
		Title:         r.Get("title").String(),
		Content:       r.Get("content").String(),
		Category:      r.Get("category").String(),
		Tags:          stringList(r.Get("tags"), false),
		CreatedBy:     Author(r.Get("createdBy")),
		Views:         r.Get("views").Int(),
		Likes:         stringList(r.Get("likes"), true),
		IsPinned:      r.Get("isPinned").Bool(),
		IsLocked:      r.Get("isLocked").Bool(),
		IsActive:      r.Get("isActive").Bool(),
		CreatedAt:     timeOf(r.Get("createdAt")),
		UpdatedAt:     timeOf(r.Get("updatedAt")),
		ReplyCount:    r.Get("replyCount").Int(),
		TrendingScore: r.Get("trendingScore").Float(),
	}
	if !r.Get("replyCount").Exists() {
		if replies := r.Get("replies"); replies.IsArray() {
			d.ReplyCount = int64(len(replies.Array()))
		}
	}
	if t := timeOf(r.Get("lastReplyAt")); !t.IsZero() {
		d.LastReplyAt = &t
	}
	return d
}

func DiscussionBytes(b []byte) types.Discussion {
	return Discussion(gjson.ParseBytes(b))
}

// Discussions 列表转换，同一ID只保留第一次出现
func Discussions(r gjson.Result) []types.Discussion {
	out := make([]types.Discussion, 0)
	seen := make(map[string]struct{})
	for _, item := range listOf(r, "discussions") {
		d := Discussion(item)
		if d.ID != "" {
			if _, ok := seen[d.ID]; ok {
				continue
			}
			seen[d.ID] = struct{}{}
		}
		out = append(out, d)
	}
	return out
}

// Reply opID 为主题作者ID；为空时沿用载荷里的 isOP
func Reply(r gjson.Result, opID string) types.Reply {
	rp := types.Reply{
		ID:          idOf(r),
		Discussion:  RefOf(r, "discussion", "discussionId"),
		Content:     r.Get("content").String(),
		CreatedBy:   Author(r.Get("createdBy")),
		ParentReply: RefOf(r, "parentReply", "parentReplyId"),
		Likes:       stringList(r.Get("likes"), true),
		CreatedAt:   timeOf(r.Get("createdAt")),
		UpdatedAt:   timeOf(r.Get("updatedAt")),
		IsOP:        r.Get("isOP").Bool(),
	}
	if opID != "" {
		rp.IsOP = rp.CreatedBy.ID == opID
	}
	return rp
}

func ReplyBytes(b []byte, opID string) types.Reply {
	return Reply(gjson.ParseBytes(b), opID)
}

func Replies(r gjson.Result, opID string) []types.Reply {
	out := make([]types.Reply, 0)
	seen := make(map[string]struct{})
	for _, item := range listOf(r, "replies") {
		rp := Reply(item, opID)
		if rp.ID != "" {
			if _, ok := seen[rp.ID]; ok {
				continue
			}
			seen[rp.ID] = struct{}{}
		}
		out = append(out, rp)
	}
	return out
}

func TrendingTopic(r gjson.Result) types.TrendingTopic {
	t := types.TrendingTopic{
		ID:            idOf(r),
		Title:         r.Get("title").String(),
		Category:      r.Get("category").String(),
		ReplyCount:    r.Get("replyCount").Int(),
		Views:         r.Get("views").Int(),
		LikeCount:     r.Get("likeCount").Int(),
		TrendingScore: r.Get("trendingScore").Float(),
	}
	if !r.Get("likeCount").Exists() {
		if likes := r.Get("likes"); likes.IsArray() {
			t.LikeCount = int64(len(likes.Array()))
		} else {
			t.LikeCount = likes.Int()
		}
	}
	return t
}

func TrendingTopics(r gjson.Result) []types.TrendingTopic {
	out := make([]types.TrendingTopic, 0)
	for _, item := range listOf(r, "topics", "trending") {
		out = append(out, TrendingTopic(item))
	}
	return out
}

// CategoryStats 聚合结果的分组键可能在 _id 上
func CategoryStats(r gjson.Result) types.CategoryStats {
	c := types.CategoryStats{
		Category: FirstString(r, "category", "_id"),
		Count:    r.Get("count").Int(),
	}
	if t := timeOf(r.Get("lastActivity")); !t.IsZero() {
		c.LastActivity = &t
	}
	return c
}

func CategoryStatsList(r gjson.Result) []types.CategoryStats {
	out := make([]types.CategoryStats, 0)
	for _, item := range listOf(r, "categories", "stats") {
		out = append(out, CategoryStats(item))
	}
	return out
}

func CommunityOverview(r gjson.Result) types.CommunityOverview {
	if o := r.Get("overview"); o.IsObject() {
		r = o
	}
	return types.CommunityOverview{
		TotalMembers:     r.Get("totalMembers").Int(),
		ActiveMembers:    r.Get("activeMembers").Int(),
		TotalDiscussions: r.Get("totalDiscussions").Int(),
		TotalReplies:     r.Get("totalReplies").Int(),
		TodayPosts:       r.Get("todayPosts").Int(),
	}
}

func ForumOverview(r gjson.Result) types.ForumOverview {
	return types.ForumOverview{
		TotalDiscussions: r.Get("totalDiscussions").Int(),
		TotalReplies:     r.Get("totalReplies").Int(),
	}
}

func Pagination(r gjson.Result) types.Pagination {
	if p := r.Get("pagination"); p.IsObject() {
		r = p
	}
	p := types.Pagination{
		Page:  int(firstInt(r, "page", "currentPage")),
		Limit: int(r.Get("limit").Int()),
		Total: firstInt(r, "total", "totalItems"),
		Pages: int(firstInt(r, "pages", "totalPages")),
	}
	if v := r.Get("hasMore"); v.Exists() {
		p.HasMore = v.Bool()
	} else if v := r.Get("hasNextPage"); v.Exists() {
		p.HasMore = v.Bool()
	} else {
		p.HasMore = p.Pages > 0 && p.Page < p.Pages
	}
	return p
}

// listOf 兼容 data 直接是数组或 data.<key> 是数组两种形态
func listOf(r gjson.Result, keys ...string) []gjson.Result {
	if r.IsArray() {
		return r.Array()
	}
	for _, k := range keys {
		if v := r.Get(k); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}

func idOf(r gjson.Result) string {
	if r.Type == gjson.String {
		return r.String()
	}
	return FirstString(r, "_id", "id")
}

// RefOf 外键既可能是ID字符串，也可能是被 populate 的对象
func RefOf(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		v := r.Get(k)
		switch {
		case v.Type == gjson.String && v.String() != "":
			return v.String()
		case v.IsObject():
			if id := idOf(v); id != "" {
				return id
			}
		}
	}
	return ""
}

// FirstString 按顺序取第一个非空字符串字段
func FirstString(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func firstInt(r gjson.Result, keys ...string) int64 {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() {
			return v.Int()
		}
	}
	return 0
}

// stringList 元素可以是字符串或带 _id 的对象
func stringList(r gjson.Result, unique bool) []string {
	out := make([]string, 0)
	if !r.IsArray() {
		return out
	}
	seen := make(map[string]struct{})
	for _, item := range r.Array() {
		var v string
		if item.Type == gjson.String {
			v = item.String()
		} else if item.IsObject() {
			v = idOf(item)
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		if unique {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
		}
		out = append(out, v)
	}
	return out
}

func badges(r gjson.Result) []string {
	out := make([]string, 0)
	if !r.IsArray() {
		return out
	}
	for _, item := range r.Array() {
		if item.Type == gjson.String {
			out = append(out, item.String())
		} else if name := item.Get("name").String(); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func timeOf(r gjson.Result) time.Time {
	var t time.Time
	switch r.Type {
	case gjson.String:
		parsed, err := time.Parse(time.RFC3339, r.String())
		if err != nil {
			return time.Time{}
		}
		t = parsed
	case gjson.Number:
		t = time.UnixMilli(r.Int())
	default:
		return time.Time{}
	}
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}

// LikeSet 点赞集合，去重
func LikeSet(r gjson.Result) []string {
	return stringList(r, true)
}
