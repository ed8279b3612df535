package types

import "time"

// 讨论分类，后端为准，客户端只用于展示
const (
	CategoryTeachingStrategies = "Teaching Strategies"
	CategoryClassroomMgmt      = "Classroom Management"
	CategoryCareerAdvice       = "Career Advice"
	CategoryCurriculum         = "Curriculum Planning"
	CategoryTechnology         = "Technology in Education"
	CategorySpecialEducation   = "Special Education"
	CategoryProfessionalDev    = "Professional Development"
	CategoryGeneral            = "General Discussion"
)

var Categories = []string{
	CategoryTeachingStrategies,
	CategoryClassroomMgmt,
	CategoryCareerAdvice,
	CategoryCurriculum,
	CategoryTechnology,
	CategorySpecialEducation,
	CategoryProfessionalDev,
	CategoryGeneral,
}

const DefaultRole = "Teacher"

// Author 帖子/回复作者摘要
type Author struct {
	ID         string   `json:"_id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Avatar     string   `json:"avatarUrl"`
	Role       string   `json:"role"`
	Reputation int64    `json:"reputation"`
	Badges     []string `json:"badges"`
}

func (a Author) DisplayName() string {
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	case a.LastName != "":
		return a.LastName
	}
	return "Someone"
}

// Discussion 讨论主题
type Discussion struct {
	ID            string     `json:"_id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	CreatedBy     Author     `json:"createdBy"`
	Views         int64      `json:"views"`
	Likes         []string   `json:"likes"` // 点赞用户ID集合，不允许重复
	IsPinned      bool       `json:"isPinned"`
	IsLocked      bool       `json:"isLocked"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	ReplyCount    int64      `json:"replyCount"`
	LastReplyAt   *time.Time `json:"lastReplyAt,omitempty"`
	TrendingScore float64    `json:"trendingScore"`
}

func (d *Discussion) LikedBy(uid string) bool {
	return containsString(d.Likes, uid)
}

// Reply 讨论下的回复
type Reply struct {
	ID          string    `json:"_id"`
	Discussion  string    `json:"discussion"`
	Content     string    `json:"content"`
	CreatedBy   Author    `json:"createdBy"`
	ParentReply string    `json:"parentReply,omitempty"` // 为空表示一级回复
	Likes       []string  `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsOP        bool      `json:"isOP"`
}

func (r *Reply) LikedBy(uid string) bool {
	return containsString(r.Likes, uid)
}

// ToggleMember 翻转 uid 在集合中的成员关系，返回新切片
func ToggleMember(set []string, uid string) []string {
	out := make([]string, 0, len(set)+1)
	found := false
	for _, v := range set {
		if v == uid {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, uid)
	}
	return out
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasMore bool  `json:"hasMore"`
}

type DiscussionPage struct {
	Discussions []Discussion `json:"discussions"`
	Pagination  Pagination   `json:"pagination"`
}

type ReplyPage struct {
	Replies    []Reply    `json:"replies"`
	Pagination Pagination `json:"pagination"`
}

// DiscussionDetail 详情接口同时返回主题和第一页回复
type DiscussionDetail struct {
	Discussion Discussion `json:"discussion"`
	Replies    []Reply    `json:"replies"`
	Pagination Pagination `json:"pagination"`
}
