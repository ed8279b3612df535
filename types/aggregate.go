package types

import "time"

// 以下均为只读快照，每次刷新整体替换

type TrendingTopic struct {
	ID            string  `json:"_id"`
	Title         string  `json:"title"`
	Category      string  `json:"category"`
	ReplyCount    int64   `json:"replyCount"`
	Views         int64   `json:"views"`
	LikeCount     int64   `json:"likeCount"`
	TrendingScore float64 `json:"trendingScore"`
}

type CategoryStats struct {
	Category     string     `json:"category"`
	Count        int64      `json:"count"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`
}

type CommunityOverview struct {
	TotalMembers     int64 `json:"totalMembers"`
	ActiveMembers    int64 `json:"activeMembers"`
	TotalDiscussions int64 `json:"totalDiscussions"`
	TotalReplies     int64 `json:"totalReplies"`
	TodayPosts       int64 `json:"todayPosts"`
}

// ForumOverview /discussion/overview 的讨论、回复总数
type ForumOverview struct {
	TotalDiscussions int64 `json:"totalDiscussions"`
	TotalReplies     int64 `json:"totalReplies"`
}

// Sidebar 侧边栏三项聚合
type Sidebar struct {
	Trending    []TrendingTopic   `json:"trending"`
	Categories  []CategoryStats   `json:"categories"`
	Overview    CommunityOverview `json:"overview"`
	RefreshedAt time.Time         `json:"refreshedAt"`
}
