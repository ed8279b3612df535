package types

// 讨论列表 tab
const (
	TabRecent     = "recent"
	TabTrending   = "trending"
	TabUnanswered = "unanswered"
	TabPopular    = "popular"
)

// FeedParams GET /discussion/feed 查询参数
type FeedParams struct {
	Tab      string `json:"tab" form:"tab"`
	Page     int    `json:"page" form:"page"`
	Limit    int    `json:"limit" form:"limit"`
	Search   string `json:"search" form:"search"`
	Category string `json:"category" form:"category"`
}

type CreateDiscussionRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags"`
}

type CreateReplyRequest struct {
	Discussion  string `json:"discussionId"`
	Content     string `json:"content" binding:"required"`
	ParentReply string `json:"parentReplyId,omitempty"`
}

type ReportRequest struct {
	Reason string `json:"reason" binding:"required"`
}
