package types

// LikeResult 点赞接口返回。Known=false 表示服务端没给出完整 likes 列表，
// 调用方自行翻转当前用户的成员关系
type LikeResult struct {
	Likes []string
	Known bool
}

// Apply 把结果落到本地 likes 集合上
func (r LikeResult) Apply(set []string, uid string) []string {
	if r.Known {
		return r.Likes
	}
	return ToggleMember(set, uid)
}
