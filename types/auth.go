package types

// Session 当前登录用户，Token 为空表示未登录
type Session struct {
	Token  string
	UserID string
	Role   string
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != "" && s.UserID != ""
}

func (s *Session) Uid() string {
	if s == nil {
		return ""
	}
	return s.UserID
}
