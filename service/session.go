package service

import (
	"EduForum/config"
	"EduForum/pkg/jwt"
	"EduForum/pkg/log"
	"EduForum/types"

	"go.uber.org/zap"
)

// NewSession 凭证由配置显式注入；user_id 缺省时从 token 载荷里取，不校验签名
func NewSession(conf *config.Auth) *types.Session {
	s := &types.Session{}
	if conf == nil {
		return s
	}
	s.Token, s.UserID = conf.Token, conf.UserID
	if s.Token == "" {
		return s
	}

	claims, err := jwt.ParseUnverified(s.Token)
	if err != nil {
		log.L.Warn("parse forum token failed", zap.Error(err))
		return s
	}
	if s.UserID == "" {
		s.UserID = claims.Uid()
	}
	s.Role = claims.Role
	return s
}
