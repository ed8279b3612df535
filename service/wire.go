package service

import (
	"EduForum/config"
	"EduForum/dao/cache"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

func ProvideSidebarStorage(rds *redis.Client, conf *config.Config) *cache.SidebarStorage {
	return cache.NewSidebarStorage(rds, conf.Redis.Lifetime())
}

func ProvideNoticeConfig(conf *config.Config) *config.NoticeConfig {
	return conf.Notice
}

var ProviderSet = wire.NewSet(
	NewSession,
	ProvideSidebarStorage,
	ProvideNoticeConfig,

	NewSidebarService,
	wire.Bind(new(SidebarRefresher), new(*SidebarService)),

	NewFeedService,
	wire.Bind(new(IFeedService), new(*FeedService)),

	NewNoticeService,
	wire.Bind(new(RoomJoiner), new(*NoticeService)),

	NewDetailService,
	NewPresenceService,

	NewBookmarkService,
	wire.Bind(new(IBookmarkService), new(*BookmarkService)),

	wire.Struct(new(BrowseService), "*"),
)
