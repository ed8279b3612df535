package socket

import (
	"EduForum/socket/process"
	"EduForum/socket/router"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	router.NewRouter,

	// process
	wire.Struct(new(process.SubServers), "*"),
	process.NewServer,
	process.NewHealthSubscribe,
	wire.Struct(new(process.FeedSubscribe), "*"),
	wire.Struct(new(process.NoticeSubscribe), "*"),
	wire.Struct(new(process.PresenceSubscribe), "*"),

	// AppProvider
	wire.Struct(new(AppProvider), "*"),
)
