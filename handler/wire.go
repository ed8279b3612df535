package handler

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(Feed), "*"),
	wire.Struct(new(Discussion), "*"),
	wire.Struct(new(Sidebar), "*"),
	wire.Struct(new(Notice), "*"),
	wire.Struct(new(Presence), "*"),
	wire.Struct(new(Bookmark), "*"),
	wire.Struct(new(Handlers), "*"),
)
