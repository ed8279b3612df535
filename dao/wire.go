package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewDiscussionDAO,
	wire.Bind(new(IDiscussionDAO), new(*DiscussionDAO)),
	NewReplyDAO,
	wire.Bind(new(IReplyDAO), new(*ReplyDAO)),
	NewNotificationDAO,
)
