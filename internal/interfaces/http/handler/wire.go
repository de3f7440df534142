package handler

import "github.com/google/wire"

// ProviderSet handler 모듈 provider
var ProviderSet = wire.NewSet(
	NewChatHandler,
	NewStreamHandler,
)
