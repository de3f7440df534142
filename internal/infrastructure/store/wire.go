package store

import "github.com/google/wire"

// ProviderSet 저장소 인프라 ProviderSet
var ProviderSet = wire.NewSet(
	NewMessageStore,
)
