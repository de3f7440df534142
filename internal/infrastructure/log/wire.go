package log

import "github.com/google/wire"

// ProviderSet 로그 인프라 ProviderSet
var ProviderSet = wire.NewSet(
	NewConfigFromEnv,
)
