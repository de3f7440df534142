package cache

import "github.com/google/wire"

// ProviderSet 캐시 인프라 ProviderSet
var ProviderSet = wire.NewSet(
	NewRedisStore,
	wire.Bind(new(Store), new(*RedisStore)),
)
