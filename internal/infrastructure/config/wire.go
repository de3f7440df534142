package config

import "github.com/google/wire"

// ProviderSet 설정 ProviderSet
var ProviderSet = wire.NewSet(
	NewConfig,
	NewServerConfig,
	NewRedisConfig,
	NewDatabaseConfig,
	NewLLMConfig,
	NewSearchConfig,
	NewChatConfig,
	NewStreamingConfig,
)
