package streaming

import "github.com/google/wire"

// ProviderSet streaming 모듈 provider
var ProviderSet = wire.NewSet(NewEngine)
