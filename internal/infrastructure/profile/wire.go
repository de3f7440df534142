package profile

import "github.com/google/wire"

// ProviderSet profile 모듈 provider
var ProviderSet = wire.NewSet(OpenDB, NewRepository)
