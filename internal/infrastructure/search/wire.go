package search

import "github.com/google/wire"

// ProviderSet search 모듈 provider
var ProviderSet = wire.NewSet(NewClient)
