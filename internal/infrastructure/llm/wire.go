package llm

import "github.com/google/wire"

// ProviderSet llm 모듈 provider
var ProviderSet = wire.NewSet(NewClient)
