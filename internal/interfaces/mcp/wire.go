package mcp

import "github.com/google/wire"

// ProviderSet mcp 모듈 provider
var ProviderSet = wire.NewSet(NewServer)
