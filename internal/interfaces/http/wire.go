package http

import (
	"github.com/google/wire"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces/http/handler"
)

// ProviderSet http 모듈 provider
var ProviderSet = wire.NewSet(
	handler.ProviderSet,
	NewServer,
)
