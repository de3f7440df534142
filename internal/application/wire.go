package application

import (
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/application/chat"
	"github.com/google/wire"
)

// ProviderSet Application 계층 전체 ProviderSet
var ProviderSet = wire.NewSet(
	chat.ProviderSet,
)
