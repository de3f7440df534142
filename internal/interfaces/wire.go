package interfaces

import (
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces/http"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces/mcp"
	"github.com/google/wire"
)

// ProviderSet Interfaces 계층 전체 ProviderSet
var ProviderSet = wire.NewSet(
	http.ProviderSet,
	mcp.ProviderSet,
)
