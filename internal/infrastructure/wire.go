package infrastructure

import (
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/cache"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/llm"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/patterns"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/profile"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/search"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/store"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/streaming"
	"github.com/google/wire"
)

// ProviderSet Infrastructure 계층 전체 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	cache.ProviderSet,
	store.ProviderSet,
	llm.ProviderSet,
	search.ProviderSet,
	profile.ProviderSet,
	patterns.ProviderSet,
	streaming.ProviderSet,
	// 다른 인프라 모듈은 필요 시 여기에 추가
)
