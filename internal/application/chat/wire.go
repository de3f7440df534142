package chat

import (
	"github.com/google/wire"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/intent"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/llm"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/profile"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/search"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/store"
)

// ProviderSet 대화 엔진 provider
var ProviderSet = wire.NewSet(
	intent.NewClassifier,
	NewRegistry,
	NewAssembler,
	NewService,
	wire.Bind(new(Generator), new(*llm.Client)),
	wire.Bind(new(RecipeSearcher), new(*search.Client)),
	wire.Bind(new(HistoryStore), new(*store.MessageStore)),
	wire.Bind(new(ProfileSource), new(profile.Repository)),
)
