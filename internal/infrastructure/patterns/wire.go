package patterns

import (
	"github.com/google/wire"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/intent"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
)

// ProvideLoader 설정에서 패턴 파일 경로를 읽어 로더 생성
func ProvideLoader(cfg *config.ChatConfig, classifier *intent.Classifier) *Loader {
	return NewLoader(cfg.PatternPath, classifier)
}

// ProviderSet patterns 모듈 provider
var ProviderSet = wire.NewSet(ProvideLoader)
