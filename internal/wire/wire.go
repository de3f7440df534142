//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/application"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces"
	"github.com/google/wire"
)

// InitializeAll 모든 서비스 초기화 (HTTP + MCP)
func InitializeAll() (*App, error) {
	wire.Build(
		// 계층별 ProviderSet 조합
		infrastructure.ProviderSet, // 인프라 계층
		application.ProviderSet,    // 애플리케이션 계층
		interfaces.ProviderSet,     // 인터페이스 계층
		NewApp,                     // 모든 서비스를 조합하는 애플리케이션 구조
	)
	return nil, nil
}
