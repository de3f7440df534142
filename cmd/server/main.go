// @title 레시피 챗 백엔드 API
// @version 1.0
// @description 한국어 레시피 대화 세션 엔진 API 서비스
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
package main

import (
	"os"
	"os/signal"
	"syscall"

	applog "github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/wire"
)

func main() {
	// 로그 시스템 초기화
	applog.Init(nil)

	// Wire 가 생성한 초기화 함수
	app, err := wire.InitializeAll()
	if err != nil {
		applog.GetLogger().Error("Failed to initialize application",
			"error", err,
		)
		os.Exit(1)
	}

	// 모든 서비스 시작
	if err := app.Start(); err != nil {
		applog.GetLogger().Error("Failed to start application",
			"error", err,
		)
		os.Exit(1)
	}

	// 우아한 종료
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	applog.GetLogger().Info("Shutting down application...")
	if err := app.Stop(); err != nil {
		applog.GetLogger().Error("Error during application shutdown",
			"error", err,
		)
	}
	applog.GetLogger().Info("Application stopped")
}
