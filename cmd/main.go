package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"RideHexmap-App/internal/config"
	"RideHexmap-App/internal/domain/service"
	"RideHexmap-App/internal/handler"
	"RideHexmap-App/internal/infrastructure/render"
	"RideHexmap-App/internal/logger"
	"RideHexmap-App/internal/repository"
	"RideHexmap-App/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	binner, err := service.NewHexBinner(cfg.MinResolution, cfg.MaxResolution)
	if err != nil {
		log.Fatalf("HexBinnerの初期化に失敗: %v", err)
	}

	router := buildRouter(cfg, binner)

	log.WithFields(log.Fields{
		"port":               cfg.Port,
		"min_resolution":     cfg.MinResolution,
		"max_resolution":     cfg.MaxResolution,
		"default_resolution": cfg.DefaultResolution,
	}).Info("RideHexmap-App server starting")

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}

// buildRouter 依存関係を組み立ててルーターを作成
func buildRouter(cfg *config.Config, binner service.HexBinner) *gin.Engine {
	maxUploadBytes := cfg.MaxUploadMB << 20

	hexMapUseCase := usecase.NewHexMapUseCase(
		repository.NewCSVPointReader(),
		repository.NewGeoJSONZoneReader(),
		binner,
		service.NewMapViewService(binner),
		render.NewLayerRenderer(binner, cfg.MapStyle()),
		cfg.DefaultResolution,
	)
	conversionUseCase := usecase.NewConversionUseCase(repository.NewWKTCSVConverter())
	cellUseCase := usecase.NewCellUseCase(binner)

	return handler.NewRouter(handler.Handlers{
		HexMap:     handler.NewHexMapHandler(hexMapUseCase, maxUploadBytes),
		Conversion: handler.NewConversionHandler(conversionUseCase, maxUploadBytes),
		Cell:       handler.NewCellHandler(cellUseCase, cfg.DefaultResolution),
	})
}
