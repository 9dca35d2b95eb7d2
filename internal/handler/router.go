package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"RideHexmap-App/internal/logger"
)

// Handlers ルーターに登録するハンドラー群
type Handlers struct {
	HexMap     *HexMapHandler
	Conversion *ConversionHandler
	Cell       *CellHandler
}

// NewRouter ミドルウェアとAPIルートを設定したginエンジンを作成
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestID(), logger.RequestLogger())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "healthy",
				"service": "RideHexmap-App",
			})
		})

		api.POST("/hexmap", h.HexMap.PostHexMap)

		convert := api.Group("/convert")
		{
			convert.POST("/csv-to-geojson", h.Conversion.CSVToGeoJSON)
			convert.POST("/geojson-to-csv", h.Conversion.GeoJSONToCSV)
		}

		cells := api.Group("/cells")
		{
			cells.GET("", h.Cell.GetIndex)
			cells.GET("/:id/boundary", h.Cell.GetBoundary)
			cells.GET("/:id/parent", h.Cell.GetParent)
		}
	}

	return router
}
