package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"RideHexmap-App/internal/usecase"
)

const formFile = "file"

// ConversionHandler WKT付きCSVとGeoJSONの相互変換ハンドラー
type ConversionHandler struct {
	conversionUseCase usecase.ConversionUseCase
	maxUploadBytes    int64
}

// NewConversionHandler ConversionHandlerの新しいインスタンスを作成
func NewConversionHandler(conversionUseCase usecase.ConversionUseCase, maxUploadBytes int64) *ConversionHandler {
	return &ConversionHandler{
		conversionUseCase: conversionUseCase,
		maxUploadBytes:    maxUploadBytes,
	}
}

// CSVToGeoJSON POST /api/convert/csv-to-geojson
func (h *ConversionHandler) CSVToGeoJSON(c *gin.Context) {
	h.limitBody(c)

	f, err := openFormFile(c, formFile)
	if err != nil {
		badParameter(c, "failed to read upload file: "+err.Error())
		return
	}
	if f == nil {
		badParameter(c, "file is required")
		return
	}
	defer f.Close()

	data, err := h.conversionUseCase.CSVToGeoJSON(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="deployment_zones.geojson"`)
	c.Data(http.StatusOK, "application/geo+json", data)
}

// GeoJSONToCSV POST /api/convert/geojson-to-csv
func (h *ConversionHandler) GeoJSONToCSV(c *gin.Context) {
	h.limitBody(c)

	f, err := openFormFile(c, formFile)
	if err != nil {
		badParameter(c, "failed to read upload file: "+err.Error())
		return
	}
	if f == nil {
		badParameter(c, "file is required")
		return
	}
	defer f.Close()

	// 途中で失敗した場合に不完全なCSVを返さないようバッファに書き出す
	var buf bytes.Buffer
	if err := h.conversionUseCase.GeoJSONToCSV(c.Request.Context(), f, &buf); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="deployment_zones.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ConversionHandler) limitBody(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
}
