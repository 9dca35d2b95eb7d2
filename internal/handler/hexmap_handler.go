package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"RideHexmap-App/internal/usecase"
)

// アップロードフォームのフィールド名
const (
	formRides           = "rides"
	formSearches        = "searches"
	formDeploymentZones = "deployment_zones"
	formBoundary        = "boundary"
	formResolution      = "resolution"
	formBinSearches     = "bin_searches"
)

// HexMapHandler ヘキサゴンマップ生成のHTTPハンドラー
type HexMapHandler struct {
	hexMapUseCase  usecase.HexMapUseCase
	maxUploadBytes int64
}

// NewHexMapHandler HexMapHandlerの新しいインスタンスを作成
func NewHexMapHandler(hexMapUseCase usecase.HexMapUseCase, maxUploadBytes int64) *HexMapHandler {
	return &HexMapHandler{
		hexMapUseCase:  hexMapUseCase,
		maxUploadBytes: maxUploadBytes,
	}
}

// PostHexMap POST /api/hexmap - アップロードされたファイルから地図レイヤーを生成
func (h *HexMapHandler) PostHexMap(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	in := &usecase.HexMapInput{}

	// 解像度（フィールドがなければ既定値）
	if v, ok := c.GetPostForm(formResolution); ok {
		res, err := strconv.Atoi(v)
		if err != nil {
			badParameter(c, "resolution must be an integer")
			return
		}
		in.Resolution = &res
	}
	if v := c.PostForm(formBinSearches); v != "" {
		bin, err := strconv.ParseBool(v)
		if err != nil {
			badParameter(c, "bin_searches must be a boolean")
			return
		}
		in.BinSearches = bin
	}

	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	targets := []struct {
		field string
		dst   *io.Reader
	}{
		{formRides, &in.Rides},
		{formSearches, &in.Searches},
		{formDeploymentZones, &in.DeploymentZones},
		{formBoundary, &in.Boundary},
	}
	for _, target := range targets {
		f, err := openFormFile(c, target.field)
		if err != nil {
			badParameter(c, "failed to read upload "+target.field+": "+err.Error())
			return
		}
		if f == nil {
			continue
		}
		opened = append(opened, f)
		*target.dst = f
	}

	response, err := h.hexMapUseCase.BuildHexMap(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// openFormFile フォームのファイルを開く（未送信ならnil）
func openFormFile(c *gin.Context, field string) (multipart.File, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fh.Open()
}
