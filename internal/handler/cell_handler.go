package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"RideHexmap-App/internal/usecase"
)

// CellHandler 単一セルの参照ハンドラー
type CellHandler struct {
	cellUseCase       usecase.CellUseCase
	defaultResolution int
}

// NewCellHandler CellHandlerの新しいインスタンスを作成
func NewCellHandler(cellUseCase usecase.CellUseCase, defaultResolution int) *CellHandler {
	return &CellHandler{
		cellUseCase:       cellUseCase,
		defaultResolution: defaultResolution,
	}
}

// GetBoundary GET /api/cells/:id/boundary
func (h *CellHandler) GetBoundary(c *gin.Context) {
	response, err := h.cellUseCase.Boundary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetIndex GET /api/cells?lat=&lng=&resolution=
func (h *CellHandler) GetIndex(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		badParameter(c, "lat must be a number")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		badParameter(c, "lng must be a number")
		return
	}

	resolution := h.defaultResolution
	if v := c.Query("resolution"); v != "" {
		if resolution, err = strconv.Atoi(v); err != nil {
			badParameter(c, "resolution must be an integer")
			return
		}
	}

	response, err := h.cellUseCase.Index(c.Request.Context(), lat, lng, resolution)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetParent GET /api/cells/:id/parent?resolution=
func (h *CellHandler) GetParent(c *gin.Context) {
	resolution, err := strconv.Atoi(c.Query("resolution"))
	if err != nil {
		badParameter(c, "resolution must be an integer")
		return
	}

	response, err := h.cellUseCase.Parent(c.Request.Context(), c.Param("id"), resolution)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
