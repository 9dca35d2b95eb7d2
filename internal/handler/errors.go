package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"RideHexmap-App/internal/domain/model"
)

// respondError ドメインエラーの種類に応じてステータスコードとエラーコードを決める
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		cfgErr    *model.ConfigurationError
		cellErr   *model.InvalidCellError
		pointErr  *model.InvalidPointError
		uploadErr *model.UploadError
	)

	switch {
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_resolution",
			"message": cfgErr.Error(),
			"bound":   cfgErr.Bound,
			"min":     cfgErr.Min,
			"max":     cfgErr.Max,
		})
	case errors.As(err, &cellErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_cell",
			"message": cellErr.Error(),
		})
	case errors.As(err, &pointErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_coordinate",
			"message": pointErr.Error(),
		})
	case errors.As(err, &uploadErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_upload",
			"message": uploadErr.Error(),
			"file":    uploadErr.File,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
}

func badParameter(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_parameter",
		"message": message,
	})
}
