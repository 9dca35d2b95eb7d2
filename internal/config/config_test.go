package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RideHexmap-App/internal/domain/model"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT",
		"HEX_MIN_RESOLUTION", "HEX_MAX_RESOLUTION", "HEX_DEFAULT_RESOLUTION",
		"MAP_DEFAULT_ZOOM", "MAP_HEIGHT", "MAX_UPLOAD_MB",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.MinResolution)
	assert.Equal(t, 10, cfg.MaxResolution)
	assert.Equal(t, 8, cfg.DefaultResolution)
	assert.Equal(t, 11.0, cfg.MapZoom)
	assert.Equal(t, int64(32), cfg.MaxUploadMB)

	style := cfg.MapStyle()
	assert.Equal(t, 11.0, style.Zoom)
	assert.Equal(t, "Deployment Zones", style.Zones.Name)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HEX_MIN_RESOLUTION", "3")
	t.Setenv("HEX_MAX_RESOLUTION", "12")
	t.Setenv("HEX_DEFAULT_RESOLUTION", "9")
	t.Setenv("MAP_DEFAULT_ZOOM", "12.5")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.MinResolution)
	assert.Equal(t, 12, cfg.MaxResolution)
	assert.Equal(t, 9, cfg.DefaultResolution)
	assert.Equal(t, 12.5, cfg.MapStyle().Zoom)
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Run("整数でない解像度", func(t *testing.T) {
		t.Setenv("HEX_MAX_RESOLUTION", "ten")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("H3の上限を超える最大解像度", func(t *testing.T) {
		t.Setenv("HEX_MAX_RESOLUTION", "16")
		_, err := FromEnv()
		var cfgErr *model.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, model.BoundMax, cfgErr.Bound)
	})

	t.Run("既定の解像度が範囲外", func(t *testing.T) {
		t.Setenv("HEX_DEFAULT_RESOLUTION", "4")
		_, err := FromEnv()
		var cfgErr *model.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "HEX_DEFAULT_RESOLUTION", cfgErr.Field)
	})

	t.Run("最小値が最大値を超える", func(t *testing.T) {
		t.Setenv("HEX_MIN_RESOLUTION", "9")
		t.Setenv("HEX_MAX_RESOLUTION", "6")
		_, err := FromEnv()
		assert.Error(t, err)
	})
}
